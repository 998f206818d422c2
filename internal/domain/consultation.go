package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ConsultationStatus string

const (
	ConsultationStatusWaiting    ConsultationStatus = "waiting"
	ConsultationStatusInProgress ConsultationStatus = "in_progress"
	ConsultationStatusFinished   ConsultationStatus = "finished"
	ConsultationStatusDelivered  ConsultationStatus = "delivered"
)

// Consultation is owned by the clinical workflow; accounting only reads it.
// Date is stored as epoch milliseconds.
type Consultation struct {
	ID             int64              `json:"id"`
	PatientID      int64              `json:"patient_id"`
	PatientName    string             `json:"patient_name"`
	DoctorID       int64              `json:"doctor_id"`
	DoctorName     string             `json:"doctor_name"`
	Date           int64              `json:"date"`
	Status         ConsultationStatus `json:"status"`
	PaymentReceipt *string            `json:"payment_receipt,omitempty"`
	PaymentAmount  *decimal.Decimal   `json:"payment_amount,omitempty"`
}

func (c Consultation) Time() time.Time {
	return time.UnixMilli(c.Date)
}

// Amount returns the billed amount, zero when the consultation is not billed yet.
func (c Consultation) Amount() decimal.Decimal {
	if c.PaymentAmount == nil {
		return decimal.Zero
	}
	return *c.PaymentAmount
}

type DailyIncomeSummary struct {
	RangeStart        time.Time       `json:"range_start"`
	RangeEnd          time.Time       `json:"range_end"`
	TotalIncome       decimal.Decimal `json:"total_income"`
	ConsultationCount int             `json:"consultation_count"`
	AverageTicket     decimal.Decimal `json:"average_ticket"`
	Transactions      []Consultation  `json:"transactions"`
}

// EmptyIncomeSummary is what the accounting dashboard shows when nothing was
// billed or the query failed.
func EmptyIncomeSummary(start, end time.Time) DailyIncomeSummary {
	return DailyIncomeSummary{
		RangeStart:    start,
		RangeEnd:      end,
		TotalIncome:   decimal.Zero,
		AverageTicket: decimal.Zero,
		Transactions:  []Consultation{},
	}
}

// SummarizeIncome folds transactions, already ordered newest-first, into the
// dashboard metrics.
func SummarizeIncome(start, end time.Time, transactions []Consultation) DailyIncomeSummary {
	summary := EmptyIncomeSummary(start, end)
	if len(transactions) == 0 {
		return summary
	}

	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount())
	}

	summary.TotalIncome = total
	summary.ConsultationCount = len(transactions)
	summary.AverageTicket = total.Div(decimal.NewFromInt(int64(len(transactions))))
	summary.Transactions = transactions
	return summary
}
