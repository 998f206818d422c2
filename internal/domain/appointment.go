package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled      AppointmentStatus = "scheduled"
	AppointmentStatusConfirmedPhone AppointmentStatus = "confirmed_phone"
	AppointmentStatusPaidCheckedIn  AppointmentStatus = "paid_checked_in"
	AppointmentStatusResidentIntake AppointmentStatus = "resident_intake"
	AppointmentStatusInProgress     AppointmentStatus = "in_progress"
	AppointmentStatusCompleted      AppointmentStatus = "completed"
	AppointmentStatusCancelled      AppointmentStatus = "cancelled"
	AppointmentStatusNoShow         AppointmentStatus = "no_show"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmedPhone, AppointmentStatusPaidCheckedIn,
		AppointmentStatusResidentIntake, AppointmentStatusInProgress, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is accepted.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled || s == AppointmentStatusNoShow
}

type ConfirmationMethod string

const (
	ConfirmationInPerson ConfirmationMethod = "En Persona"
	ConfirmationPhone    ConfirmationMethod = "Por Teléfono"
	ConfirmationWhatsApp ConfirmationMethod = "Por WhatsApp"
)

func (m ConfirmationMethod) IsValid() bool {
	switch m {
	case ConfirmationInPerson, ConfirmationPhone, ConfirmationWhatsApp:
		return true
	}
	return false
}

type Appointment struct {
	ID          int64             `json:"id"`
	PatientID   int64             `json:"patient_id"`
	PatientName string            `json:"patient_name"`
	DoctorID    int64             `json:"doctor_id"`
	DoctorName  string            `json:"doctor_name"`
	Date        time.Time         `json:"date"`
	EndDate     time.Time         `json:"end_date"`
	Status      AppointmentStatus `json:"status"`
	Reason      string            `json:"reason"`
	CreatedAt   time.Time         `json:"created_at"`
	CreatedBy   int64             `json:"created_by"`
	UpdatedAt   time.Time         `json:"updated_at"`

	ConfirmedAt        *time.Time          `json:"confirmed_at,omitempty"`
	ConfirmedBy        *int64              `json:"confirmed_by,omitempty"`
	ConfirmationMethod *ConfirmationMethod `json:"confirmation_method,omitempty"`

	PaymentReceipt *string          `json:"payment_receipt,omitempty"`
	PaymentAmount  *decimal.Decimal `json:"payment_amount,omitempty"`
	PaidAt         *time.Time       `json:"paid_at,omitempty"`
	PaidBy         *int64           `json:"paid_by,omitempty"`

	CancelReason *string    `json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy  *int64     `json:"cancelled_by,omitempty"`
}

type CreateAppointmentDTO struct {
	PatientID   int64     `json:"patient_id" binding:"required"`
	PatientName string    `json:"patient_name" binding:"required,max=255,person_name"`
	DoctorID    int64     `json:"doctor_id" binding:"required"`
	DoctorName  string    `json:"doctor_name" binding:"required,max=255,person_name"`
	Date        time.Time `json:"date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Reason      string    `json:"reason"`
	CreatedBy   int64     `json:"-"`
}

// AppointmentStatusUpdate is a partial merge: nil fields are left untouched.
// The write only applies while the stored status still equals From.
type AppointmentStatusUpdate struct {
	From   AppointmentStatus
	Status AppointmentStatus

	ConfirmedAt        *time.Time
	ConfirmedBy        *int64
	ConfirmationMethod *ConfirmationMethod

	PaymentReceipt *string
	PaymentAmount  *decimal.Decimal
	PaidAt         *time.Time
	PaidBy         *int64

	CancelReason *string
	CancelledAt  *time.Time
	CancelledBy  *int64
}

// Apply merges the update into a copy of the appointment.
func (u AppointmentStatusUpdate) Apply(a Appointment, at time.Time) Appointment {
	a.Status = u.Status
	a.UpdatedAt = at
	if u.ConfirmedAt != nil {
		a.ConfirmedAt = u.ConfirmedAt
	}
	if u.ConfirmedBy != nil {
		a.ConfirmedBy = u.ConfirmedBy
	}
	if u.ConfirmationMethod != nil {
		a.ConfirmationMethod = u.ConfirmationMethod
	}
	if u.PaymentReceipt != nil {
		a.PaymentReceipt = u.PaymentReceipt
	}
	if u.PaymentAmount != nil {
		a.PaymentAmount = u.PaymentAmount
	}
	if u.PaidAt != nil {
		a.PaidAt = u.PaidAt
	}
	if u.PaidBy != nil {
		a.PaidBy = u.PaidBy
	}
	if u.CancelReason != nil {
		a.CancelReason = u.CancelReason
	}
	if u.CancelledAt != nil {
		a.CancelledAt = u.CancelledAt
	}
	if u.CancelledBy != nil {
		a.CancelledBy = u.CancelledBy
	}
	return a
}

type ConfirmAppointmentDTO struct {
	Method ConfirmationMethod `json:"method"`
}

type RegisterPaymentDTO struct {
	ReceiptNumber string          `json:"receipt_number" binding:"required,receipt"`
	Amount        decimal.Decimal `json:"amount"`
}

// MaxPaymentAmount is the smallest amount that no longer fits NUMERIC(12,2).
var MaxPaymentAmount = decimal.New(1, 10)

// ValidPaymentAmount reports whether amount is positive, carries at most
// two decimal places and stays below MaxPaymentAmount.
func ValidPaymentAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() &&
		amount.Equal(amount.Truncate(2)) &&
		amount.LessThan(MaxPaymentAmount)
}

type CancelAppointmentDTO struct {
	Reason string `json:"reason"`
}

type AppointmentFilter struct {
	PatientID *int64             `json:"patient_id"`
	DoctorID  *int64             `json:"doctor_id"`
	Status    *AppointmentStatus `json:"status"`
	StartDate *time.Time         `json:"start_date"`
	EndDate   *time.Time         `json:"end_date"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}
