package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestSummarizeIncome_Empty(t *testing.T) {
	start := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)

	s := SummarizeIncome(start, end, nil)
	if !s.TotalIncome.IsZero() || s.ConsultationCount != 0 || !s.AverageTicket.IsZero() {
		t.Fatalf("expected zero summary, got %+v", s)
	}
	if s.Transactions == nil || len(s.Transactions) != 0 {
		t.Fatalf("expected empty non-nil transactions, got %#v", s.Transactions)
	}
}

func TestSummarizeIncome_Linear(t *testing.T) {
	txs := []Consultation{
		{ID: 3, Date: 3000, PaymentAmount: amount("350.50")},
		{ID: 2, Date: 2000, PaymentAmount: amount("200")},
		{ID: 1, Date: 1000, PaymentAmount: amount("150.25")},
	}

	s := SummarizeIncome(time.Time{}, time.Time{}, txs)
	if !s.TotalIncome.Equal(decimal.RequireFromString("700.75")) {
		t.Fatalf("expected total 700.75, got %s", s.TotalIncome)
	}
	if s.ConsultationCount != 3 {
		t.Fatalf("expected count 3, got %d", s.ConsultationCount)
	}
	expectedAvg := s.TotalIncome.Div(decimal.NewFromInt(3))
	if !s.AverageTicket.Equal(expectedAvg) {
		t.Fatalf("expected average %s, got %s", expectedAvg, s.AverageTicket)
	}
	if s.Transactions[0].ID != 3 {
		t.Fatalf("expected order preserved newest-first, got first id %d", s.Transactions[0].ID)
	}
}

func TestSummarizeIncome_UnbilledCountsAsZero(t *testing.T) {
	txs := []Consultation{
		{ID: 1, PaymentAmount: amount("100")},
		{ID: 2},
	}
	s := SummarizeIncome(time.Time{}, time.Time{}, txs)
	if !s.TotalIncome.Equal(decimal.NewFromInt(100)) || !s.AverageTicket.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected total 100 avg 50, got %s / %s", s.TotalIncome, s.AverageTicket)
	}
}
