package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"clinicdesk/internal/domain"
)

func ptr[T any](v T) *T {
	return &v
}

func TestRenderDailyIncome(t *testing.T) {
	loc := time.FixedZone("UTC-06:00", -6*60*60)
	start := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)

	txs := []domain.Consultation{
		{
			ID:             2,
			PatientName:    "Ana López",
			DoctorName:     "Dr. Ruiz",
			Date:           time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC).UnixMilli(),
			Status:         domain.ConsultationStatusFinished,
			PaymentReceipt: ptr("R-0002"),
			PaymentAmount:  ptr(decimal.RequireFromString("350.50")),
		},
		{
			ID:             1,
			PatientName:    "Juan Pérez",
			DoctorName:     "Dra. Soto",
			Date:           time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC).UnixMilli(),
			Status:         domain.ConsultationStatusDelivered,
			PaymentReceipt: ptr("R-0001"),
			PaymentAmount:  ptr(decimal.RequireFromString("150.25")),
		},
	}
	summary := domain.SummarizeIncome(start, end, txs)

	buf, err := RenderDailyIncome(summary, loc)
	if err != nil {
		t.Fatalf("RenderDailyIncome error: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header, 2 transactions and totals, got %d rows", len(rows))
	}
	if !reflect.DeepEqual(rows[0], Headers) {
		t.Fatalf("expected headers %v, got %v", Headers, rows[0])
	}

	first := rows[1]
	if first[0] != "01/03/2024 12:30" {
		t.Fatalf("expected clinic local time 01/03/2024 12:30, got %s", first[0])
	}
	if first[1] != "Ana López" || first[3] != "R-0002" || first[4] != "Finalizada" {
		t.Fatalf("unexpected first row %v", first)
	}

	totals := rows[3]
	if totals[0] != TotalLabel || totals[1] != "2" {
		t.Fatalf("expected totals label and count, got %v", totals)
	}
	if totals[5] != "500.75" {
		t.Fatalf("expected total 500.75, got %s", totals[5])
	}
}

func TestRenderDailyIncome_Empty(t *testing.T) {
	summary := domain.EmptyIncomeSummary(time.Time{}, time.Time{})

	buf, err := RenderDailyIncome(summary, time.UTC)
	if err != nil {
		t.Fatalf("RenderDailyIncome error: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header and totals only, got %d rows", len(rows))
	}
	if rows[1][0] != TotalLabel || rows[1][1] != "0" {
		t.Fatalf("expected zero totals row, got %v", rows[1])
	}
}

func TestFileName(t *testing.T) {
	if got := FileName("2024-03-01"); got != "corte-de-caja-2024-03-01.xlsx" {
		t.Fatalf("unexpected file name %s", got)
	}
}
