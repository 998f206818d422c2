package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"clinicdesk/internal/domain"
)

const (
	SheetName  = "Corte de Caja"
	TotalLabel = "TOTAL"
	dateLayout = "02/01/2006 15:04"
	// built-in "0.00"
	moneyNumFmt = 2
)

var Headers = []string{"Fecha/Hora", "Paciente", "Doctor", "Recibo", "Estado", "Monto"}

// RenderDailyIncome writes the cash cut as an .xlsx workbook: a header row,
// one row per transaction and a totals row.
func RenderDailyIncome(summary domain.DailyIncomeSummary, loc *time.Location) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("ошибка создания листа: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания стиля: %w", err)
	}

	for i, h := range Headers {
		if err := setCell(f, i+1, 1, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", headerStyle); err != nil {
		return nil, fmt.Errorf("ошибка применения стиля: %w", err)
	}

	row := 2
	for _, c := range summary.Transactions {
		receipt := ""
		if c.PaymentReceipt != nil {
			receipt = *c.PaymentReceipt
		}

		values := []interface{}{
			c.Time().In(loc).Format(dateLayout),
			c.PatientName,
			c.DoctorName,
			receipt,
			domain.ConsultationStatusLabel(c.Status),
			c.Amount().InexactFloat64(),
		}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return nil, err
			}
		}
		row++
	}

	if err := setCell(f, 1, row, TotalLabel); err != nil {
		return nil, err
	}
	if err := setCell(f, 2, row, summary.ConsultationCount); err != nil {
		return nil, err
	}
	if err := setCell(f, 6, row, summary.TotalIncome.InexactFloat64()); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), headerStyle); err != nil {
		return nil, fmt.Errorf("ошибка применения стиля: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "F2", fmt.Sprintf("F%d", row), moneyStyle); err != nil {
		return nil, fmt.Errorf("ошибка применения стиля: %w", err)
	}

	if err := f.SetColWidth(SheetName, "A", "F", 20); err != nil {
		return nil, fmt.Errorf("ошибка настройки ширины колонок: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("ошибка записи файла отчета: %w", err)
	}
	return buf, nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("ошибка записи ячейки %s: %w", cell, err)
	}
	return nil
}

// FileName is the attachment name offered to the browser.
func FileName(day string) string {
	return fmt.Sprintf("corte-de-caja-%s.xlsx", day)
}
