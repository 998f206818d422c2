package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"clinicdesk/internal/domain"
)

type ConsultationRepo struct {
	db *pgxpool.Pool
}

func NewConsultationRepository(db *pgxpool.Pool) *ConsultationRepo {
	return &ConsultationRepo{
		db: db,
	}
}

func (r *ConsultationRepo) ListRange(ctx context.Context, start, end time.Time) ([]domain.Consultation, error) {
	query := `
		SELECT id, patient_id, patient_name, doctor_id, doctor_name, date, status,
			payment_receipt, payment_amount::text
		FROM consultations
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC
	`

	rows, err := r.db.Query(ctx, query, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("ошибка получения консультаций за период: %w", err)
	}
	defer rows.Close()

	consultations := make([]domain.Consultation, 0)
	for rows.Next() {
		var c domain.Consultation
		var paymentAmount *string

		err := rows.Scan(
			&c.ID,
			&c.PatientID,
			&c.PatientName,
			&c.DoctorID,
			&c.DoctorName,
			&c.Date,
			&c.Status,
			&c.PaymentReceipt,
			&paymentAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования консультации: %w", err)
		}

		if paymentAmount != nil {
			amount, err := decimal.NewFromString(*paymentAmount)
			if err != nil {
				return nil, fmt.Errorf("некорректная сумма оплаты консультации %d: %w", c.ID, err)
			}
			c.PaymentAmount = &amount
		}

		consultations = append(consultations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return consultations, nil
}
