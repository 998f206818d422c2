package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"clinicdesk/internal/domain"
)

const appointmentColumns = `
	a.id, a.patient_id, a.patient_name, a.doctor_id, a.doctor_name,
	a.date, a.end_date, a.status, a.reason, a.created_at, a.created_by, a.updated_at,
	a.confirmed_at, a.confirmed_by, a.confirmation_method,
	a.payment_receipt, a.payment_amount::text, a.paid_at, a.paid_by,
	a.cancel_reason, a.cancelled_at, a.cancelled_by
`

type rowScanner interface {
	Scan(dest ...any) error
}

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

func (r *AppointmentRepo) Create(ctx context.Context, dto domain.CreateAppointmentDTO) (int64, error) {
	query := `
		INSERT INTO appointments (patient_id, patient_name, doctor_id, doctor_name, date, end_date, status, reason, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err := r.db.QueryRow(ctx, query,
		dto.PatientID,
		dto.PatientName,
		dto.DoctorID,
		dto.DoctorName,
		dto.Date,
		dto.EndDate,
		domain.AppointmentStatusScheduled,
		dto.Reason,
		dto.CreatedBy,
		now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ошибка создания записи на прием: %w", err)
	}

	return id, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments a WHERE a.id = $1`

	appointment, err := scanAppointment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("запись на прием с ID %d: %w", id, domain.ErrAppointmentNotFound)
		}
		return nil, fmt.Errorf("ошибка получения записи на прием: %w", err)
	}

	return appointment, nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, update domain.AppointmentStatusUpdate) error {
	updateFields := []string{"status = $1"}
	args := []interface{}{update.Status}
	argCount := 2

	set := func(column string, value interface{}) {
		updateFields = append(updateFields, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if update.ConfirmedAt != nil {
		set("confirmed_at", *update.ConfirmedAt)
	}
	if update.ConfirmedBy != nil {
		set("confirmed_by", *update.ConfirmedBy)
	}
	if update.ConfirmationMethod != nil {
		set("confirmation_method", string(*update.ConfirmationMethod))
	}
	if update.PaymentReceipt != nil {
		set("payment_receipt", *update.PaymentReceipt)
	}
	if update.PaymentAmount != nil {
		updateFields = append(updateFields, fmt.Sprintf("payment_amount = $%d::numeric", argCount))
		args = append(args, update.PaymentAmount.String())
		argCount++
	}
	if update.PaidAt != nil {
		set("paid_at", *update.PaidAt)
	}
	if update.PaidBy != nil {
		set("paid_by", *update.PaidBy)
	}
	if update.CancelReason != nil {
		set("cancel_reason", *update.CancelReason)
	}
	if update.CancelledAt != nil {
		set("cancelled_at", *update.CancelledAt)
	}
	if update.CancelledBy != nil {
		set("cancelled_by", *update.CancelledBy)
	}

	set("updated_at", time.Now())

	args = append(args, id, update.From)
	query := fmt.Sprintf(`
		UPDATE appointments
		SET %s
		WHERE id = $%d AND status = $%d
	`, strings.Join(updateFields, ", "), argCount, argCount+1)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса записи: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var current domain.AppointmentStatus
	err = r.db.QueryRow(ctx, `SELECT status FROM appointments WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("запись на прием с ID %d: %w", id, domain.ErrAppointmentNotFound)
		}
		return fmt.Errorf("ошибка проверки статуса записи: %w", err)
	}

	return fmt.Errorf("статус записи %d уже изменен на %q: %w", id, current, domain.ErrInvalidTransition)
}

func (r *AppointmentRepo) ListRange(ctx context.Context, start, end time.Time, doctorID *int64) ([]domain.Appointment, error) {
	conditions := []string{"a.date < $1", "a.end_date > $2"}
	args := []interface{}{end, start}

	if doctorID != nil {
		conditions = append(conditions, "a.doctor_id = $3")
		args = append(args, *doctorID)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM appointments a
		WHERE %s
		ORDER BY a.date ASC
	`, appointmentColumns, strings.Join(conditions, " AND "))

	return r.query(ctx, query, args...)
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	whereClause, args := buildAppointmentWhere(filter)

	query := `SELECT ` + appointmentColumns + ` FROM appointments a` + whereClause + ` ORDER BY a.date DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	return r.query(ctx, query, args...)
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	whereClause, args := buildAppointmentWhere(filter)

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM appointments a`+whereClause, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета записей: %w", err)
	}

	return count, nil
}

func (r *AppointmentRepo) query(ctx context.Context, query string, args ...interface{}) ([]domain.Appointment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки записи: %w", err)
		}
		appointments = append(appointments, *appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при обработке результатов: %w", err)
	}

	return appointments, nil
}

func buildAppointmentWhere(filter domain.AppointmentFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("a.doctor_id = $%d", argCount))
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("a.patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argCount))
		args = append(args, *filter.StartDate)
		argCount++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argCount))
		args = append(args, *filter.EndDate)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var confirmationMethod, paymentAmount *string

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.PatientName,
		&a.DoctorID,
		&a.DoctorName,
		&a.Date,
		&a.EndDate,
		&a.Status,
		&a.Reason,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.UpdatedAt,
		&a.ConfirmedAt,
		&a.ConfirmedBy,
		&confirmationMethod,
		&a.PaymentReceipt,
		&paymentAmount,
		&a.PaidAt,
		&a.PaidBy,
		&a.CancelReason,
		&a.CancelledAt,
		&a.CancelledBy,
	)
	if err != nil {
		return nil, err
	}

	if confirmationMethod != nil {
		method := domain.ConfirmationMethod(*confirmationMethod)
		a.ConfirmationMethod = &method
	}

	if paymentAmount != nil {
		amount, err := decimal.NewFromString(*paymentAmount)
		if err != nil {
			return nil, fmt.Errorf("некорректная сумма оплаты %q: %w", *paymentAmount, err)
		}
		a.PaymentAmount = &amount
	}

	return &a, nil
}
