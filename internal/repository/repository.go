package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"clinicdesk/internal/domain"
)

type Repositories struct {
	Appointment  AppointmentRepository
	Consultation ConsultationRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Appointment:  NewAppointmentRepository(db),
		Consultation: NewConsultationRepository(db),
	}
}

type AppointmentRepository interface {
	Create(ctx context.Context, dto domain.CreateAppointmentDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, update domain.AppointmentStatusUpdate) error
	// ListRange returns appointments overlapping [start, end), optionally for one doctor.
	ListRange(ctx context.Context, start, end time.Time, doctorID *int64) ([]domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
}

type ConsultationRepository interface {
	// ListRange returns consultations with start <= date <= end, newest first.
	ListRange(ctx context.Context, start, end time.Time) ([]domain.Consultation, error)
}
