package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"clinicdesk/config"
	"clinicdesk/internal/domain"
	"clinicdesk/internal/lock"
	"clinicdesk/internal/notify"
	"clinicdesk/internal/repository"
	"clinicdesk/internal/storage"
	"clinicdesk/pkg/metrics"
)

var tracer = otel.Tracer("clinicdesk/internal/service")

type Deps struct {
	Repos      *repository.Repositories
	Logger     *zap.Logger
	Config     *config.Config
	Locker     lock.Locker
	Dispatcher notify.Dispatcher
	// ReportStorage is optional; exports are not archived without it.
	ReportStorage storage.ReportStorage
	Metrics       *metrics.Collector
	Now           func() time.Time
}

type Services struct {
	Auth        AuthService
	Appointment AppointmentService
	Accounting  AccountingService
	Report      ReportService
	Notifier    *Notifier
}

func NewServices(deps Deps) *Services {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	loc := deps.Config.Clinic.Location

	notifier := NewNotifier(deps.Dispatcher, deps.Metrics, deps.Logger)
	accounting := NewAccountingService(deps.Repos.Consultation, loc, deps.Metrics, deps.Logger)

	return &Services{
		Auth:        NewAuthService(deps.Config.JWT, deps.Logger),
		Appointment: NewAppointmentService(deps.Repos.Appointment, deps.Locker, notifier, loc, deps.Metrics, deps.Logger, now),
		Accounting:  accounting,
		Report:      NewReportService(accounting, deps.ReportStorage, loc, deps.Metrics, deps.Logger),
		Notifier:    notifier,
	}
}

type AuthService interface {
	ParseToken(ctx context.Context, token string) (domain.Actor, error)
}

type AppointmentService interface {
	Book(ctx context.Context, actor domain.Actor, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
	// ListRange returns the appointments overlapping [start, end), for the calendar.
	ListRange(ctx context.Context, start, end time.Time, doctorID *int64) ([]domain.Appointment, error)

	Confirm(ctx context.Context, id int64, actor domain.Actor, dto domain.ConfirmAppointmentDTO) (*domain.Appointment, error)
	RegisterPayment(ctx context.Context, id int64, actor domain.Actor, dto domain.RegisterPaymentDTO) (*domain.Appointment, error)
	CompleteResidentIntake(ctx context.Context, id int64, actor domain.Actor) (*domain.Appointment, error)
	StartConsultation(ctx context.Context, id int64, actor domain.Actor) (*domain.Appointment, error)
	Complete(ctx context.Context, id int64, actor domain.Actor) (*domain.Appointment, error)
	Cancel(ctx context.Context, id int64, actor domain.Actor, dto domain.CancelAppointmentDTO) (*domain.Appointment, error)
	MarkNoShow(ctx context.Context, id int64, actor domain.Actor) (*domain.Appointment, error)
}

type AccountingService interface {
	// Summarize never fails: a query error yields an empty summary.
	Summarize(ctx context.Context, start, end time.Time) domain.DailyIncomeSummary
	SummarizeDay(ctx context.Context, day string) (domain.DailyIncomeSummary, error)
	SummarizeRange(ctx context.Context, fromDay, toDay string) (domain.DailyIncomeSummary, error)
}

type ReportService interface {
	ExportDaily(ctx context.Context, day string) (*DailyReport, error)
	ArchivedReport(ctx context.Context, objectName string) (*DailyReport, error)
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func PointerTo[T any](v T) *T {
	return &v
}
