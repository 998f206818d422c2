package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/lock"
	"clinicdesk/internal/repository"
	"clinicdesk/pkg/metrics"
	"clinicdesk/pkg/validator"
)

type AppointmentServiceImpl struct {
	repo     repository.AppointmentRepository
	locker   lock.Locker
	notifier *Notifier
	loc      *time.Location
	metrics  *metrics.Collector
	logger   *zap.Logger
	now      func() time.Time
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	locker lock.Locker,
	notifier *Notifier,
	loc *time.Location,
	m *metrics.Collector,
	logger *zap.Logger,
	now func() time.Time,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		loc:      loc,
		metrics:  m,
		logger:   logger,
		now:      now,
	}
}

// Book creates a scheduled appointment after checking the doctor's calendar.
// The range query, the conflict check and the insert run under locks on
// every clinic day the booking touches so two desks cannot book the same slot.
func (s *AppointmentServiceImpl) Book(ctx context.Context, actor domain.Actor, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointment.book")
	defer span.End()
	span.SetAttributes(attribute.Int64("doctor_id", dto.DoctorID))

	candidate := domain.BookingCandidate{DoctorID: dto.DoctorID, Start: dto.Date, End: dto.EndDate}
	if err := domain.ValidateBookingWindow(candidate, s.now()); err != nil {
		s.bookingOutcome(err)
		return nil, err
	}

	dto.PatientName = validator.FormatName(dto.PatientName)
	dto.DoctorName = validator.FormatName(dto.DoctorName)
	dto.Reason = validator.SanitizeString(dto.Reason)
	dto.CreatedBy = actor.ID

	keys := lock.BookingKeys(dto.DoctorID, dto.Date, dto.EndDate, s.loc)
	lk, err := lock.ObtainAll(ctx, s.locker, keys)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			s.logger.Warn("расписание врача заблокировано", zap.Strings("keys", keys))
			s.bookingOutcome(domain.ErrBookingBusy)
			return nil, domain.ErrBookingBusy
		}
		s.logger.Error("ошибка получения блокировки расписания", zap.Strings("keys", keys), zap.Error(err))
		s.bookingOutcome(err)
		failSpan(span, err)
		return nil, fmt.Errorf("ошибка при записи на прием: %w", err)
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := lk.Release(releaseCtx); err != nil {
			s.logger.Warn("ошибка освобождения блокировки", zap.Strings("keys", keys), zap.Error(err))
		}
	}()

	existing, err := s.repo.ListRange(ctx, dto.Date, dto.EndDate, &dto.DoctorID)
	if err != nil {
		s.logger.Error("ошибка получения расписания врача", zap.Int64("doctorID", dto.DoctorID), zap.Error(err))
		s.bookingOutcome(err)
		failSpan(span, err)
		return nil, fmt.Errorf("ошибка при проверке расписания: %w", err)
	}

	if domain.HasConflict(candidate, existing) {
		s.logger.Info("пересечение с существующей записью",
			zap.Int64("doctorID", dto.DoctorID),
			zap.Time("start", dto.Date),
			zap.Time("end", dto.EndDate),
		)
		s.bookingOutcome(domain.ErrBookingConflict)
		return nil, domain.ErrBookingConflict
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания записи", zap.Error(err))
		s.bookingOutcome(err)
		failSpan(span, err)
		return nil, fmt.Errorf("ошибка при создании записи: %w", err)
	}

	now := s.now()
	appointment := &domain.Appointment{
		ID:          id,
		PatientID:   dto.PatientID,
		PatientName: dto.PatientName,
		DoctorID:    dto.DoctorID,
		DoctorName:  dto.DoctorName,
		Date:        dto.Date,
		EndDate:     dto.EndDate,
		Status:      domain.AppointmentStatusScheduled,
		Reason:      dto.Reason,
		CreatedAt:   now,
		CreatedBy:   actor.ID,
		UpdatedAt:   now,
	}

	s.bookingOutcome(nil)
	s.notifier.Publish(domain.NewAppointmentEvent(domain.AppointmentEventCreated, *appointment, actor.ID, s.loc, now))

	s.logger.Info("создана запись на прием",
		zap.Int64("id", id),
		zap.Int64("doctorID", dto.DoctorID),
		zap.Int64("createdBy", actor.ID),
	)
	return appointment, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Error("ошибка получения записи", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка записей", zap.Error(err))
		return nil, 0, fmt.Errorf("ошибка при получении списка записей: %w", err)
	}

	count, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения количества записей", zap.Error(err))
		return appointments, len(appointments), nil
	}

	return appointments, count, nil
}

func (s *AppointmentServiceImpl) ListRange(ctx context.Context, start, end time.Time, doctorID *int64) ([]domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointment.list_range")
	defer span.End()

	if !end.After(start) {
		return nil, domain.ErrInvalidTimeRange
	}

	appointments, err := s.repo.ListRange(ctx, start, end, doctorID)
	if err != nil {
		s.logger.Error("ошибка получения записей за период",
			zap.Time("start", start),
			zap.Time("end", end),
			zap.Error(err),
		)
		failSpan(span, err)
		return nil, fmt.Errorf("ошибка при получении расписания: %w", err)
	}

	return appointments, nil
}

func (s *AppointmentServiceImpl) Confirm(ctx context.Context, id int64, actor domain.Actor, dto domain.ConfirmAppointmentDTO) (*domain.Appointment, error) {
	method := dto.Method
	if method == "" {
		method = domain.ConfirmationPhone
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%q: %w", method, domain.ErrInvalidConfirmationMethod)
	}

	return s.transition(ctx, id, actor, domain.OperationConfirm, func(update *domain.AppointmentStatusUpdate, now time.Time) {
		update.ConfirmedAt = &now
		update.ConfirmedBy = PointerTo(actor.ID)
		update.ConfirmationMethod = &method
	})
}

func (s *AppointmentServiceImpl) RegisterPayment(ctx context.Context, id int64, actor domain.Actor, dto domain.RegisterPaymentDTO) (*domain.Appointment, error) {
	receipt := strings.TrimSpace(dto.ReceiptNumber)
	if receipt == "" || !domain.ValidPaymentAmount(dto.Amount) {
		return nil, domain.ErrInvalidPayment
	}
	amount := dto.Amount

	return s.transition(ctx, id, actor, domain.OperationRegisterPayment, func(update *domain.AppointmentStatusUpdate, now time.Time) {
		update.PaymentReceipt = &receipt
		update.PaymentAmount = &amount
		update.PaidAt = &now
		update.PaidBy = PointerTo(actor.ID)
	})
}

func (s *AppointmentServiceImpl) CompleteResidentIntake(ctx context.Context, id int64, actor domain.Actor) (*domain.Appointment, error) {
	return s.transition(ctx, id, actor, domain.OperationCompleteResidentIntake, nil)
}

func (s *AppointmentServiceImpl) StartConsultation(ctx context.Context, id int64, actor domain.Actor) (*domain.Appointment, error) {
	return s.transition(ctx, id, actor, domain.OperationStartConsultation, nil)
}

func (s *AppointmentServiceImpl) Complete(ctx context.Context, id int64, actor domain.Actor) (*domain.Appointment, error) {
	return s.transition(ctx, id, actor, domain.OperationComplete, nil)
}

func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id int64, actor domain.Actor, dto domain.CancelAppointmentDTO) (*domain.Appointment, error) {
	reason := validator.SanitizeString(dto.Reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}

	return s.transition(ctx, id, actor, domain.OperationCancel, func(update *domain.AppointmentStatusUpdate, now time.Time) {
		update.CancelReason = &reason
		update.CancelledAt = &now
		update.CancelledBy = PointerTo(actor.ID)
	})
}

func (s *AppointmentServiceImpl) MarkNoShow(ctx context.Context, id int64, actor domain.Actor) (*domain.Appointment, error) {
	return s.transition(ctx, id, actor, domain.OperationMarkNoShow, nil)
}

// transition applies op to the stored appointment if its current status
// allows it. fill adds the operation's metadata to the partial update.
func (s *AppointmentServiceImpl) transition(
	ctx context.Context,
	id int64,
	actor domain.Actor,
	op domain.Operation,
	fill func(update *domain.AppointmentStatusUpdate, now time.Time),
) (*domain.Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointment."+string(op))
	defer span.End()
	span.SetAttributes(attribute.Int64("appointment_id", id))

	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrAppointmentNotFound) {
			s.logger.Error("ошибка получения записи", zap.Int64("id", id), zap.Error(err))
			failSpan(span, err)
		}
		s.metrics.TransitionsTotal.WithLabelValues(string(op), "error").Inc()
		return nil, err
	}

	next, err := domain.Transition(appointment.Status, op)
	if err != nil {
		s.logger.Warn("недопустимый переход статуса",
			zap.Int64("id", id),
			zap.String("from", string(appointment.Status)),
			zap.String("operation", string(op)),
			zap.Int64("actor", actor.ID),
		)
		s.metrics.TransitionsTotal.WithLabelValues(string(op), "rejected").Inc()
		return nil, err
	}

	now := s.now()
	update := domain.AppointmentStatusUpdate{From: appointment.Status, Status: next}
	if fill != nil {
		fill(&update, now)
	}

	if err := s.repo.UpdateStatus(ctx, id, update); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			s.logger.Warn("статус записи изменен параллельно", zap.Int64("id", id), zap.Error(err))
			s.metrics.TransitionsTotal.WithLabelValues(string(op), "rejected").Inc()
			return nil, err
		}
		s.logger.Error("ошибка обновления статуса записи",
			zap.Int64("id", id),
			zap.String("status", string(next)),
			zap.Error(err),
		)
		s.metrics.TransitionsTotal.WithLabelValues(string(op), "error").Inc()
		failSpan(span, err)
		return nil, fmt.Errorf("ошибка при обновлении статуса записи: %w", err)
	}

	updated := update.Apply(*appointment, now)
	s.metrics.TransitionsTotal.WithLabelValues(string(op), "ok").Inc()
	s.notifier.Publish(domain.NewAppointmentEvent(domain.AppointmentEventStatusChanged, updated, actor.ID, s.loc, now))

	s.logger.Info("статус записи изменен",
		zap.Int64("id", id),
		zap.String("from", string(appointment.Status)),
		zap.String("to", string(next)),
		zap.Int64("actor", actor.ID),
	)
	return &updated, nil
}

func (s *AppointmentServiceImpl) bookingOutcome(err error) {
	outcome := "created"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrBookingConflict):
		outcome = "conflict"
	case errors.Is(err, domain.ErrBookingInPast):
		outcome = "past"
	case errors.Is(err, domain.ErrBookingBusy):
		outcome = "busy"
	case errors.Is(err, domain.ErrInvalidTimeRange):
		outcome = "invalid"
	default:
		outcome = "error"
	}
	s.metrics.BookingsTotal.WithLabelValues(outcome).Inc()
}
