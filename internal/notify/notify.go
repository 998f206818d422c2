package notify

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"clinicdesk/internal/domain"
)

// Dispatcher delivers appointment events to the doctor and administrators.
// Callers treat delivery as best effort.
type Dispatcher interface {
	Dispatch(ctx context.Context, event domain.AppointmentEvent) error
}

// Multi fans an event out to every dispatcher and joins their errors.
type Multi []Dispatcher

func (m Multi) Dispatch(ctx context.Context, event domain.AppointmentEvent) error {
	var errs []error
	for _, d := range m {
		if err := d.Dispatch(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LogDispatcher only records events. Used when no broker is configured.
type LogDispatcher struct {
	logger *zap.Logger
}

func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Dispatch(_ context.Context, event domain.AppointmentEvent) error {
	d.logger.Info("уведомление о записи",
		zap.String("type", string(event.Type)),
		zap.Int64("appointment_id", event.AppointmentID),
		zap.String("status", string(event.Status)),
		zap.String("when", event.When),
		zap.Strings("recipients", event.Recipients),
	)
	return nil
}
