package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/notify"
	"clinicdesk/pkg/metrics"
)

const (
	notificationBufferSize = 1_000
	notificationTimeout    = 5 * time.Second
)

// Notifier delivers appointment events in the background. A slow or failing
// broker never delays the request that produced the event.
type Notifier struct {
	dispatcher notify.Dispatcher
	metrics    *metrics.Collector
	log        *zap.Logger

	mu     sync.RWMutex
	closed bool
	events chan domain.AppointmentEvent
	done   chan struct{}
}

func NewNotifier(dispatcher notify.Dispatcher, m *metrics.Collector, log *zap.Logger) *Notifier {
	n := &Notifier{
		dispatcher: dispatcher,
		metrics:    m,
		log:        log,
		events:     make(chan domain.AppointmentEvent, notificationBufferSize),
		done:       make(chan struct{}),
	}
	go n.worker()
	return n
}

// Publish enqueues the event. When the buffer is full the event is dropped.
func (n *Notifier) Publish(event domain.AppointmentEvent) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.log.Warn("уведомление после остановки отброшено", zap.Int64("appointment_id", event.AppointmentID))
		return
	}

	select {
	case n.events <- event:
	default:
		n.metrics.NotificationsFailed.Inc()
		n.log.Warn("буфер уведомлений заполнен, событие отброшено",
			zap.String("type", string(event.Type)),
			zap.Int64("appointment_id", event.AppointmentID),
		)
	}
}

// Shutdown drains queued events, waiting at most ten seconds.
func (n *Notifier) Shutdown() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	close(n.events)
	n.mu.Unlock()

	select {
	case <-n.done:
	case <-time.After(10 * time.Second):
		n.log.Warn("остановка уведомлений по таймауту, часть событий может быть потеряна")
	}
}

func (n *Notifier) worker() {
	defer close(n.done)
	for event := range n.events {
		ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
		if err := n.dispatcher.Dispatch(ctx, event); err != nil {
			n.metrics.NotificationsFailed.Inc()
			n.log.Error("ошибка отправки уведомления",
				zap.String("type", string(event.Type)),
				zap.Int64("appointment_id", event.AppointmentID),
				zap.Error(err),
			)
		}
		cancel()
	}
}
