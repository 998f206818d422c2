package notify

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"clinicdesk/internal/domain"
)

type recordingDispatcher struct {
	events []domain.AppointmentEvent
	err    error
}

func (r *recordingDispatcher) Dispatch(_ context.Context, event domain.AppointmentEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func TestMulti_DeliversToAllAndJoinsErrors(t *testing.T) {
	failure := errors.New("broker down")
	ok := &recordingDispatcher{}
	failing := &recordingDispatcher{err: failure}

	event := domain.AppointmentEvent{Type: domain.AppointmentEventCreated, AppointmentID: 42}
	err := Multi{failing, ok}.Dispatch(context.Background(), event)

	if !errors.Is(err, failure) {
		t.Fatalf("expected joined error to wrap the broker failure, got %v", err)
	}
	if len(ok.events) != 1 || ok.events[0].AppointmentID != 42 {
		t.Fatalf("expected the healthy dispatcher to still receive the event, got %+v", ok.events)
	}
}

func TestMulti_NoErrors(t *testing.T) {
	if err := (Multi{&recordingDispatcher{}}).Dispatch(context.Background(), domain.AppointmentEvent{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestLogDispatcher(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	d := NewLogDispatcher(zap.New(core))

	event := domain.AppointmentEvent{
		Type:          domain.AppointmentEventStatusChanged,
		AppointmentID: 7,
		Status:        domain.AppointmentStatusConfirmedPhone,
		Recipients:    []string{"doctor:3", "role:admin"},
	}
	if err := d.Dispatch(context.Background(), event); err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["appointment_id"]; got != int64(7) {
		t.Fatalf("expected appointment_id 7, got %v", got)
	}
}
