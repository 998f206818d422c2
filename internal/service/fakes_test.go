package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"clinicdesk/internal/domain"
	"clinicdesk/internal/lock"
	"clinicdesk/pkg/metrics"
)

var errBackend = errors.New("backend unavailable")

type fakeAppointmentRepo struct {
	mu        sync.Mutex
	nextID    int64
	items     map[int64]domain.Appointment
	listErr   error
	createErr error
	updates   []domain.AppointmentStatusUpdate
	// listDelay widens the window between the range read and the insert.
	listDelay time.Duration
}

func newFakeAppointmentRepo(existing ...domain.Appointment) *fakeAppointmentRepo {
	r := &fakeAppointmentRepo{items: make(map[int64]domain.Appointment)}
	for _, a := range existing {
		r.items[a.ID] = a
		if a.ID > r.nextID {
			r.nextID = a.ID
		}
	}
	return r
}

func (r *fakeAppointmentRepo) Create(_ context.Context, dto domain.CreateAppointmentDTO) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return 0, r.createErr
	}
	r.nextID++
	r.items[r.nextID] = domain.Appointment{
		ID:          r.nextID,
		PatientID:   dto.PatientID,
		PatientName: dto.PatientName,
		DoctorID:    dto.DoctorID,
		DoctorName:  dto.DoctorName,
		Date:        dto.Date,
		EndDate:     dto.EndDate,
		Status:      domain.AppointmentStatusScheduled,
		Reason:      dto.Reason,
		CreatedBy:   dto.CreatedBy,
	}
	return r.nextID, nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}
	return &a, nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, update domain.AppointmentStatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return domain.ErrAppointmentNotFound
	}
	if a.Status != update.From {
		return fmt.Errorf("status is %s: %w", a.Status, domain.ErrInvalidTransition)
	}
	r.items[id] = update.Apply(a, time.Now())
	r.updates = append(r.updates, update)
	return nil
}

func (r *fakeAppointmentRepo) ListRange(_ context.Context, start, end time.Time, doctorID *int64) ([]domain.Appointment, error) {
	if r.listDelay > 0 {
		time.Sleep(r.listDelay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Appointment
	for _, a := range r.items {
		if doctorID != nil && a.DoctorID != *doctorID {
			continue
		}
		if a.Date.Before(end) && a.EndDate.After(start) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Appointment
	for _, a := range r.items {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	items, err := r.List(ctx, filter)
	return len(items), err
}

func (r *fakeAppointmentRepo) get(id int64) domain.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}

type fakeConsultationRepo struct {
	items []domain.Consultation
	err   error

	gotStart, gotEnd time.Time
}

func (r *fakeConsultationRepo) ListRange(_ context.Context, start, end time.Time) ([]domain.Consultation, error) {
	r.gotStart, r.gotEnd = start, end
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.Consultation
	for _, c := range r.items {
		if c.Date >= start.UnixMilli() && c.Date <= end.UnixMilli() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []domain.AppointmentEvent
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, event domain.AppointmentEvent) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return d.err
}

func (d *recordingDispatcher) all() []domain.AppointmentEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.AppointmentEvent, len(d.events))
	copy(out, d.events)
	return out
}

var clinicTZ = time.FixedZone("UTC-06:00", -6*60*60)

// fixedNow is 2024-03-01 08:00 in the clinic.
var fixedNow = time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)

type appointmentFixture struct {
	svc        *AppointmentServiceImpl
	repo       *fakeAppointmentRepo
	dispatcher *recordingDispatcher
	notifier   *Notifier
	metrics    *metrics.Collector
	logs       *observer.ObservedLogs
}

func newAppointmentFixture(t *testing.T, existing ...domain.Appointment) *appointmentFixture {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	m := metrics.NewCollector("clinicdesk", prometheus.NewRegistry())
	dispatcher := &recordingDispatcher{}
	notifier := NewNotifier(dispatcher, m, logger)
	t.Cleanup(notifier.Shutdown)

	repo := newFakeAppointmentRepo(existing...)
	svc := NewAppointmentService(repo, lock.NewLocalLocker(2*time.Second), notifier, clinicTZ, m, logger, func() time.Time { return fixedNow })

	return &appointmentFixture{
		svc:        svc,
		repo:       repo,
		dispatcher: dispatcher,
		notifier:   notifier,
		metrics:    m,
		logs:       logs,
	}
}

func slot(hhmm string, minutes int) (time.Time, time.Time) {
	t, err := time.ParseInLocation("2006-01-02 15:04", "2024-03-01 "+hhmm, clinicTZ)
	if err != nil {
		panic(err)
	}
	return t, t.Add(time.Duration(minutes) * time.Minute)
}

func bookingDTO(doctorID int64, hhmm string, minutes int) domain.CreateAppointmentDTO {
	start, end := slot(hhmm, minutes)
	return domain.CreateAppointmentDTO{
		PatientID:   10,
		PatientName: "ana lópez",
		DoctorID:    doctorID,
		DoctorName:  "Dr. Ruiz",
		Date:        start,
		EndDate:     end,
		Reason:      "Control",
	}
}

var receptionist = domain.Actor{ID: 5, Role: domain.UserRoleReceptionist}
