package domain

import (
	"strconv"
	"time"
)

type AppointmentEventType string

const (
	AppointmentEventCreated       AppointmentEventType = "appointment.created"
	AppointmentEventStatusChanged AppointmentEventType = "appointment.status_changed"
)

// AppointmentEvent is sent to the assigned doctor and the administrators.
type AppointmentEvent struct {
	Type          AppointmentEventType `json:"type"`
	AppointmentID int64                `json:"appointment_id"`
	DoctorID      int64                `json:"doctor_id"`
	PatientName   string               `json:"patient_name"`
	DoctorName    string               `json:"doctor_name"`
	Status        AppointmentStatus    `json:"status"`
	When          string               `json:"when"`
	Recipients    []string             `json:"recipients"`
	ActorID       int64                `json:"actor_id"`
	OccurredAt    time.Time            `json:"occurred_at"`
}

const EventDateLayout = "02/01/2006 15:04"

func NewAppointmentEvent(t AppointmentEventType, a Appointment, actorID int64, loc *time.Location, at time.Time) AppointmentEvent {
	return AppointmentEvent{
		Type:          t,
		AppointmentID: a.ID,
		DoctorID:      a.DoctorID,
		PatientName:   a.PatientName,
		DoctorName:    a.DoctorName,
		Status:        a.Status,
		When:          a.Date.In(loc).Format(EventDateLayout),
		Recipients:    []string{"doctor:" + strconv.FormatInt(a.DoctorID, 10), "role:" + string(UserRoleAdmin)},
		ActorID:       actorID,
		OccurredAt:    at,
	}
}
