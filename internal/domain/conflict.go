package domain

import (
	"time"
)

type BookingCandidate struct {
	DoctorID int64
	Start    time.Time
	End      time.Time
}

// Overlaps uses half-open intervals: touching ranges do not overlap.
func (c BookingCandidate) Overlaps(start, end time.Time) bool {
	return c.Start.Before(end) && c.End.After(start)
}

// HasConflict reports whether any non-cancelled appointment of the same
// doctor overlaps the candidate.
func HasConflict(candidate BookingCandidate, existing []Appointment) bool {
	for _, e := range existing {
		if e.DoctorID != candidate.DoctorID {
			continue
		}
		if e.Status == AppointmentStatusCancelled {
			continue
		}
		if candidate.Overlaps(e.Date, e.EndDate) {
			return true
		}
	}
	return false
}

// ValidateBookingWindow checks the candidate on its own, before any
// existing appointment is consulted.
func ValidateBookingWindow(candidate BookingCandidate, now time.Time) error {
	if !candidate.End.After(candidate.Start) {
		return ErrInvalidTimeRange
	}
	if candidate.Start.Before(now) {
		return ErrBookingInPast
	}
	return nil
}
