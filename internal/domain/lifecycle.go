package domain

import (
	"fmt"
)

// Operation names a front-desk action on an appointment.
type Operation string

const (
	OperationConfirm                Operation = "confirm"
	OperationRegisterPayment        Operation = "register_payment"
	OperationCompleteResidentIntake Operation = "complete_resident_intake"
	OperationStartConsultation      Operation = "start_consultation"
	OperationComplete               Operation = "complete"
	OperationCancel                 Operation = "cancel"
	OperationMarkNoShow             Operation = "mark_no_show"
)

type transition struct {
	from []AppointmentStatus
	to   AppointmentStatus
}

// scheduled → confirmed_phone → paid_checked_in → in_progress → completed
// paid_checked_in → resident_intake → in_progress
// scheduled | confirmed_phone | paid_checked_in | resident_intake → cancelled
// scheduled | confirmed_phone → no_show
var transitions = map[Operation]transition{
	OperationConfirm: {
		from: []AppointmentStatus{AppointmentStatusScheduled},
		to:   AppointmentStatusConfirmedPhone,
	},
	OperationRegisterPayment: {
		from: []AppointmentStatus{AppointmentStatusConfirmedPhone},
		to:   AppointmentStatusPaidCheckedIn,
	},
	OperationCompleteResidentIntake: {
		from: []AppointmentStatus{AppointmentStatusPaidCheckedIn},
		to:   AppointmentStatusResidentIntake,
	},
	OperationStartConsultation: {
		from: []AppointmentStatus{AppointmentStatusPaidCheckedIn, AppointmentStatusResidentIntake},
		to:   AppointmentStatusInProgress,
	},
	OperationComplete: {
		from: []AppointmentStatus{AppointmentStatusInProgress},
		to:   AppointmentStatusCompleted,
	},
	OperationCancel: {
		from: []AppointmentStatus{
			AppointmentStatusScheduled,
			AppointmentStatusConfirmedPhone,
			AppointmentStatusPaidCheckedIn,
			AppointmentStatusResidentIntake,
		},
		to: AppointmentStatusCancelled,
	},
	OperationMarkNoShow: {
		from: []AppointmentStatus{AppointmentStatusScheduled, AppointmentStatusConfirmedPhone},
		to:   AppointmentStatusNoShow,
	},
}

// TransitionError is returned when an operation is not allowed from the
// current status. It matches ErrInvalidTransition with errors.Is.
type TransitionError struct {
	From      AppointmentStatus
	Operation Operation
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("операция %q недопустима для статуса %q", e.Operation, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Transition returns the status an appointment moves to when op is applied
// while it is in current.
func Transition(current AppointmentStatus, op Operation) (AppointmentStatus, error) {
	t, ok := transitions[op]
	if !ok {
		return "", fmt.Errorf("неизвестная операция %q: %w", op, ErrInvalidTransition)
	}

	for _, from := range t.from {
		if from == current {
			return t.to, nil
		}
	}

	return "", &TransitionError{From: current, Operation: op}
}

// AllowedOperations lists the operations accepted from status, in a stable
// order. Appointment responses and calendar feed messages carry it as
// allowed_operations.
func AllowedOperations(status AppointmentStatus) []Operation {
	order := []Operation{
		OperationConfirm,
		OperationRegisterPayment,
		OperationCompleteResidentIntake,
		OperationStartConsultation,
		OperationComplete,
		OperationCancel,
		OperationMarkNoShow,
	}

	var allowed []Operation
	for _, op := range order {
		if _, err := Transition(status, op); err == nil {
			allowed = append(allowed, op)
		}
	}
	return allowed
}
