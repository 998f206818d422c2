package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestTransition_MainProgression(t *testing.T) {
	steps := []struct {
		op       Operation
		expected AppointmentStatus
	}{
		{OperationConfirm, AppointmentStatusConfirmedPhone},
		{OperationRegisterPayment, AppointmentStatusPaidCheckedIn},
		{OperationStartConsultation, AppointmentStatusInProgress},
		{OperationComplete, AppointmentStatusCompleted},
	}

	status := AppointmentStatusScheduled
	for _, step := range steps {
		next, err := Transition(status, step.op)
		if err != nil {
			t.Fatalf("Transition(%s, %s) error: %v", status, step.op, err)
		}
		if next != step.expected {
			t.Fatalf("Transition(%s, %s) expected %s, got %s", status, step.op, step.expected, next)
		}
		status = next
	}
}

func TestTransition_ResidentIntakeBranch(t *testing.T) {
	next, err := Transition(AppointmentStatusPaidCheckedIn, OperationCompleteResidentIntake)
	if err != nil || next != AppointmentStatusResidentIntake {
		t.Fatalf("expected resident_intake, got %s (%v)", next, err)
	}
	next, err = Transition(next, OperationStartConsultation)
	if err != nil || next != AppointmentStatusInProgress {
		t.Fatalf("expected in_progress after resident intake, got %s (%v)", next, err)
	}
}

func TestTransition_RejectsOutOfOrder(t *testing.T) {
	cases := []struct {
		from AppointmentStatus
		op   Operation
	}{
		{AppointmentStatusScheduled, OperationRegisterPayment},
		{AppointmentStatusScheduled, OperationStartConsultation},
		{AppointmentStatusConfirmedPhone, OperationComplete},
		{AppointmentStatusInProgress, OperationCancel},
		{AppointmentStatusPaidCheckedIn, OperationMarkNoShow},
		{AppointmentStatusConfirmedPhone, OperationConfirm},
	}
	for _, tc := range cases {
		_, err := Transition(tc.from, tc.op)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Transition(%s, %s) expected ErrInvalidTransition, got %v", tc.from, tc.op, err)
		}
		var te *TransitionError
		if !errors.As(err, &te) || te.From != tc.from || te.Operation != tc.op {
			t.Fatalf("Transition(%s, %s) expected *TransitionError with context, got %#v", tc.from, tc.op, err)
		}
	}
}

func TestTransition_TerminalStatesAcceptNothing(t *testing.T) {
	terminal := []AppointmentStatus{AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow}
	for _, status := range terminal {
		if !status.IsTerminal() {
			t.Fatalf("expected %s to be terminal", status)
		}
		if ops := AllowedOperations(status); len(ops) != 0 {
			t.Fatalf("expected no operations from %s, got %v", status, ops)
		}
	}
}

func TestTransition_UnknownOperation(t *testing.T) {
	if _, err := Transition(AppointmentStatusScheduled, Operation("reschedule")); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown operation, got %v", err)
	}
}

func TestAllowedOperations(t *testing.T) {
	got := AllowedOperations(AppointmentStatusScheduled)
	expected := []Operation{OperationConfirm, OperationCancel, OperationMarkNoShow}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("AllowedOperations(scheduled) expected %v, got %v", expected, got)
	}

	got = AllowedOperations(AppointmentStatusPaidCheckedIn)
	expected = []Operation{OperationCompleteResidentIntake, OperationStartConsultation, OperationCancel}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("AllowedOperations(paid_checked_in) expected %v, got %v", expected, got)
	}
}
