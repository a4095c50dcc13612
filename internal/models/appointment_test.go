package models

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, next AppointmentStatus
		want       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusPending, false},
		// Completed and Canceled are terminal
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCanceled, StatusPending, false},
		{StatusCanceled, StatusConfirmed, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.next); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.next, got, tc.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []AppointmentStatus{StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled} {
		if !ValidStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if ValidStatus("Rescheduled") {
		t.Error("expected unknown status to be invalid")
	}
}
