package model

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{RequestRequested, RequestApproved, true},
		{RequestRequested, RequestClosed, true},
		{RequestRequested, RequestShipped, false},
		{RequestRequested, RequestInUse, false},
		{RequestApproved, RequestShipped, true},
		{RequestApproved, RequestHandedOff, true},
		{RequestApproved, RequestReturned, false},
		{RequestApproved, RequestRequested, false},
		{RequestShipped, RequestHandedOff, true},
		{RequestShipped, RequestInUse, true},
		{RequestShipped, RequestReturned, true},
		{RequestHandedOff, RequestInUse, true},
		{RequestHandedOff, RequestShipped, false},
		{RequestInUse, RequestReturned, true},
		{RequestInUse, RequestApproved, false},
		{RequestReturned, RequestClosed, true},
		{RequestReturned, RequestInUse, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestClosedIsTerminal(t *testing.T) {
	for _, to := range RequestStatuses {
		if CanTransition(RequestClosed, to) {
			t.Errorf("CanTransition(CLOSED, %s) = true, want false", to)
		}
	}
}

func TestEveryStatusCanReachClosed(t *testing.T) {
	for _, from := range RequestStatuses {
		if from == RequestClosed {
			continue
		}
		if !CanTransition(from, RequestClosed) {
			t.Errorf("CanTransition(%s, CLOSED) = false, want true", from)
		}
	}
}

func TestSelfTransitionsRejected(t *testing.T) {
	for _, s := range RequestStatuses {
		if CanTransition(s, s) {
			t.Errorf("CanTransition(%s, %s) = true, want false", s, s)
		}
	}
}

func TestStageTimestamp(t *testing.T) {
	req := &SampleRequest{}

	tests := []struct {
		status  string
		hasSlot bool
	}{
		{RequestRequested, false},
		{RequestApproved, true},
		{RequestShipped, true},
		{RequestHandedOff, true},
		{RequestInUse, false},
		{RequestReturned, true},
		{RequestClosed, true},
	}

	for _, tt := range tests {
		got := req.StageTimestamp(tt.status)
		if (got != nil) != tt.hasSlot {
			t.Errorf("StageTimestamp(%s) slot presence = %v, want %v", tt.status, got != nil, tt.hasSlot)
		}
	}
}
