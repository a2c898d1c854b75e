package router

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTransition is returned when a request is moved to a status it cannot reach from
// its current one.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status is the lifecycle state of a sign request.
type Status string

const (
	StatusCreated         Status = "CREATED"
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusRequested       Status = "REQUESTED"
	StatusSigned          Status = "SIGNED"
	StatusSubmitted       Status = "SUBMITTED"
	StatusAccepted        Status = "ACCEPTED"
	StatusRejected        Status = "REJECTED"
)

var transitions = map[Status][]Status{
	StatusCreated:         {StatusPendingApproval, StatusRequested},
	StatusPendingApproval: {StatusApproved},
	StatusApproved:        {StatusSigned},
	StatusRequested:       {StatusSigned},
	StatusSigned:          {StatusSubmitted},
	StatusSubmitted:       {StatusAccepted},
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransition reports whether a request in status s may move to next. Every non-terminal
// status may move to REJECTED.
func (s Status) CanTransition(next Status) bool {
	if s.Terminal() {
		return false
	}
	if next == StatusRejected {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Transition records one status change of a request.
type Transition struct {
	From Status
	To   Status
	At   time.Time
}

func transitionError(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
