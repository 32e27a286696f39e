package order

import (
	"database/sql/driver"
	"errors"

	"github.com/quickbite/oms/pkg/apperr"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusWaiting      Status = "WAITING"
	StatusFailed       Status = "FAILED"
	StatusAccept       Status = "ACCEPT"
	StatusReject       Status = "REJECT"
	StatusUnderProcess Status = "UNDER_PROCESS"
	StatusReady        Status = "READY"
	StatusDelivered    Status = "DELIVERED"
)

var ErrInvalidStatus = errors.New("invalid order status")

func (s Status) String() string {
	return string(s)
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(v string) (Status, error) {
	switch v {
	case StatusWaiting.String():
		return StatusWaiting, nil
	case StatusFailed.String():
		return StatusFailed, nil
	case StatusAccept.String():
		return StatusAccept, nil
	case StatusReject.String():
		return StatusReject, nil
	case StatusUnderProcess.String():
		return StatusUnderProcess, nil
	case StatusReady.String():
		return StatusReady, nil
	case StatusDelivered.String():
		return StatusDelivered, nil
	default:
		return "", ErrInvalidStatus
	}
}

// allowedTransitions is the explicit transition table. REJECT, FAILED and
// DELIVERED are terminal.
var allowedTransitions = map[Status][]Status{
	StatusWaiting:      {StatusAccept, StatusReject, StatusFailed},
	StatusAccept:       {StatusUnderProcess, StatusFailed},
	StatusUnderProcess: {StatusReady, StatusFailed},
	StatusReady:        {StatusDelivered, StatusFailed},
}

// CanTransition reports whether the move from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Transition validates the requested status change and returns the next
// status, failing InvalidState on a disallowed move.
func Transition(current, requested Status) (Status, error) {
	if !current.CanTransition(requested) {
		return "", apperr.InvalidState(
			"order status cannot change from %s to %s", current, requested,
		)
	}

	return requested, nil
}
