package order

import "errors"

var ErrInvalidStatus = errors.New("invalid order status")

type Status string

const (
	StatusPlaced    Status = "placed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
)

// forward-only; there is no cancelled state
var transitions = map[Status]Status{
	StatusPlaced:    StatusPreparing,
	StatusPreparing: StatusReady,
	StatusReady:     StatusCompleted,
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPlaced, StatusPreparing, StatusReady, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsActive() bool {
	return s == StatusPlaced || s == StatusPreparing || s == StatusReady
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// Next returns the single status reachable from s.
func (s Status) Next() (Status, bool) {
	next, ok := transitions[s]
	return next, ok
}

// Rank orders statuses along the lifecycle; unknown statuses rank -1.
func (s Status) Rank() int {
	switch s {
	case StatusPlaced:
		return 0
	case StatusPreparing:
		return 1
	case StatusReady:
		return 2
	case StatusCompleted:
		return 3
	default:
		return -1
	}
}

func (s Status) CanTransitionTo(next Status) bool {
	allowed, ok := transitions[s]
	return ok && allowed == next
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func ActiveStatuses() []Status {
	return []Status{StatusPlaced, StatusPreparing, StatusReady}
}
