package order

import (
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

var (
	// ErrTransitionNotAllowed is returned for any (from, to) pair outside the
	// transition table.
	ErrTransitionNotAllowed = errors.New("order status transition is not allowed")

	// ErrAlreadyFinished is returned when a finished order is asked to finish again.
	// Completion side effects must not be applied twice.
	ErrAlreadyFinished = errors.New("order is already finished")
)

// Status is the fulfillment state of an order.
//
// Transitions:
//
//	Production ──> Sending ──> Finished
//	     │                        ▲
//	     └────────────────────────┘
//
// Finished is terminal.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// Production is the initial state: the kitchen is preparing the order.
	Production

	// Sending means the order left with a deliveryman.
	Sending

	// Finished means the order was delivered. Entering it credits the
	// deliveryman's statistics.
	Finished
)

var statusNames = map[Status]string{
	Production: "production",
	Sending:    "sending",
	Finished:   "finished",
}

// transitions is the closed table of allowed moves.
var transitions = map[Status]map[Status]struct{}{
	Production: {Sending: {}, Finished: {}},
	Sending:    {Finished: {}},
}

// ParseStatus maps the wire name ("production", "sending", "finished") to a
// Status. Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Production, Sending, Finished}
}

// String returns the wire name, or "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Validate fails for Unknown and any out-of-range value.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsFinal reports whether no transition leaves s.
func (s Status) IsFinal() bool {
	return s == Finished
}

// CanTransitionTo checks the transition table.
//
// Returns:
//   - nil when the move is allowed
//   - ErrAlreadyFinished when both s and target are Finished
//   - ErrTransitionNotAllowed (wrapped with both names) for any other illegal move,
//     including an invalid target
func (s Status) CanTransitionTo(target Status) error {
	if s == Finished && target == Finished {
		return ErrAlreadyFinished
	}
	if _, ok := transitions[s][target]; !ok {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, s, target)
	}
	return nil
}
