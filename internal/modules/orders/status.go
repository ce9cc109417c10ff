package orders

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// transitions is the authoritative state machine definition. Refunded is
// the only terminal state; delivered and cancelled remain refund-eligible.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusRefunded},
	StatusCancelled:  {StatusRefunded},
	StatusRefunded:   {},
}

type transitionKey struct {
	From Status
	To   Status
}

var transitionSet = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for from, tos := range transitions {
		for _, to := range tos {
			m[transitionKey{from, to}] = true
		}
	}
	return m
}()

// ParseStatus accepts a status in any letter case.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

func CanTransition(from, to Status) bool {
	return transitionSet[transitionKey{from, to}]
}

// NextStatuses returns the states reachable from a given state, used to
// build descriptive rejection messages.
func NextStatuses(from Status) []Status {
	next := transitions[from]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

func describeNext(from Status) string {
	next := NextStatuses(from)
	if len(next) == 0 {
		return "none (terminal state)"
	}
	parts := make([]string, len(next))
	for i, s := range next {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
