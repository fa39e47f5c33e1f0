package domain

import (
	"fmt"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "Open"
	TicketStatusClosed TicketStatus = "Closed"
)

// Ticket is a support request raised on behalf of a user.
type Ticket struct {
	ID          int64
	Title       string
	Description string
	UserID      int64
	Status      TicketStatus
	CreatedAt   time.Time
}

// Valid reports whether s is a member of the allowed status set.
func (s TicketStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Both directions are allowed, as is re-applying the current status.
var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:   {TicketStatusOpen, TicketStatusClosed},
	TicketStatusClosed: {TicketStatusClosed, TicketStatusOpen},
}

// CanTransition reports whether a ticket in status current may move to next.
func CanTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseTicketStatus converts raw input into a TicketStatus.
func ParseTicketStatus(raw string) (TicketStatus, error) {
	status := TicketStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("unknown ticket status %q", raw)
	}
	return status, nil
}
