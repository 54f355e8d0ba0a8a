package domain

import (
	"fmt"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "NEW"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusPending    TicketStatus = "PENDING"
	TicketStatusSolved     TicketStatus = "SOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// AllStatuses lists every status in reporting order.
var AllStatuses = []TicketStatus{
	TicketStatusNew,
	TicketStatusInProgress,
	TicketStatusPending,
	TicketStatusSolved,
	TicketStatusClosed,
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityVeryLow  TicketPriority = "VERY_LOW"
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityVeryHigh TicketPriority = "VERY_HIGH"
)

// AllPriorities lists every priority in reporting order.
var AllPriorities = []TicketPriority{
	TicketPriorityVeryLow,
	TicketPriorityLow,
	TicketPriorityMedium,
	TicketPriorityHigh,
	TicketPriorityVeryHigh,
}

var statusFromSource = map[string]TicketStatus{
	"new":         TicketStatusNew,
	"assigned":    TicketStatusInProgress,
	"processing":  TicketStatusInProgress,
	"in_progress": TicketStatusInProgress,
	"planned":     TicketStatusInProgress,
	"pending":     TicketStatusPending,
	"waiting":     TicketStatusPending,
	"solved":      TicketStatusSolved,
	"closed":      TicketStatusClosed,
}

// StatusFromSource coerces an upstream status name into the closed enum.
// Unknown values map to IN_PROGRESS instead of failing; the upstream
// vocabulary drifts between deployments and an approximate bucket keeps
// the ticket visible.
func StatusFromSource(raw string) TicketStatus {
	if s, ok := statusFromSource[raw]; ok {
		return s
	}
	return TicketStatusInProgress
}

var priorityFromSource = map[string]TicketPriority{
	"verylow":   TicketPriorityVeryLow,
	"very_low":  TicketPriorityVeryLow,
	"low":       TicketPriorityLow,
	"medium":    TicketPriorityMedium,
	"high":      TicketPriorityHigh,
	"veryhigh":  TicketPriorityVeryHigh,
	"very_high": TicketPriorityVeryHigh,
	"major":     TicketPriorityVeryHigh,
}

// PriorityFromSource coerces an upstream priority name, defaulting unknown
// values to MEDIUM.
func PriorityFromSource(raw string) TicketPriority {
	if p, ok := priorityFromSource[raw]; ok {
		return p
	}
	return TicketPriorityMedium
}

// SLA carries the upstream service-level commitment for one ticket.
type SLA struct {
	DueAt    *time.Time
	Breached bool
}

// Ticket is the canonical record for one service-desk ticket as ingested
// from the upstream API. Records are immutable after ingestion; the whole
// set is replaced on every run.
type Ticket struct {
	ID                   int
	Title                string
	Status               TicketStatus
	Priority             TicketPriority
	Queue                *string
	Category             *string
	Technician           *string
	TechnicianID         *int
	Requester            *string
	OpenedAt             time.Time
	UpdatedAt            time.Time
	ClosedAt             *time.Time
	SLA                  SLA
	TimeToResolveMinutes *int
}

// NewTicket validates invariants that must hold for every stored record.
func NewTicket(t Ticket) (Ticket, error) {
	if t.ID <= 0 {
		return Ticket{}, fmt.Errorf("ticket id must be positive, got %d", t.ID)
	}
	if t.Queue != nil && *t.Queue == "" {
		return Ticket{}, fmt.Errorf("ticket %d: queue name must not be empty", t.ID)
	}
	return t, nil
}

// IsOpen reports whether the ticket still counts toward the backlog.
func (t *Ticket) IsOpen() bool {
	return t.Status != TicketStatusSolved && t.Status != TicketStatusClosed
}

// ResolutionMinutes applies the shared resolution rule: the upstream
// precomputed duration wins, otherwise the closed/opened delta floored to
// whole minutes, otherwise nil for a still-open ticket.
func (t *Ticket) ResolutionMinutes() *int {
	if t.TimeToResolveMinutes != nil {
		v := *t.TimeToResolveMinutes
		return &v
	}
	if t.ClosedAt != nil {
		v := int(t.ClosedAt.Sub(t.OpenedAt) / time.Minute)
		return &v
	}
	return nil
}
