package report

import (
	"time"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

var refTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// openTicket builds a minimal open ticket opened the given duration before
// refTime.
func openTicket(id int, status domain.TicketStatus, age time.Duration) domain.Ticket {
	opened := refTime.Add(-age)
	return domain.Ticket{
		ID:       id,
		Status:   status,
		Priority: domain.TicketPriorityMedium,
		OpenedAt:  opened,
		UpdatedAt: opened,
	}
}

func closedTicket(id int, age, openFor time.Duration) domain.Ticket {
	opened := refTime.Add(-age)
	closed := opened.Add(openFor)
	return domain.Ticket{
		ID:        id,
		Status:    domain.TicketStatusClosed,
		Priority:  domain.TicketPriorityMedium,
		OpenedAt:  opened,
		UpdatedAt: closed,
		ClosedAt:  &closed,
	}
}
