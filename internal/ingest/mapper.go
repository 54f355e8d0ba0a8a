package ingest

import (
	"fmt"
	"time"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

// sourceTicket mirrors one upstream API record. Optional upstream fields
// stay pointers so absence survives the mapping.
type sourceTicket struct {
	ID                   int        `json:"id"`
	Title                string     `json:"title"`
	Status               string     `json:"status"`
	Priority             string     `json:"priority"`
	Queue                *string    `json:"queue"`
	Category             *string    `json:"category"`
	Technician           *string    `json:"technician"`
	TechnicianID         *int       `json:"technician_id"`
	Requester            *string    `json:"requester"`
	OpenedAt             time.Time  `json:"opened_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	ClosedAt             *time.Time `json:"closed_at"`
	SLADueAt             *time.Time `json:"sla_due_at"`
	SLABreached          bool       `json:"sla_breached"`
	TimeToResolveMinutes *int       `json:"time_to_resolve_minutes"`
}

// MapTickets converts upstream records into canonical tickets. Unknown
// status and priority names coerce to their defaults; structurally bad
// records fail the whole run so a broken feed never half-replaces the
// snapshot.
func MapTickets(records []sourceTicket) ([]domain.Ticket, error) {
	tickets := make([]domain.Ticket, 0, len(records))
	for i := range records {
		ticket, err := mapTicket(&records[i])
		if err != nil {
			return nil, fmt.Errorf("map upstream ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

func mapTicket(r *sourceTicket) (domain.Ticket, error) {
	queue := r.Queue
	if queue != nil && *queue == "" {
		// Upstream sends "" for unassigned; canonical form is absence.
		queue = nil
	}
	return domain.NewTicket(domain.Ticket{
		ID:                   r.ID,
		Title:                r.Title,
		Status:               domain.StatusFromSource(r.Status),
		Priority:             domain.PriorityFromSource(r.Priority),
		Queue:                queue,
		Category:             r.Category,
		Technician:           r.Technician,
		TechnicianID:         r.TechnicianID,
		Requester:            r.Requester,
		OpenedAt:             r.OpenedAt,
		UpdatedAt:            r.UpdatedAt,
		ClosedAt:             r.ClosedAt,
		SLA:                  domain.SLA{DueAt: r.SLADueAt, Breached: r.SLABreached},
		TimeToResolveMinutes: r.TimeToResolveMinutes,
	})
}
