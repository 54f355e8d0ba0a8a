package repository

import (
	"time"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

// snapshotDocument is the persisted form shared by the file and redis
// backends: one JSON document holding the fetch timestamp and every
// ticket.
type snapshotDocument struct {
	FetchedAt time.Time      `json:"fetched_at"`
	Tickets   []ticketRecord `json:"tickets"`
}

type ticketRecord struct {
	ID                   int        `json:"id"`
	Title                string     `json:"title"`
	Status               string     `json:"status"`
	Priority             string     `json:"priority"`
	Queue                *string    `json:"queue,omitempty"`
	Category             *string    `json:"category,omitempty"`
	Technician           *string    `json:"technician,omitempty"`
	TechnicianID         *int       `json:"technician_id,omitempty"`
	Requester            *string    `json:"requester,omitempty"`
	OpenedAt             time.Time  `json:"opened_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	ClosedAt             *time.Time `json:"closed_at,omitempty"`
	SLADueAt             *time.Time `json:"sla_due_at,omitempty"`
	SLABreached          bool       `json:"sla_breached"`
	TimeToResolveMinutes *int       `json:"time_to_resolve_minutes,omitempty"`
}

func toRecords(tickets []domain.Ticket) []ticketRecord {
	records := make([]ticketRecord, 0, len(tickets))
	for i := range tickets {
		t := &tickets[i]
		records = append(records, ticketRecord{
			ID:                   t.ID,
			Title:                t.Title,
			Status:               string(t.Status),
			Priority:             string(t.Priority),
			Queue:                t.Queue,
			Category:             t.Category,
			Technician:           t.Technician,
			TechnicianID:         t.TechnicianID,
			Requester:            t.Requester,
			OpenedAt:             t.OpenedAt,
			UpdatedAt:            t.UpdatedAt,
			ClosedAt:             t.ClosedAt,
			SLADueAt:             t.SLA.DueAt,
			SLABreached:          t.SLA.Breached,
			TimeToResolveMinutes: t.TimeToResolveMinutes,
		})
	}
	return records
}

func fromRecords(records []ticketRecord) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(records))
	for i := range records {
		r := &records[i]
		tickets = append(tickets, domain.Ticket{
			ID:                   r.ID,
			Title:                r.Title,
			Status:               domain.TicketStatus(r.Status),
			Priority:             domain.TicketPriority(r.Priority),
			Queue:                r.Queue,
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
	return tickets
}
