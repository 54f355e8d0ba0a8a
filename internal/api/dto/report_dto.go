package dto

import (
	"time"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

// QueueBacklogEntry is one row of the queue ranking.
type QueueBacklogEntry struct {
	Queue string `json:"queue"`
	Count int    `json:"count"`
}

// AgingResponse reports the aging buckets in fixed order.
type AgingResponse struct {
	Under4h int `json:"lt_4h"`
	H4To24  int `json:"h4_24h"`
	D1To3   int `json:"d1_3d"`
	Over3d  int `json:"gt_3d"`
}

// OverviewResponse is the headline dashboard payload.
type OverviewResponse struct {
	TotalBacklog             int                 `json:"total_backlog"`
	BacklogByStatus          map[string]int      `json:"backlog_by_status"`
	BacklogByPriority        map[string]int      `json:"backlog_by_priority"`
	BacklogByQueue           []QueueBacklogEntry `json:"backlog_by_queue"`
	NewLast24h               int                 `json:"new_last_24h"`
	NewLast7d                int                 `json:"new_last_7d"`
	Aging                    AgingResponse       `json:"aging"`
	SLABreaches              int                 `json:"sla_breaches"`
	AverageResolutionMinutes *float64            `json:"average_resolution_minutes,omitempty"`
}

// BreachResponse is one SLA breach entry.
type BreachResponse struct {
	TicketID     int       `json:"ticket_id"`
	Technician   string    `json:"technician,omitempty"`
	Queue        string    `json:"queue"`
	BreachedAt   time.Time `json:"breached_at"`
	DelayMinutes int       `json:"delay_minutes"`
	Severity     string    `json:"severity"`
}

// SlaSummaryResponse aggregates breaches.
type SlaSummaryResponse struct {
	TotalBreaches   int              `json:"total_breaches"`
	BreachesByQueue map[string]int   `json:"breaches_by_queue"`
	RecentBreaches  []BreachResponse `json:"recent_breaches"`
}

// TechnicianResponse is one ranking row.
type TechnicianResponse struct {
	TechnicianID             int      `json:"technician_id"`
	Name                     string   `json:"name"`
	TicketsHandled           int      `json:"tickets_handled"`
	TicketsClosed            int      `json:"tickets_closed"`
	SLABreaches              int      `json:"sla_breaches"`
	AverageResolutionMinutes *float64 `json:"average_resolution_minutes,omitempty"`
	EfficiencyScore          float64  `json:"efficiency_score"`
}

// TimelineEventResponse is one timeline entry.
type TimelineEventResponse struct {
	Kind  string    `json:"kind"`
	At    time.Time `json:"at"`
	Label string    `json:"label"`
}

// SystemHealthResponse reports ingestion freshness.
type SystemHealthResponse struct {
	IngestionLagSeconds *float64   `json:"ingestion_lag_seconds,omitempty"`
	SnapshotAt          *time.Time `json:"snapshot_at,omitempty"`
}

// FromOverview maps the domain report onto the wire shape.
func FromOverview(o domain.TicketsOverview) OverviewResponse {
	byStatus := make(map[string]int, len(o.BacklogByStatus))
	for status, count := range o.BacklogByStatus {
		byStatus[string(status)] = count
	}
	byPriority := make(map[string]int, len(o.BacklogByPriority))
	for priority, count := range o.BacklogByPriority {
		byPriority[string(priority)] = count
	}
	byQueue := make([]QueueBacklogEntry, 0, len(o.BacklogByQueue))
	for _, entry := range o.BacklogByQueue {
		byQueue = append(byQueue, QueueBacklogEntry{Queue: entry.Queue, Count: entry.Count})
	}
	return OverviewResponse{
		TotalBacklog:      o.TotalBacklog,
		BacklogByStatus:   byStatus,
		BacklogByPriority: byPriority,
		BacklogByQueue:    byQueue,
		NewLast24h:        o.NewLast24h,
		NewLast7d:         o.NewLast7d,
		Aging: AgingResponse{
			Under4h: o.Aging.Under4h,
			H4To24:  o.Aging.H4To24,
			D1To3:   o.Aging.D1To3,
			Over3d:  o.Aging.Over3d,
		},
		SLABreaches:              o.SLABreaches,
		AverageResolutionMinutes: o.AverageResolutionMinutes,
	}
}

// FromSlaSummary maps the SLA summary onto the wire shape.
func FromSlaSummary(s domain.SlaSummary) SlaSummaryResponse {
	breaches := make([]BreachResponse, 0, len(s.RecentBreaches))
	for _, b := range s.RecentBreaches {
		breaches = append(breaches, BreachResponse{
			TicketID:     b.TicketID,
			Technician:   b.Technician,
			Queue:        b.Queue,
			BreachedAt:   b.BreachedAt,
			DelayMinutes: b.DelayMinutes,
			Severity:     string(b.Severity),
		})
	}
	byQueue := make(map[string]int, len(s.BreachesByQueue))
	for queue, count := range s.BreachesByQueue {
		byQueue[queue] = count
	}
	return SlaSummaryResponse{
		TotalBreaches:   s.TotalBreaches,
		BreachesByQueue: byQueue,
		RecentBreaches:  breaches,
	}
}

// FromTechnicians maps the ranking onto the wire shape.
func FromTechnicians(ranking []domain.TechnicianPerformance) []TechnicianResponse {
	items := make([]TechnicianResponse, 0, len(ranking))
	for _, perf := range ranking {
		items = append(items, TechnicianResponse{
			TechnicianID:             perf.TechnicianID,
			Name:                     perf.Name,
			TicketsHandled:           perf.TicketsHandled,
			TicketsClosed:            perf.TicketsClosed,
			SLABreaches:              perf.SLABreaches,
			AverageResolutionMinutes: perf.AverageResolutionMinutes,
			EfficiencyScore:          perf.EfficiencyScore,
		})
	}
	return items
}

// FromTimeline maps timeline events onto the wire shape.
func FromTimeline(events []domain.TimelineEvent) []TimelineEventResponse {
	items := make([]TimelineEventResponse, 0, len(events))
	for _, ev := range events {
		items = append(items, TimelineEventResponse{
			Kind:  string(ev.Kind),
			At:    ev.At,
			Label: ev.Label,
		})
	}
	return items
}

// FromSystemHealth maps the health report onto the wire shape.
func FromSystemHealth(h domain.SystemHealth) SystemHealthResponse {
	return SystemHealthResponse{
		IngestionLagSeconds: h.IngestionLagSeconds,
		SnapshotAt:          h.SnapshotAt,
	}
}
