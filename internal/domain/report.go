package domain

import "time"

// QueueUnassigned labels tickets carrying no queue in backlog and SLA
// groupings. Distinct from an empty string, which is rejected at
// construction time.
const QueueUnassigned = "unassigned"

// QueueBacklog is one entry of the per-queue backlog ranking.
type QueueBacklog struct {
	Queue string
	Count int
}

// AgingBuckets splits the open-ticket set by age. The four buckets always
// partition the backlog exactly.
type AgingBuckets struct {
	Under4h int
	H4To24  int
	D1To3   int
	Over3d  int
}

// TicketsOverview is the dashboard headline report.
type TicketsOverview struct {
	TotalBacklog             int
	BacklogByStatus          map[TicketStatus]int
	BacklogByPriority        map[TicketPriority]int
	BacklogByQueue           []QueueBacklog
	NewLast24h               int
	NewLast7d                int
	Aging                    AgingBuckets
	SLABreaches              int
	AverageResolutionMinutes *float64
}

// BreachSeverity grades how badly an SLA was missed.
type BreachSeverity string

const (
	BreachSeverityMedium BreachSeverity = "medium"
	BreachSeverityHigh   BreachSeverity = "high"
)

// SlaBreach is one missed service-level commitment, derived per query.
type SlaBreach struct {
	TicketID     int
	Technician   string
	Queue        string
	BreachedAt   time.Time
	DelayMinutes int
	Severity     BreachSeverity
}

// SlaSummary aggregates breaches across the snapshot.
type SlaSummary struct {
	TotalBreaches   int
	BreachesByQueue map[string]int
	RecentBreaches  []SlaBreach
}

// TechnicianPerformance captures one technician's workload and outcomes.
type TechnicianPerformance struct {
	TechnicianID             int
	Name                     string
	TicketsHandled           int
	TicketsClosed            int
	SLABreaches              int
	AverageResolutionMinutes *float64
	EfficiencyScore          float64
}

// TimelineEventKind identifies a timeline entry.
type TimelineEventKind string

const (
	TimelineEventCreated TimelineEventKind = "created"
	TimelineEventClosed  TimelineEventKind = "closed"
	TimelineEventStatus  TimelineEventKind = "status"
)

// TimelineEvent is one chronological entry in a ticket's history.
type TimelineEvent struct {
	Kind  TimelineEventKind
	At    time.Time
	Label string
}

// SystemHealth reports ingestion freshness. Lag is intentionally not
// clamped here: a negative value under clock skew is preserved for the
// caller, only the exported gauge floors it at zero.
type SystemHealth struct {
	IngestionLagSeconds *float64
	SnapshotAt          *time.Time
}
