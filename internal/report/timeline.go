package report

import (
	"sort"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

// BuildTimeline reconstructs the chronological event list for one ticket:
// creation, closure when present, and a final synthetic entry carrying the
// current status at the last update. Events with equal timestamps keep
// authored order.
func BuildTimeline(t *domain.Ticket) []domain.TimelineEvent {
	events := []domain.TimelineEvent{
		{Kind: domain.TimelineEventCreated, At: t.OpenedAt, Label: "created"},
	}
	if t.ClosedAt != nil {
		events = append(events, domain.TimelineEvent{
			Kind:  domain.TimelineEventClosed,
			At:    *t.ClosedAt,
			Label: "closed",
		})
	}
	events = append(events, domain.TimelineEvent{
		Kind:  domain.TimelineEventStatus,
		At:    t.UpdatedAt,
		Label: string(t.Status),
	})

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At.Before(events[j].At)
	})
	return events
}
