package report

import (
	"sort"
	"time"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

const (
	// Delay beyond which a breach is graded high instead of medium.
	highSeverityDelayMinutes = 240

	recentBreachLimit = 10
)

// BuildSlaSummary derives every breach in the snapshot and keeps the ten
// most recent for the dashboard feed.
func BuildSlaSummary(tickets []domain.Ticket, reference time.Time) domain.SlaSummary {
	summary := domain.SlaSummary{
		BreachesByQueue: make(map[string]int),
	}

	breaches := make([]domain.SlaBreach, 0)
	for i := range tickets {
		t := &tickets[i]
		if !t.SLA.Breached {
			continue
		}
		breaches = append(breaches, newBreach(t, reference))
	}

	summary.TotalBreaches = len(breaches)
	for _, breach := range breaches {
		summary.BreachesByQueue[breach.Queue]++
	}

	sort.SliceStable(breaches, func(i, j int) bool {
		return breaches[i].BreachedAt.After(breaches[j].BreachedAt)
	})
	if len(breaches) > recentBreachLimit {
		breaches = breaches[:recentBreachLimit]
	}
	summary.RecentBreaches = breaches
	return summary
}

func newBreach(t *domain.Ticket, reference time.Time) domain.SlaBreach {
	breachedAt := reference
	if t.ClosedAt != nil {
		breachedAt = *t.ClosedAt
	}

	var delay int
	if minutes := t.ResolutionMinutes(); minutes != nil {
		delay = *minutes
	} else {
		delay = int(reference.Sub(t.OpenedAt) / time.Minute)
	}

	severity := domain.BreachSeverityMedium
	if delay > highSeverityDelayMinutes {
		severity = domain.BreachSeverityHigh
	}

	technician := ""
	if t.Technician != nil {
		technician = *t.Technician
	}
	queue := domain.QueueUnassigned
	if t.Queue != nil {
		queue = *t.Queue
	}

	return domain.SlaBreach{
		TicketID:     t.ID,
		Technician:   technician,
		Queue:        queue,
		BreachedAt:   breachedAt,
		DelayMinutes: delay,
		Severity:     severity,
	}
}
