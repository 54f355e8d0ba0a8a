// Package report implements the aggregation engine: pure, stateless
// computations from a ticket snapshot plus a reference time to dashboard
// reports. Every function takes its inputs by value or read-only slice and
// returns a fresh result, so calls are safe from concurrent request
// handlers as long as the snapshot itself is not mutated.
package report

import (
	"sort"
	"time"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

// BuildOverview computes the headline backlog report over the full
// snapshot at the given reference time.
func BuildOverview(tickets []domain.Ticket, reference time.Time) domain.TicketsOverview {
	overview := domain.TicketsOverview{
		BacklogByStatus:   make(map[domain.TicketStatus]int, len(domain.AllStatuses)),
		BacklogByPriority: make(map[domain.TicketPriority]int, len(domain.AllPriorities)),
	}
	for _, status := range domain.AllStatuses {
		overview.BacklogByStatus[status] = 0
	}
	for _, priority := range domain.AllPriorities {
		overview.BacklogByPriority[priority] = 0
	}

	queueCounts := make(map[string]int)
	queueOrder := make([]string, 0)

	var resolutionSum int
	var resolutionCount int

	for i := range tickets {
		t := &tickets[i]

		if t.IsOpen() {
			overview.TotalBacklog++
			overview.BacklogByStatus[t.Status]++
			overview.BacklogByPriority[t.Priority]++

			queue := domain.QueueUnassigned
			if t.Queue != nil {
				queue = *t.Queue
			}
			if _, seen := queueCounts[queue]; !seen {
				queueOrder = append(queueOrder, queue)
			}
			queueCounts[queue]++

			classifyAge(&overview.Aging, t.OpenedAt, reference)
		}

		// Recency windows and SLA count span all tickets, open or not.
		if !t.OpenedAt.Before(reference.Add(-24 * time.Hour)) {
			overview.NewLast24h++
		}
		if !t.OpenedAt.Before(reference.Add(-7 * 24 * time.Hour)) {
			overview.NewLast7d++
		}
		if t.SLA.Breached {
			overview.SLABreaches++
		}
		if minutes := t.ResolutionMinutes(); minutes != nil {
			resolutionSum += *minutes
			resolutionCount++
		}
	}

	overview.BacklogByQueue = rankQueues(queueCounts, queueOrder)
	if resolutionCount > 0 {
		avg := float64(resolutionSum) / float64(resolutionCount)
		overview.AverageResolutionMinutes = &avg
	}
	return overview
}

// classifyAge places one open ticket into its aging bucket. The 1-3d
// bucket upper bound is inclusive (<=72h) while the others are strict;
// kept as-is for compatibility with existing dashboards.
func classifyAge(buckets *domain.AgingBuckets, openedAt, reference time.Time) {
	age := reference.Sub(openedAt).Hours()
	switch {
	case age < 4:
		buckets.Under4h++
	case age < 24:
		buckets.H4To24++
	case age <= 72:
		buckets.D1To3++
	default:
		buckets.Over3d++
	}
}

// rankQueues orders queues by backlog size descending, ties keeping the
// order queues were first encountered in the snapshot.
func rankQueues(counts map[string]int, order []string) []domain.QueueBacklog {
	ranked := make([]domain.QueueBacklog, 0, len(order))
	for _, queue := range order {
		ranked = append(ranked, domain.QueueBacklog{Queue: queue, Count: counts[queue]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}
