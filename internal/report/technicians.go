package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

// Per-breach penalty applied to the close rate when scoring efficiency.
const breachPenalty = 0.1

type technicianStats struct {
	id            int
	name          string
	handled       int
	closed        int
	breaches      int
	resolutionSum int
	resolutionN   int
}

// BuildTechnicianRanking aggregates per-technician workload and orders the
// result best first. Tickets without an assigned technician are skipped
// entirely rather than attributed to anyone.
func BuildTechnicianRanking(tickets []domain.Ticket) []domain.TechnicianPerformance {
	byID := make(map[int]*technicianStats)
	order := make([]int, 0)

	for i := range tickets {
		t := &tickets[i]
		if t.TechnicianID == nil {
			continue
		}
		id := *t.TechnicianID
		stats, ok := byID[id]
		if !ok {
			stats = &technicianStats{id: id, name: technicianName(t, id)}
			byID[id] = stats
			order = append(order, id)
		}
		stats.handled++
		if t.ClosedAt != nil {
			stats.closed++
		}
		if t.SLA.Breached {
			stats.breaches++
		}
		if minutes := t.ResolutionMinutes(); minutes != nil {
			stats.resolutionSum += *minutes
			stats.resolutionN++
		}
	}

	ranking := make([]domain.TechnicianPerformance, 0, len(order))
	for _, id := range order {
		ranking = append(ranking, byID[id].performance())
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].EfficiencyScore != ranking[j].EfficiencyScore {
			return ranking[i].EfficiencyScore > ranking[j].EfficiencyScore
		}
		return ranking[i].TicketsClosed > ranking[j].TicketsClosed
	})
	return ranking
}

// technicianName resolves the display name at first encounter; later
// tickets for the same id never override it.
func technicianName(t *domain.Ticket, id int) string {
	if t.Technician != nil && *t.Technician != "" {
		return *t.Technician
	}
	return fmt.Sprintf("Technician #%d", id)
}

func (s *technicianStats) performance() domain.TechnicianPerformance {
	perf := domain.TechnicianPerformance{
		TechnicianID:   s.id,
		Name:           s.name,
		TicketsHandled: s.handled,
		TicketsClosed:  s.closed,
		SLABreaches:    s.breaches,
	}
	if s.resolutionN > 0 {
		avg := float64(s.resolutionSum) / float64(s.resolutionN)
		perf.AverageResolutionMinutes = &avg
	}
	perf.EfficiencyScore = efficiencyScore(s.handled, s.closed, s.breaches)
	return perf
}

// efficiencyScore is the close rate discounted by SLA breaches, rounded to
// three decimal places. Zero handled tickets score exactly zero.
func efficiencyScore(handled, closed, breaches int) float64 {
	if handled == 0 {
		return 0
	}
	score := float64(closed) / float64(handled) / (1 + breachPenalty*float64(breaches))
	return math.Round(score*1000) / 1000
}
