package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

func breachedTicket(id int, age, openFor time.Duration) domain.Ticket {
	ticket := closedTicket(id, age, openFor)
	ticket.SLA.Breached = true
	return ticket
}

func TestBuildSlaSummaryEmpty(t *testing.T) {
	summary := BuildSlaSummary(nil, refTime)
	assert.Equal(t, 0, summary.TotalBreaches)
	assert.Empty(t, summary.BreachesByQueue)
	assert.Empty(t, summary.RecentBreaches)
}

func TestBuildSlaSummarySeverity(t *testing.T) {
	medium := breachedTicket(1, 24*time.Hour, 240*time.Minute)
	high := breachedTicket(2, 24*time.Hour, 241*time.Minute)

	summary := BuildSlaSummary([]domain.Ticket{medium, high}, refTime)

	require.Equal(t, 2, summary.TotalBreaches)
	byID := map[int]domain.SlaBreach{}
	for _, breach := range summary.RecentBreaches {
		byID[breach.TicketID] = breach
	}
	// 240 minutes is still medium; high starts strictly above.
	assert.Equal(t, domain.BreachSeverityMedium, byID[1].Severity)
	assert.Equal(t, 240, byID[1].DelayMinutes)
	assert.Equal(t, domain.BreachSeverityHigh, byID[2].Severity)
}

func TestBuildSlaSummaryOpenBreach(t *testing.T) {
	open := openTicket(1, domain.TicketStatusInProgress, 5*time.Hour)
	open.SLA.Breached = true

	summary := BuildSlaSummary([]domain.Ticket{open}, refTime)

	require.Len(t, summary.RecentBreaches, 1)
	breach := summary.RecentBreaches[0]
	// Still-open breaches anchor on the reference time.
	assert.Equal(t, refTime, breach.BreachedAt)
	assert.Equal(t, 300, breach.DelayMinutes)
	assert.Equal(t, domain.BreachSeverityHigh, breach.Severity)
	assert.Equal(t, domain.QueueUnassigned, breach.Queue)
}

func TestBuildSlaSummaryQueueGrouping(t *testing.T) {
	inQueue := breachedTicket(1, 24*time.Hour, time.Hour)
	inQueue.Queue = strPtr("network")
	noQueue := breachedTicket(2, 24*time.Hour, time.Hour)
	unbreached := closedTicket(3, 24*time.Hour, time.Hour)
	unbreached.Queue = strPtr("desktop")

	summary := BuildSlaSummary([]domain.Ticket{inQueue, noQueue, unbreached}, refTime)

	// Only queues with at least one breach appear.
	assert.Equal(t, map[string]int{"network": 1, domain.QueueUnassigned: 1}, summary.BreachesByQueue)
}

func TestBuildSlaSummaryRecentSelection(t *testing.T) {
	tickets := make([]domain.Ticket, 0, 15)
	for i := 1; i <= 15; i++ {
		// Later ids closed more recently.
		ticket := breachedTicket(i, 40*24*time.Hour, time.Duration(i)*24*time.Hour)
		tickets = append(tickets, ticket)
	}

	summary := BuildSlaSummary(tickets, refTime)

	assert.Equal(t, 15, summary.TotalBreaches)
	require.Len(t, summary.RecentBreaches, 10)
	for i := 0; i < len(summary.RecentBreaches)-1; i++ {
		current, next := summary.RecentBreaches[i], summary.RecentBreaches[i+1]
		assert.False(t, current.BreachedAt.Before(next.BreachedAt),
			fmt.Sprintf("recent breaches must be ordered newest first at index %d", i))
	}
	assert.Equal(t, 15, summary.RecentBreaches[0].TicketID)
}

func TestBuildSlaSummaryClosedBreachExample(t *testing.T) {
	opened := refTime.Add(-5 * 24 * time.Hour)
	closed := refTime.Add(-24 * time.Hour)
	ticket := domain.Ticket{
		ID:           1,
		Status:       domain.TicketStatusClosed,
		Priority:     domain.TicketPriorityMedium,
		OpenedAt:     opened,
		UpdatedAt:    closed,
		ClosedAt:     &closed,
		SLA:          domain.SLA{Breached: true},
		TechnicianID: intPtr(9),
	}

	overview := BuildOverview([]domain.Ticket{ticket}, refTime)
	assert.Equal(t, 0, overview.TotalBacklog)
	assert.Equal(t, 1, overview.SLABreaches)

	summary := BuildSlaSummary([]domain.Ticket{ticket}, refTime)
	require.Equal(t, 1, summary.TotalBreaches)
	breach := summary.RecentBreaches[0]
	assert.Equal(t, closed, breach.BreachedAt)
	assert.Equal(t, 4*24*60, breach.DelayMinutes)
}
