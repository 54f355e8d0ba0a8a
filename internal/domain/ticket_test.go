package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromSource(t *testing.T) {
	assert.Equal(t, TicketStatusNew, StatusFromSource("new"))
	assert.Equal(t, TicketStatusPending, StatusFromSource("waiting"))
	assert.Equal(t, TicketStatusSolved, StatusFromSource("solved"))
	assert.Equal(t, TicketStatusClosed, StatusFromSource("closed"))

	// Unknown names fall back to IN_PROGRESS, never an error.
	assert.Equal(t, TicketStatusInProgress, StatusFromSource("escalated_to_mars"))
	assert.Equal(t, TicketStatusInProgress, StatusFromSource(""))
}

func TestPriorityFromSource(t *testing.T) {
	assert.Equal(t, TicketPriorityVeryLow, PriorityFromSource("verylow"))
	assert.Equal(t, TicketPriorityVeryHigh, PriorityFromSource("major"))
	assert.Equal(t, TicketPriorityMedium, PriorityFromSource("whatever"))
	assert.Equal(t, TicketPriorityMedium, PriorityFromSource(""))
}

func TestNewTicketValidation(t *testing.T) {
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	_, err := NewTicket(Ticket{ID: 0, OpenedAt: opened, UpdatedAt: opened})
	require.Error(t, err)

	_, err = NewTicket(Ticket{ID: -7, OpenedAt: opened, UpdatedAt: opened})
	require.Error(t, err)

	empty := ""
	_, err = NewTicket(Ticket{ID: 1, Queue: &empty, OpenedAt: opened, UpdatedAt: opened})
	require.Error(t, err)

	queue := "helpdesk"
	ticket, err := NewTicket(Ticket{ID: 1, Queue: &queue, OpenedAt: opened, UpdatedAt: opened})
	require.NoError(t, err)
	assert.Equal(t, 1, ticket.ID)
}

func TestIsOpen(t *testing.T) {
	for _, status := range []TicketStatus{TicketStatusNew, TicketStatusInProgress, TicketStatusPending} {
		ticket := Ticket{Status: status}
		assert.True(t, ticket.IsOpen(), "status %s should be open", status)
	}
	for _, status := range []TicketStatus{TicketStatusSolved, TicketStatusClosed} {
		ticket := Ticket{Status: status}
		assert.False(t, ticket.IsOpen(), "status %s should not be open", status)
	}
}

func TestResolutionMinutes(t *testing.T) {
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	closed := opened.Add(2*time.Hour + 30*time.Minute + 45*time.Second)

	open := Ticket{ID: 1, OpenedAt: opened}
	assert.Nil(t, open.ResolutionMinutes())

	// Delta is floored to whole minutes.
	resolved := Ticket{ID: 2, OpenedAt: opened, ClosedAt: &closed}
	require.NotNil(t, resolved.ResolutionMinutes())
	assert.Equal(t, 150, *resolved.ResolutionMinutes())

	// Upstream precomputed duration wins over the delta.
	precomputed := 999
	withUpstream := Ticket{ID: 3, OpenedAt: opened, ClosedAt: &closed, TimeToResolveMinutes: &precomputed}
	require.NotNil(t, withUpstream.ResolutionMinutes())
	assert.Equal(t, 999, *withUpstream.ResolutionMinutes())
}
