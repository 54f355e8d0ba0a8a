package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

func newFileStore(t *testing.T) *FileSnapshotStore {
	t.Helper()
	store, err := NewFileSnapshotStore(filepath.Join(t.TempDir(), "snapshot.json"))
	require.NoError(t, err)
	return store
}

func TestFileStoreEmpty(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	tickets, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tickets)

	fetchedAt, err := store.LastFetchedAt(ctx)
	require.NoError(t, err)
	assert.Nil(t, fetchedAt)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	queue := "network"
	technician := "Ada"
	techID := 7
	requester := "bob"
	category := "printer"
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	updated := opened.Add(2 * time.Hour)
	closed := opened.Add(3 * time.Hour)
	due := opened.Add(4 * time.Hour)
	ttr := 180

	full := domain.Ticket{
		ID:                   2,
		Title:                "printer on fire",
		Status:               domain.TicketStatusClosed,
		Priority:             domain.TicketPriorityHigh,
		Queue:                &queue,
		Category:             &category,
		Technician:           &technician,
		TechnicianID:         &techID,
		Requester:            &requester,
		OpenedAt:             opened,
		UpdatedAt:            updated,
		ClosedAt:             &closed,
		SLA:                  domain.SLA{DueAt: &due, Breached: true},
		TimeToResolveMinutes: &ttr,
	}
	// Optional fields left absent must survive the round trip as absent.
	minimal := domain.Ticket{
		ID:        1,
		Title:     "vpn down",
		Status:    domain.TicketStatusNew,
		Priority:  domain.TicketPriorityMedium,
		OpenedAt:  opened,
		UpdatedAt: opened,
	}

	fetchedAt := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, []domain.Ticket{full, minimal}, fetchedAt))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	// Load sorts by id regardless of save order.
	assert.Equal(t, minimal, loaded[0])
	assert.Equal(t, full, loaded[1])

	gotFetched, err := store.LastFetchedAt(ctx)
	require.NoError(t, err)
	require.NotNil(t, gotFetched)
	assert.True(t, fetchedAt.Equal(*gotFetched))
}

func TestFileStoreWholesaleReplace(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	first := []domain.Ticket{
		{ID: 1, Status: domain.TicketStatusNew, Priority: domain.TicketPriorityMedium, OpenedAt: opened, UpdatedAt: opened},
		{ID: 2, Status: domain.TicketStatusNew, Priority: domain.TicketPriorityMedium, OpenedAt: opened, UpdatedAt: opened},
	}
	require.NoError(t, store.Save(ctx, first, opened))

	second := []domain.Ticket{
		{ID: 3, Status: domain.TicketStatusNew, Priority: domain.TicketPriorityMedium, OpenedAt: opened, UpdatedAt: opened},
	}
	require.NoError(t, store.Save(ctx, second, opened.Add(time.Hour)))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 3, loaded[0].ID)
}
