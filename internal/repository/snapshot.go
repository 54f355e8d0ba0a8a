package repository

import (
	"context"
	"sort"
	"time"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

// SnapshotStore persists the full ticket set between ingestion runs.
//
// Load returns a consistent, fully materialized copy of the latest
// snapshot; an empty slice is the no-data signal, never an error. Save
// replaces the prior state wholesale and atomically: a concurrent Load
// observes either the old snapshot or the new one, never a mix.
type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.Ticket, error)
	LastFetchedAt(ctx context.Context) (*time.Time, error)
	Save(ctx context.Context, tickets []domain.Ticket, fetchedAt time.Time) error
}

// sortByID fixes snapshot order so queue-ranking and technician-ranking
// ties are reproducible regardless of backend iteration order.
func sortByID(tickets []domain.Ticket) {
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].ID < tickets[j].ID
	})
}
