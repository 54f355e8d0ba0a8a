package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/desk-metrics/internal/config"
	"github.com/spec-kit/desk-metrics/internal/domain"
	"github.com/spec-kit/desk-metrics/internal/events"
)

type fakeFetcher struct {
	failures int
	calls    int
	tickets  []domain.Ticket
}

func (f *fakeFetcher) FetchTickets(ctx context.Context) ([]domain.Ticket, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("upstream unavailable")
	}
	return f.tickets, nil
}

type memoryStore struct {
	mu        sync.Mutex
	tickets   []domain.Ticket
	fetchedAt *time.Time
	saves     int
}

func (s *memoryStore) Load(ctx context.Context) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Ticket{}, s.tickets...), nil
}

func (s *memoryStore) LastFetchedAt(ctx context.Context) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchedAt, nil
}

func (s *memoryStore) Save(ctx context.Context, tickets []domain.Ticket, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = tickets
	s.fetchedAt = &fetchedAt
	s.saves++
	return nil
}

func collectEvents(dispatcher events.Dispatcher) *[]events.Event {
	collected := &[]events.Event{}
	var mu sync.Mutex
	handler := func(ctx context.Context, event events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		*collected = append(*collected, event)
		return nil
	}
	dispatcher.Subscribe(events.EventSnapshotIngested, handler)
	dispatcher.Subscribe(events.EventIngestFailed, handler)
	return collected
}

func testWorkerConfig() config.IngestConfig {
	return config.IngestConfig{
		IntervalSeconds:    60,
		MaxAttempts:        3,
		BackoffBaseSeconds: 0, // no sleeping in tests
	}
}

func TestWorkerRunOnceSuccess(t *testing.T) {
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{tickets: []domain.Ticket{
		{ID: 1, Status: domain.TicketStatusNew, Priority: domain.TicketPriorityMedium, OpenedAt: opened, UpdatedAt: opened},
	}}
	store := &memoryStore{}
	dispatcher := events.NewInMemoryDispatcher()
	collected := collectEvents(dispatcher)

	worker := NewWorker(fetcher, store, dispatcher, testWorkerConfig(), zap.NewNop())
	worker.RunOnce(context.Background())

	assert.Equal(t, 1, store.saves)
	require.Len(t, *collected, 1)
	event := (*collected)[0]
	assert.Equal(t, events.EventSnapshotIngested, event.Type)
	payload, ok := event.Payload.(events.SnapshotIngestedPayload)
	require.True(t, ok)
	assert.Equal(t, 1, payload.TicketCount)
	assert.Equal(t, 1, payload.Backlog)
}

func TestWorkerRetriesThenSucceeds(t *testing.T) {
	fetcher := &fakeFetcher{failures: 2}
	store := &memoryStore{}
	dispatcher := events.NewInMemoryDispatcher()
	collected := collectEvents(dispatcher)

	worker := NewWorker(fetcher, store, dispatcher, testWorkerConfig(), zap.NewNop())
	worker.RunOnce(context.Background())

	assert.Equal(t, 3, fetcher.calls)
	assert.Equal(t, 1, store.saves)
	require.Len(t, *collected, 1)
	assert.Equal(t, events.EventSnapshotIngested, (*collected)[0].Type)
}

func TestWorkerExhaustsAttempts(t *testing.T) {
	fetcher := &fakeFetcher{failures: 10}
	store := &memoryStore{}
	dispatcher := events.NewInMemoryDispatcher()
	collected := collectEvents(dispatcher)

	worker := NewWorker(fetcher, store, dispatcher, testWorkerConfig(), zap.NewNop())
	worker.RunOnce(context.Background())

	assert.Equal(t, 3, fetcher.calls)
	assert.Equal(t, 0, store.saves)
	require.Len(t, *collected, 1)
	event := (*collected)[0]
	assert.Equal(t, events.EventIngestFailed, event.Type)
	payload, ok := event.Payload.(events.IngestFailedPayload)
	require.True(t, ok)
	assert.Equal(t, 3, payload.Attempts)
}
