package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/desk-metrics/internal/config"
	"github.com/spec-kit/desk-metrics/internal/domain"
	"github.com/spec-kit/desk-metrics/internal/events"
	"github.com/spec-kit/desk-metrics/internal/report"
	"github.com/spec-kit/desk-metrics/internal/repository"
)

// TicketFetcher is the slice of Client the worker needs.
type TicketFetcher interface {
	FetchTickets(ctx context.Context) ([]domain.Ticket, error)
}

// Worker polls the upstream API on an interval and replaces the snapshot
// on every successful run.
type Worker struct {
	fetcher     TicketFetcher
	store       repository.SnapshotStore
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	interval    time.Duration
	maxAttempts int
	backoffBase time.Duration
	now         func() time.Time
}

// NewWorker constructs the worker.
func NewWorker(fetcher TicketFetcher, store repository.SnapshotStore, dispatcher events.Dispatcher, cfg config.IngestConfig, logger *zap.Logger) *Worker {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &Worker{
		fetcher:     fetcher,
		store:       store,
		dispatcher:  dispatcher,
		logger:      logger,
		interval:    cfg.Interval(),
		maxAttempts: maxAttempts,
		backoffBase: cfg.BackoffBase(),
		now:         time.Now,
	}
}

// Run polls until the context is cancelled. The first run starts
// immediately so a fresh deployment serves data without waiting a full
// interval.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("ingest worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single ingestion run with power-of-two backoff
// between attempts.
func (w *Worker) RunOnce(ctx context.Context) {
	runID := uuid.NewString()
	logger := w.logger.With(zap.String("run_id", runID))

	var lastErr error
	for attempt := 0; attempt < w.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := w.backoffBase << (attempt - 1)
			logger.Warn("retrying ingestion", zap.Int("attempt", attempt+1), zap.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}

		if err := w.ingest(ctx, runID, logger); err != nil {
			lastErr = err
			logger.Error("ingestion attempt failed", zap.Error(err))
			continue
		}
		return
	}

	w.publish(ctx, events.Event{
		Type:  events.EventIngestFailed,
		RunID: runID,
		Payload: events.IngestFailedPayload{
			Attempts: w.maxAttempts,
			Error:    lastErr.Error(),
		},
	})
}

func (w *Worker) ingest(ctx context.Context, runID string, logger *zap.Logger) error {
	tickets, err := w.fetcher.FetchTickets(ctx)
	if err != nil {
		return err
	}
	fetchedAt := w.now()
	if err := w.store.Save(ctx, tickets, fetchedAt); err != nil {
		return err
	}

	backlog := report.BuildOverview(tickets, fetchedAt).TotalBacklog
	logger.Info("snapshot ingested",
		zap.Int("tickets", len(tickets)),
		zap.Int("backlog", backlog),
	)
	w.publish(ctx, events.Event{
		Type:  events.EventSnapshotIngested,
		RunID: runID,
		Payload: events.SnapshotIngestedPayload{
			TicketCount: len(tickets),
			Backlog:     backlog,
			FetchedAt:   fetchedAt,
		},
	})
	return nil
}

func (w *Worker) publish(ctx context.Context, event events.Event) {
	if w.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = w.now()
	}
	_ = w.dispatcher.Publish(ctx, event)
}
