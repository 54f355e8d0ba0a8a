package service

import (
	"context"
	"time"

	"github.com/spec-kit/desk-metrics/internal/domain"
	"github.com/spec-kit/desk-metrics/internal/report"
	"github.com/spec-kit/desk-metrics/internal/repository"
	apperrors "github.com/spec-kit/desk-metrics/pkg/util"
)

// QueryService is the read-only façade the transport layer calls. Each
// query loads the current snapshot and computes its report fresh; nothing
// derived is cached.
type QueryService struct {
	store repository.SnapshotStore
	now   func() time.Time
}

// QueryDependencies bundles collaborators for the query service.
type QueryDependencies struct {
	Store repository.SnapshotStore
	Now   func() time.Time
}

// NewQueryService constructs the service. Now defaults to time.Now and is
// injectable for deterministic tests.
func NewQueryService(deps QueryDependencies) *QueryService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &QueryService{store: deps.Store, now: now}
}

// GetOverview returns the backlog overview at the reference time, which
// defaults to now.
func (s *QueryService) GetOverview(ctx context.Context, reference *time.Time) (domain.TicketsOverview, error) {
	tickets, err := s.store.Load(ctx)
	if err != nil {
		return domain.TicketsOverview{}, apperrors.NewUnavailable("snapshot unavailable", err)
	}
	return report.BuildOverview(tickets, s.resolveReference(reference)), nil
}

// GetSlaSummary returns the SLA breach summary at the reference time.
func (s *QueryService) GetSlaSummary(ctx context.Context, reference *time.Time) (domain.SlaSummary, error) {
	tickets, err := s.store.Load(ctx)
	if err != nil {
		return domain.SlaSummary{}, apperrors.NewUnavailable("snapshot unavailable", err)
	}
	return report.BuildSlaSummary(tickets, s.resolveReference(reference)), nil
}

// GetTechnicianRanking returns technicians ordered best first.
func (s *QueryService) GetTechnicianRanking(ctx context.Context) ([]domain.TechnicianPerformance, error) {
	tickets, err := s.store.Load(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailable("snapshot unavailable", err)
	}
	return report.BuildTechnicianRanking(tickets), nil
}

// GetTimeline returns the event timeline for one ticket, or NOT_FOUND
// when the id is absent from the current snapshot.
func (s *QueryService) GetTimeline(ctx context.Context, ticketID int) ([]domain.TimelineEvent, error) {
	tickets, err := s.store.Load(ctx)
	if err != nil {
		return nil, apperrors.NewUnavailable("snapshot unavailable", err)
	}
	for i := range tickets {
		if tickets[i].ID == ticketID {
			return report.BuildTimeline(&tickets[i]), nil
		}
	}
	return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
}

// GetSystemHealth reports ingestion freshness.
func (s *QueryService) GetSystemHealth(ctx context.Context) (domain.SystemHealth, error) {
	lastFetchedAt, err := s.store.LastFetchedAt(ctx)
	if err != nil {
		return domain.SystemHealth{}, apperrors.NewUnavailable("snapshot unavailable", err)
	}
	return report.BuildSystemHealth(lastFetchedAt, s.now()), nil
}

func (s *QueryService) resolveReference(reference *time.Time) time.Time {
	if reference != nil {
		return *reference
	}
	return s.now()
}
