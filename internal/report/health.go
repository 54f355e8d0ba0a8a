package report

import (
	"time"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

// BuildSystemHealth derives ingestion freshness from the snapshot
// timestamp. Before the first successful ingestion both fields are absent.
// The lag is reported as-is: it can go negative when the snapshot clock is
// ahead of ours, and alerting may key off that, so clamping happens only
// at the metrics-export layer.
func BuildSystemHealth(lastFetchedAt *time.Time, now time.Time) domain.SystemHealth {
	if lastFetchedAt == nil {
		return domain.SystemHealth{}
	}
	lag := now.Sub(*lastFetchedAt).Seconds()
	snapshotAt := *lastFetchedAt
	return domain.SystemHealth{
		IngestionLagSeconds: &lag,
		SnapshotAt:          &snapshotAt,
	}
}
