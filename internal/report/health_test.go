package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSystemHealthNoIngestion(t *testing.T) {
	health := BuildSystemHealth(nil, refTime)
	assert.Nil(t, health.IngestionLagSeconds)
	assert.Nil(t, health.SnapshotAt)
}

func TestBuildSystemHealthLag(t *testing.T) {
	fetched := refTime.Add(-90 * time.Second)
	health := BuildSystemHealth(&fetched, refTime)

	require.NotNil(t, health.IngestionLagSeconds)
	assert.InDelta(t, 90.0, *health.IngestionLagSeconds, 1e-9)
	require.NotNil(t, health.SnapshotAt)
	assert.Equal(t, fetched, *health.SnapshotAt)
}

func TestBuildSystemHealthNegativeLagNotClamped(t *testing.T) {
	// Snapshot clock ahead of ours: the health value stays negative,
	// only the exported gauge clamps.
	fetched := refTime.Add(30 * time.Second)
	health := BuildSystemHealth(&fetched, refTime)

	require.NotNil(t, health.IngestionLagSeconds)
	assert.InDelta(t, -30.0, *health.IngestionLagSeconds, 1e-9)
}
