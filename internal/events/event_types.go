package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSnapshotIngested EventType = "snapshot_ingested"
	EventIngestFailed     EventType = "ingest_failed"
)

// Event represents an ingestion lifecycle event emitted by the worker.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RunID     string      `json:"run_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SnapshotIngestedPayload payload.
type SnapshotIngestedPayload struct {
	TicketCount int       `json:"ticket_count"`
	Backlog     int       `json:"backlog"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// IngestFailedPayload payload.
type IngestFailedPayload struct {
	Attempts int    `json:"attempts"`
	Error    string `json:"error"`
}
