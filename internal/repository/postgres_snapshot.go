package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

// PostgresSnapshotStore persists the snapshot in a tickets table plus a
// single-row metadata table. Save truncates and re-inserts inside one
// transaction, which gives the wholesale-replace semantics the ingestion
// contract requires.
type PostgresSnapshotStore struct {
	pool *pgxpool.Pool
}

// NewPostgresSnapshotStore wraps an existing pool.
func NewPostgresSnapshotStore(pool *pgxpool.Pool) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{pool: pool}
}

func (s *PostgresSnapshotStore) Load(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT id, title, status, priority, queue, category, technician, technician_id,
               requester, opened_at, updated_at, closed_at, sla_due_at, sla_breached,
               time_to_resolve_minutes
        FROM snapshot_tickets ORDER BY id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Status,
			&t.Priority,
			&t.Queue,
			&t.Category,
			&t.Technician,
			&t.TechnicianID,
			&t.Requester,
			&t.OpenedAt,
			&t.UpdatedAt,
			&t.ClosedAt,
			&t.SLA.DueAt,
			&t.SLA.Breached,
			&t.TimeToResolveMinutes,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (s *PostgresSnapshotStore) LastFetchedAt(ctx context.Context) (*time.Time, error) {
	const query = `SELECT fetched_at FROM snapshot_meta WHERE id = 1`
	var fetchedAt time.Time
	if err := s.pool.QueryRow(ctx, query).Scan(&fetchedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query snapshot meta: %w", err)
	}
	return &fetchedAt, nil
}

func (s *PostgresSnapshotStore) Save(ctx context.Context, tickets []domain.Ticket, fetchedAt time.Time) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `TRUNCATE snapshot_tickets`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}

	const insert = `
        INSERT INTO snapshot_tickets (id, title, status, priority, queue, category, technician,
            technician_id, requester, opened_at, updated_at, closed_at, sla_due_at, sla_breached,
            time_to_resolve_minutes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
	for i := range tickets {
		t := &tickets[i]
		if _, err := tx.Exec(ctx, insert,
			t.ID,
			t.Title,
			t.Status,
			t.Priority,
			t.Queue,
			t.Category,
			t.Technician,
			t.TechnicianID,
			t.Requester,
			t.OpenedAt,
			t.UpdatedAt,
			t.ClosedAt,
			t.SLA.DueAt,
			t.SLA.Breached,
			t.TimeToResolveMinutes,
		); err != nil {
			return fmt.Errorf("insert ticket %d: %w", t.ID, err)
		}
	}

	const upsertMeta = `
        INSERT INTO snapshot_meta (id, fetched_at) VALUES (1, $1)
        ON CONFLICT (id) DO UPDATE SET fetched_at = EXCLUDED.fetched_at`
	if _, err := tx.Exec(ctx, upsertMeta, fetchedAt.UTC()); err != nil {
		return fmt.Errorf("update snapshot meta: %w", err)
	}

	return tx.Commit(ctx)
}
