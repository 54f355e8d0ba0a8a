package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

const redisSnapshotKey = "deskmetrics:snapshot"

// RedisSnapshotStore keeps the snapshot as one JSON blob under a single
// key, so replacement is a plain SET and readers always get a complete
// document.
type RedisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore wraps an existing client.
func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

func (s *RedisSnapshotStore) Load(ctx context.Context) ([]domain.Ticket, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	tickets := fromRecords(doc.Tickets)
	sortByID(tickets)
	return tickets, nil
}

func (s *RedisSnapshotStore) LastFetchedAt(ctx context.Context) (*time.Time, error) {
	doc, err := s.read(ctx)
	if err != nil || doc == nil {
		return nil, err
	}
	fetchedAt := doc.FetchedAt
	return &fetchedAt, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, tickets []domain.Ticket, fetchedAt time.Time) error {
	doc := snapshotDocument{
		FetchedAt: fetchedAt.UTC(),
		Tickets:   toRecords(tickets),
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, redisSnapshotKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore) read(ctx context.Context) (*snapshotDocument, error) {
	payload, err := s.client.Get(ctx, redisSnapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	var doc snapshotDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &doc, nil
}
