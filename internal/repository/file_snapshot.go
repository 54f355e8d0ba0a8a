package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spec-kit/desk-metrics/internal/domain"
)

// FileSnapshotStore keeps the snapshot in a single JSON document on disk.
// Saves go through a temp file plus rename so a concurrent Load never sees
// a half-written document.
type FileSnapshotStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileSnapshotStore creates the store, ensuring the parent directory
// exists.
func NewFileSnapshotStore(path string) (*FileSnapshotStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	return &FileSnapshotStore{path: path}, nil
}

func (s *FileSnapshotStore) Load(ctx context.Context) ([]domain.Ticket, error) {
	doc, err := s.read()
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

func (s *FileSnapshotStore) LastFetchedAt(ctx context.Context) (*time.Time, error) {
	doc, err := s.read()
	if err != nil || doc == nil {
		return nil, err
	}
	fetchedAt := doc.FetchedAt
	return &fetchedAt, nil
}

func (s *FileSnapshotStore) Save(ctx context.Context, tickets []domain.Ticket, fetchedAt time.Time) error {
	doc := snapshotDocument{
		FetchedAt: fetchedAt.UTC(),
		Tickets:   toRecords(tickets),
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *FileSnapshotStore) read() (*snapshotDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var doc snapshotDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &doc, nil
}
