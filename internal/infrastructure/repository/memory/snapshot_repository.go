package memory

import (
	"context"
	"sync"

	"github.com/voetbalpool/voetbalpool/internal/domain/snapshot"
)

// SnapshotRepository keeps the snapshot in memory. Used in tests and for
// dry runs where nothing should touch the filesystem.
type SnapshotRepository struct {
	mu      sync.RWMutex
	current snapshot.PoolResult
	stored  bool
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{}
}

func (r *SnapshotRepository) Load(_ context.Context) (snapshot.PoolResult, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.stored, nil
}

func (r *SnapshotRepository) Store(_ context.Context, result snapshot.PoolResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = result
	r.stored = true
	return nil
}
