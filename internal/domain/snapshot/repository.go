package snapshot

import "context"

// Repository is the persistence boundary. Load reports ok=false on first
// run; Store replaces the snapshot atomically and must only be called
// after the integrity gate approved the result.
type Repository interface {
	Load(ctx context.Context) (PoolResult, bool, error)
	Store(ctx context.Context, result PoolResult) error
}

// Archiver appends approved snapshots to a history store. Optional.
type Archiver interface {
	Append(ctx context.Context, result PoolResult) error
}
