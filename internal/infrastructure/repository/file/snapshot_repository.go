package file

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/voetbalpool/voetbalpool/internal/domain/snapshot"
)

// SnapshotRepository stores the current snapshot as a single JSON file.
// Writes go through a temp file plus rename so readers never observe a
// partially written snapshot.
type SnapshotRepository struct {
	path string
}

func NewSnapshotRepository(path string) (*SnapshotRepository, error) {
	if path == "" {
		return nil, crerr.New("snapshot file: path is required")
	}
	return &SnapshotRepository{path: path}, nil
}

func (r *SnapshotRepository) Load(_ context.Context) (snapshot.PoolResult, bool, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return snapshot.PoolResult{}, false, nil
		}
		return snapshot.PoolResult{}, false, crerr.Wrapf(err, "read snapshot %s", r.path)
	}

	var result snapshot.PoolResult
	if err := sonic.Unmarshal(data, &result); err != nil {
		return snapshot.PoolResult{}, false, crerr.Wrapf(err, "decode snapshot %s", r.path)
	}
	return result, true, nil
}

func (r *SnapshotRepository) Store(_ context.Context, result snapshot.PoolResult) error {
	data, err := sonic.MarshalIndent(result, "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode snapshot")
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create snapshot dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return crerr.Wrap(err, "create temp snapshot")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return crerr.Wrap(err, "write temp snapshot")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return crerr.Wrap(err, "close temp snapshot")
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return crerr.Wrapf(err, "replace snapshot %s", r.path)
	}
	return nil
}
