package sqlite

import (
	"context"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/voetbalpool/voetbalpool/internal/domain/snapshot"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	season   TEXT NOT NULL,
	taken_at TEXT NOT NULL,
	payload  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_season ON snapshots (season, taken_at);
`

// ArchiveRepository appends every approved snapshot to a local SQLite
// history, one row per run. The current snapshot lives elsewhere; this
// table only answers "what did the pool look like on date X".
type ArchiveRepository struct {
	db *sqlx.DB
}

func NewArchiveRepository(path string) (*ArchiveRepository, error) {
	if path == "" {
		return nil, crerr.New("archive: database path is required")
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open archive %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, crerr.Wrap(err, "apply archive schema")
	}
	return &ArchiveRepository{db: db}, nil
}

func (r *ArchiveRepository) Append(ctx context.Context, result snapshot.PoolResult) error {
	payload, err := sonic.Marshal(result)
	if err != nil {
		return crerr.Wrap(err, "encode archive payload")
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO snapshots (season, taken_at, payload) VALUES (?, ?, ?)`,
		result.Season, result.LastUpdated, string(payload),
	)
	if err != nil {
		return crerr.Wrap(err, "insert archive row")
	}
	return nil
}

// History returns the archived snapshots for a season, oldest first.
func (r *ArchiveRepository) History(ctx context.Context, season string) ([]snapshot.PoolResult, error) {
	var payloads []string
	err := r.db.SelectContext(ctx, &payloads,
		`SELECT payload FROM snapshots WHERE season = ? ORDER BY taken_at ASC, id ASC`,
		season,
	)
	if err != nil {
		return nil, crerr.Wrapf(err, "select archive rows for %s", season)
	}

	results := make([]snapshot.PoolResult, 0, len(payloads))
	for _, payload := range payloads {
		var result snapshot.PoolResult
		if err := sonic.UnmarshalString(payload, &result); err != nil {
			return nil, crerr.Wrap(err, "decode archive payload")
		}
		results = append(results, result)
	}
	return results, nil
}

func (r *ArchiveRepository) Close() error {
	return r.db.Close()
}
