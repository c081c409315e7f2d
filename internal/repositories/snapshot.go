package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/myrjola/trackside/internal/db"
	"github.com/myrjola/trackside/internal/errors"
)

// SnapshotRepository stores the serialized dashboard state as a single row.
// The payload is opaque JSON owned by the store; the repository only
// guarantees durability and last-write-wins semantics.
type SnapshotRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewSnapshotRepository(dbs *db.Database, logger *slog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		dbs:    dbs,
		logger: logger.With("source", "SnapshotRepository"),
	}
}

// Save replaces the persisted snapshot.
func (r *SnapshotRepository) Save(ctx context.Context, payload []byte) error {
	stmt := `INSERT INTO snapshots (id, payload, updated_at)
VALUES (1, @payload, CURRENT_TIMESTAMP)
ON CONFLICT (id) DO UPDATE SET payload = @payload, updated_at = CURRENT_TIMESTAMP;`
	params := []any{
		sql.Named("payload", string(payload)),
	}
	if _, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, params...); err != nil {
		return errors.Wrap(err, "save snapshot")
	}
	return nil
}

// Load returns the persisted snapshot. The second return value reports
// whether a snapshot exists.
func (r *SnapshotRepository) Load(ctx context.Context) ([]byte, bool, error) {
	var payload string
	stmt := `SELECT payload FROM snapshots WHERE id = 1`
	if err := r.dbs.ReadOnly.QueryRowContext(ctx, stmt).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "load snapshot")
	}
	return []byte(payload), true, nil
}
