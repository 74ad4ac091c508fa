package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

const (
	selectSnapshotQuery = `SELECT payload FROM snapshots WHERE session_id = $1 AND kind = $2`

	upsertSnapshotQuery = `
	INSERT INTO snapshots (session_id, kind, payload, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (session_id, kind)
	DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`

	deleteSnapshotsQuery = `DELETE FROM snapshots WHERE session_id = $1`
)

// pgDB is the part of *pgxpool.Pool the store needs.
type pgDB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresStore struct {
	db     pgDB
	logger *logrus.Logger
}

// NewPostgresStore expects the snapshots table created by database.Migrate.
func NewPostgresStore(db pgDB, logger *logrus.Logger) *PostgresStore {
	if logger == nil {
		logger = logrus.New()
	}
	return &PostgresStore{db: db, logger: logger}
}

func (s *PostgresStore) Load(ctx context.Context, sessionID string, kind Kind) (*string, error) {
	if err := kind.validate(); err != nil {
		return nil, err
	}

	var blob string
	err := s.db.QueryRow(ctx, selectSnapshotQuery, sessionID, string(kind)).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	return &blob, nil
}

func (s *PostgresStore) Save(ctx context.Context, sessionID string, kind Kind, blob string) error {
	if err := kind.validate(); err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, upsertSnapshotQuery, sessionID, string(kind), blob); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"kind":       kind,
	}).Debug("Snapshot saved")
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	tag, err := s.db.Exec(ctx, deleteSnapshotsQuery, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshots: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"rows":       tag.RowsAffected(),
	}).Debug("Snapshots deleted")
	return nil
}
