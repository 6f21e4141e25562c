package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/paceline/paceline/internal/core"
)

// RecordUsage appends a rate limit usage snapshot to the log.
func (s *Store) RecordUsage(ctx context.Context, entry core.UsageEntry) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	observedAt := entry.ObservedAt
	if observedAt.IsZero() {
		observedAt = time.Now().UTC()
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO usage_log (id, short_usage, long_usage, short_limit, long_limit, read_only, observed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(),
		entry.Rate.ShortUsage, entry.Rate.LongUsage,
		entry.Rate.ShortLimit, entry.Rate.LongLimit,
		boolToInt(entry.ReadOnly), observedAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("store usage snapshot: %w", err)
	}

	return nil
}

// LatestUsage returns the most recent usage snapshot, or nil when the log
// is empty.
func (s *Store) LatestUsage(ctx context.Context) (*core.UsageEntry, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	var (
		entry      core.UsageEntry
		readOnly   int
		observedAt int64
	)

	row := s.DB.QueryRowContext(ctx, `
		SELECT short_usage, long_usage, short_limit, long_limit, read_only, observed_at
		FROM usage_log
		ORDER BY observed_at DESC, id DESC
		LIMIT 1
	`)

	if err := row.Scan(&entry.Rate.ShortUsage, &entry.Rate.LongUsage,
		&entry.Rate.ShortLimit, &entry.Rate.LongLimit,
		&readOnly, &observedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch usage snapshot: %w", err)
	}

	entry.ReadOnly = readOnly != 0
	entry.ObservedAt = time.Unix(observedAt, 0).UTC()

	return &entry, nil
}

// PruneUsage deletes snapshots observed before the cutoff and reports how
// many rows were removed.
func (s *Store) PruneUsage(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.DB == nil {
		return 0, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM usage_log WHERE observed_at < ?`, before.UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("prune usage log: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune usage log: %w", err)
	}

	return removed, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
