package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"printstock/internal/core/id"
)

// SyncStatus is the outcome of an import run.
type SyncStatus string

const (
	SyncStatusRunning   SyncStatus = "running"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusFailed    SyncStatus = "failed"
)

// SyncLogEntry records one CSV import run.
type SyncLogEntry struct {
	ID               id.ID      `db:"id"`
	Source           string     `db:"source"`
	Status           SyncStatus `db:"status"`
	RecordsProcessed int        `db:"records_processed"`
	RecordsCreated   int        `db:"records_created"`
	RecordsUpdated   int        `db:"records_updated"`
	RecordsSkipped   int        `db:"records_skipped"`
	Error            *string    `db:"error"`
	StartedAt        time.Time  `db:"started_at"`
	FinishedAt       *time.Time `db:"finished_at"`
}

// SyncLogRepo persists import run records.
type SyncLogRepo struct {
	txManager *TxManager
}

// NewSyncLogRepo creates a sync log repository.
func NewSyncLogRepo(txManager *TxManager) *SyncLogRepo {
	return &SyncLogRepo{txManager: txManager}
}

func (r *SyncLogRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Start opens a new run record and returns it.
func (r *SyncLogRepo) Start(ctx context.Context, source string) (*SyncLogEntry, error) {
	entry := &SyncLogEntry{
		ID:        id.New(),
		Source:    source,
		Status:    SyncStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	q := r.builder().
		Insert("sync_log").
		SetMap(StructToMap(entry))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("insert sync log: %w", err)
	}

	return entry, nil
}

// Finish closes a run record with its final status and counters.
func (r *SyncLogRepo) Finish(ctx context.Context, entry *SyncLogEntry) error {
	now := time.Now().UTC()
	entry.FinishedAt = &now

	q := r.builder().
		Update("sync_log").
		Set("status", entry.Status).
		Set("records_processed", entry.RecordsProcessed).
		Set("records_created", entry.RecordsCreated).
		Set("records_updated", entry.RecordsUpdated).
		Set("records_skipped", entry.RecordsSkipped).
		Set("error", entry.Error).
		Set("finished_at", entry.FinishedAt).
		Where(squirrel.Eq{"id": entry.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("finish sync log: %w", err)
	}

	return nil
}

// ListRecent returns the latest runs, newest first.
func (r *SyncLogRepo) ListRecent(ctx context.Context, limit int) ([]SyncLogEntry, error) {
	var items []SyncLogEntry

	q := r.builder().
		Select(ExtractDBColumns[SyncLogEntry]()...).
		From("sync_log").
		OrderBy("started_at DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list sync log: %w", err)
	}

	return items, nil
}
