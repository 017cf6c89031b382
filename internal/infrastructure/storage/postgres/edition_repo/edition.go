// Package edition_repo provides the PostgreSQL repository for print editions.
package edition_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"printstock/internal/core/apperror"
	"printstock/internal/core/id"
	"printstock/internal/domain/edition"
	"printstock/internal/infrastructure/storage/postgres"
)

const tableName = "editions"

// Compile-time check that Repo implements the domain interface.
var _ edition.Repository = (*Repo)(nil)

// Repo is the PostgreSQL repository for editions.
type Repo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

// NewRepo creates an edition repository.
func NewRepo(txManager *postgres.TxManager) *Repo {
	return &Repo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[edition.Edition](),
	}
}

func (r *Repo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// CreateBatch inserts several editions in one statement.
func (r *Repo) CreateBatch(ctx context.Context, editions []*edition.Edition) error {
	if len(editions) == 0 {
		return nil
	}

	q := r.builder().
		Insert(tableName).
		Columns(r.selectCols...)

	for _, e := range editions {
		data := postgres.StructToMap(e)
		row := make([]any, len(r.selectCols))
		for i, col := range r.selectCols {
			row[i] = data[col]
		}
		q = q.Values(row...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build batch insert: %w", err)
	}

	_, err = r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("insert editions: %w", err)
	}

	return nil
}

// UpdateFields applies a partial column update to one edition.
func (r *Repo) UpdateFields(ctx context.Context, editionID id.ID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	q := r.builder().
		Update(tableName).
		SetMap(fields).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": editionID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update edition: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(tableName, editionID.String())
	}

	return nil
}

// UpdateFieldsBatch applies the same column update to several editions in a
// single statement.
func (r *Repo) UpdateFieldsBatch(ctx context.Context, editionIDs []id.ID, fields map[string]any) error {
	if len(editionIDs) == 0 || len(fields) == 0 {
		return nil
	}

	q := r.builder().
		Update(tableName).
		SetMap(fields).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Expr("id = ANY(?)", editionIDs))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build batch update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update editions: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(tableName, fmt.Sprintf("%d ids", len(editionIDs)))
	}

	return nil
}

func (r *Repo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(r.selectCols...).
		From(tableName)
}

// GetByID retrieves one edition.
func (r *Repo) GetByID(ctx context.Context, editionID id.ID) (*edition.Edition, error) {
	var e edition.Edition

	q := r.baseSelect().
		Where(squirrel.Eq{"id": editionID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(tableName, editionID.String())
		}
		return nil, fmt.Errorf("get edition: %w", err)
	}

	return &e, nil
}

// List retrieves all editions.
func (r *Repo) List(ctx context.Context) ([]edition.Edition, error) {
	var items []edition.Edition

	q := r.baseSelect().OrderBy("display_name ASC", "edition_number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list editions: %w", err)
	}

	return items, nil
}

// ListByPrint retrieves a print's editions ordered by edition number.
func (r *Repo) ListByPrint(ctx context.Context, printID id.ID) ([]edition.Edition, error) {
	var items []edition.Edition

	q := r.baseSelect().
		Where(squirrel.Eq{"print_id": printID}).
		OrderBy("edition_number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list editions by print: %w", err)
	}

	return items, nil
}
