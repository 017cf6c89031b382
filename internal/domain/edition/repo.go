package edition

import (
	"context"

	"printstock/internal/core/id"
)

// Repository defines the interface for Edition persistence.
type Repository interface {
	CreateBatch(ctx context.Context, editions []*Edition) error

	// UpdateFields applies a partial column update to one edition.
	UpdateFields(ctx context.Context, editionID id.ID, fields map[string]any) error

	// UpdateFieldsBatch applies the same column update to several editions
	// in a single statement.
	UpdateFieldsBatch(ctx context.Context, editionIDs []id.ID, fields map[string]any) error

	GetByID(ctx context.Context, editionID id.ID) (*Edition, error)
	List(ctx context.Context) ([]Edition, error)
	ListByPrint(ctx context.Context, printID id.ID) ([]Edition, error)
}
