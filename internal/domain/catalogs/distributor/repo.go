package distributor

import (
	"context"

	"printstock/internal/core/id"
)

// Repository defines the interface for Distributor persistence.
type Repository interface {
	Create(ctx context.Context, d *Distributor) error
	Update(ctx context.Context, d *Distributor) error

	// UpdateFields applies a partial column update (used for the favorite toggle).
	UpdateFields(ctx context.Context, distributorID id.ID, fields map[string]any) error

	GetByID(ctx context.Context, distributorID id.ID) (*Distributor, error)
	FindByName(ctx context.Context, name string) (*Distributor, error)
	List(ctx context.Context) ([]Distributor, error)
}
