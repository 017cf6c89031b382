package artprint

import (
	"context"

	"printstock/internal/core/id"
)

// Repository defines the interface for Print persistence.
type Repository interface {
	Create(ctx context.Context, p *Print) error
	Update(ctx context.Context, p *Print) error
	GetByID(ctx context.Context, printID id.ID) (*Print, error)
	FindByName(ctx context.Context, name string) (*Print, error)
	List(ctx context.Context) ([]Print, error)
}
