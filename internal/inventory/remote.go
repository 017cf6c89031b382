package inventory

import (
	"context"

	"printstock/internal/core/id"
	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/domain/catalogs/distributor"
	"printstock/internal/domain/edition"
)

// Remote is the backing store the inventory Store writes through to.
// Production wires the PostgreSQL repositories; tests use fakes.
type Remote interface {
	ListEditions(ctx context.Context) ([]edition.Edition, error)
	ListPrints(ctx context.Context) ([]artprint.Print, error)
	ListDistributors(ctx context.Context) ([]distributor.Distributor, error)

	UpdateEdition(ctx context.Context, editionID id.ID, patch edition.Patch) error
	UpdateEditions(ctx context.Context, editionIDs []id.ID, patch edition.Patch) error
	UpdateDistributor(ctx context.Context, distributorID id.ID, fields map[string]any) error
}
