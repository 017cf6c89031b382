package inventory

import (
	"context"

	"printstock/internal/core/id"
	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/domain/catalogs/distributor"
	"printstock/internal/domain/edition"
)

// repoRemote adapts the domain repositories to the Remote interface.
type repoRemote struct {
	editions     edition.Repository
	prints       artprint.Repository
	distributors distributor.Repository
}

// NewRepositoryRemote wires the persistence repositories as the Store's
// write-through backend.
func NewRepositoryRemote(
	editions edition.Repository,
	prints artprint.Repository,
	distributors distributor.Repository,
) Remote {
	return &repoRemote{
		editions:     editions,
		prints:       prints,
		distributors: distributors,
	}
}

func (r *repoRemote) ListEditions(ctx context.Context) ([]edition.Edition, error) {
	return r.editions.List(ctx)
}

func (r *repoRemote) ListPrints(ctx context.Context) ([]artprint.Print, error) {
	return r.prints.List(ctx)
}

func (r *repoRemote) ListDistributors(ctx context.Context) ([]distributor.Distributor, error) {
	return r.distributors.List(ctx)
}

func (r *repoRemote) UpdateEdition(ctx context.Context, editionID id.ID, patch edition.Patch) error {
	return r.editions.UpdateFields(ctx, editionID, patch.Fields())
}

func (r *repoRemote) UpdateEditions(ctx context.Context, editionIDs []id.ID, patch edition.Patch) error {
	return r.editions.UpdateFieldsBatch(ctx, editionIDs, patch.Fields())
}

func (r *repoRemote) UpdateDistributor(ctx context.Context, distributorID id.ID, fields map[string]any) error {
	return r.distributors.UpdateFields(ctx, distributorID, fields)
}
