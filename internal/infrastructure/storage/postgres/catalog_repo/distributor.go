package catalog_repo

import (
	"printstock/internal/domain/catalogs/distributor"
	"printstock/internal/infrastructure/storage/postgres"
)

// Compile-time check that DistributorRepo implements the domain interface.
var _ distributor.Repository = (*DistributorRepo)(nil)

// DistributorRepo is the PostgreSQL repository for distributors.
type DistributorRepo struct {
	*BaseCatalogRepo[distributor.Distributor]
}

// NewDistributorRepo creates a distributor repository.
func NewDistributorRepo(txManager *postgres.TxManager) *DistributorRepo {
	return &DistributorRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[distributor.Distributor](
			txManager,
			"distributors",
			postgres.ExtractDBColumns[distributor.Distributor](),
		),
	}
}
