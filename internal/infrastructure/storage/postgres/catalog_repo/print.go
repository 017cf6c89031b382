package catalog_repo

import (
	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/infrastructure/storage/postgres"
)

// Compile-time check that PrintRepo implements the domain interface.
var _ artprint.Repository = (*PrintRepo)(nil)

// PrintRepo is the PostgreSQL repository for prints.
type PrintRepo struct {
	*BaseCatalogRepo[artprint.Print]
}

// NewPrintRepo creates a print repository.
func NewPrintRepo(txManager *postgres.TxManager) *PrintRepo {
	return &PrintRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[artprint.Print](
			txManager,
			"prints",
			postgres.ExtractDBColumns[artprint.Print](),
		),
	}
}
