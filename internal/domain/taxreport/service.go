package taxreport

import (
	"context"
	"fmt"

	"printstock/internal/core/id"
	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/domain/catalogs/distributor"
	"printstock/internal/domain/edition"
	"printstock/pkg/logger"
)

// Inventory is the snapshot surface the report engine reads from.
// The in-memory store satisfies it.
type Inventory interface {
	Snapshot() ([]edition.Edition, []distributor.Distributor)
	PrintsByID() map[id.ID]artprint.Print
	Revision() uint64
}

// Cache stores computed reports keyed by tax year and store revision.
type Cache interface {
	Get(ctx context.Context, key string) (*Report, bool)
	Set(ctx context.Context, key string, report *Report)
}

// Service computes tax-year reports over the live inventory snapshot.
type Service struct {
	inv   Inventory
	cache Cache
}

// NewService creates a report service.
func NewService(inv Inventory, cache Cache) *Service {
	return &Service{inv: inv, cache: cache}
}

// Report returns the report for the tax year starting in startYear.
// Results are cached per store revision, so any inventory mutation makes
// subsequent requests recompute.
func (s *Service) Report(ctx context.Context, startYear int, includePrevious bool) *Report {
	year := NewTaxYear(startYear)
	key := cacheKey(year.Label(), s.inv.Revision(), includePrevious)

	if cached, ok := s.cache.Get(ctx, key); ok {
		logger.Debug(ctx, "report cache hit", "key", key)
		return cached
	}

	editions, distributors := s.inv.Snapshot()
	report := Calculate(editions, s.inv.PrintsByID(), distributors, year, includePrevious)

	s.cache.Set(ctx, key, report)
	return report
}

func cacheKey(label string, revision uint64, includePrevious bool) string {
	key := fmt.Sprintf("taxreport:%s:%d", label, revision)
	if includePrevious {
		key += ":prev"
	}
	return key
}
