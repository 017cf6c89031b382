package edition

import (
	"context"
	"fmt"

	"printstock/internal/core/apperror"
	"printstock/internal/core/id"

	"printstock/internal/domain/catalogs/artprint"
)

// Service provides business logic for editions.
type Service struct {
	repo      Repository
	printRepo artprint.Repository
}

// NewService creates a new Edition service.
func NewService(repo Repository, printRepo artprint.Repository) *Service {
	return &Service{repo: repo, printRepo: printRepo}
}

// RegisterRun creates a batch of editions for a print, numbered after the
// highest existing edition number. Returns the created editions.
func (s *Service) RegisterRun(ctx context.Context, printID id.ID, count int, size Size) ([]*Edition, error) {
	if count <= 0 {
		return nil, apperror.NewValidation("count must be positive").
			WithDetail("field", "count").
			WithDetail("value", count)
	}

	p, err := s.printRepo.GetByID(ctx, printID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByPrint(ctx, printID)
	if err != nil {
		return nil, fmt.Errorf("list editions for print: %w", err)
	}

	next := 1
	for _, e := range existing {
		if e.EditionNumber >= next {
			next = e.EditionNumber + 1
		}
	}

	if p.TotalEditions > 0 && next+count-1 > p.TotalEditions {
		return nil, apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"print run would exceed the total edition count").
			WithDetail("totalEditions", p.TotalEditions).
			WithDetail("requested", count).
			WithDetail("nextNumber", next)
	}

	batch := make([]*Edition, 0, count)
	for i := 0; i < count; i++ {
		number := next + i
		e := NewEdition(printID, number, fmt.Sprintf("%s - %d", p.Name, number), size)
		if err := e.Validate(ctx); err != nil {
			return nil, err
		}
		batch = append(batch, e)
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("create editions: %w", err)
	}

	return batch, nil
}

// Get retrieves an edition by ID.
func (s *Service) Get(ctx context.Context, editionID id.ID) (*Edition, error) {
	return s.repo.GetByID(ctx, editionID)
}

// ListByPrint returns all editions belonging to a print.
func (s *Service) ListByPrint(ctx context.Context, printID id.ID) ([]Edition, error) {
	return s.repo.ListByPrint(ctx, printID)
}
