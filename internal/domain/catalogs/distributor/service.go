package distributor

import (
	"context"
	"fmt"

	"printstock/internal/core/apperror"
	"printstock/internal/core/id"
	"printstock/internal/core/tx"
)

// Service provides business logic for the Distributor catalog.
type Service struct {
	repo Repository
	txm  tx.ReadOnlyManager
}

// NewService creates a new Distributor service.
func NewService(repo Repository, txm tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txm: txm}
}

// Create validates and stores a new distributor, enforcing name uniqueness.
// The uniqueness check and the insert share one transaction.
func (s *Service) Create(ctx context.Context, d *Distributor) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.nameExists(ctx, d.Name, d.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewDuplicate("distributor", "name", d.Name)
		}

		if err := s.repo.Create(ctx, d); err != nil {
			return fmt.Errorf("create distributor: %w", err)
		}
		return nil
	})
}

// Update validates and stores changes to an existing distributor.
func (s *Service) Update(ctx context.Context, d *Distributor) error {
	if err := d.Validate(ctx); err != nil {
		return err
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.nameExists(ctx, d.Name, d.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewDuplicate("distributor", "name", d.Name)
		}

		d.Touch()
		if err := s.repo.Update(ctx, d); err != nil {
			return fmt.Errorf("update distributor: %w", err)
		}
		return nil
	})
}

// Get retrieves a distributor by ID.
func (s *Service) Get(ctx context.Context, distributorID id.ID) (*Distributor, error) {
	var d *Distributor
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		d, err = s.repo.GetByID(ctx, distributorID)
		return err
	})
	return d, err
}

// List returns all distributors ordered by name.
func (s *Service) List(ctx context.Context) ([]Distributor, error) {
	var distributors []Distributor
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		distributors, err = s.repo.List(ctx)
		return err
	})
	return distributors, err
}

// nameExists checks whether another distributor already uses this name.
func (s *Service) nameExists(ctx context.Context, name string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != excludeID, nil
}
