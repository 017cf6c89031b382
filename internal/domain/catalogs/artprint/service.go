package artprint

import (
	"context"
	"fmt"

	"printstock/internal/core/apperror"
	"printstock/internal/core/id"
	"printstock/internal/core/tx"
)

// Service provides business logic for the Print catalog.
type Service struct {
	repo Repository
	txm  tx.ReadOnlyManager
}

// NewService creates a new Print service.
func NewService(repo Repository, txm tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, txm: txm}
}

// Create validates and stores a new print, enforcing name uniqueness.
// The uniqueness check and the insert share one transaction.
func (s *Service) Create(ctx context.Context, p *Print) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.nameExists(ctx, p.Name, p.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewDuplicate("print", "name", p.Name)
		}

		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create print: %w", err)
		}
		return nil
	})
}

// Update validates and stores changes to an existing print.
func (s *Service) Update(ctx context.Context, p *Print) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.nameExists(ctx, p.Name, p.ID)
		if err != nil {
			return err
		}
		if exists {
			return apperror.NewDuplicate("print", "name", p.Name)
		}

		p.Touch()
		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update print: %w", err)
		}
		return nil
	})
}

// Get retrieves a print by ID.
func (s *Service) Get(ctx context.Context, printID id.ID) (*Print, error) {
	var p *Print
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.repo.GetByID(ctx, printID)
		return err
	})
	return p, err
}

// List returns all prints ordered by name.
func (s *Service) List(ctx context.Context) ([]Print, error) {
	var prints []Print
	err := s.txm.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		prints, err = s.repo.List(ctx)
		return err
	})
	return prints, err
}

// nameExists checks whether another print already uses this name.
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
