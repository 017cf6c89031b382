package dto

import (
	"github.com/shopspring/decimal"

	"printstock/internal/domain/catalogs/distributor"
)

// --- Request DTOs ---

// CreateDistributorRequest is the request body for creating a distributor.
type CreateDistributorRequest struct {
	Name                 string           `json:"name" binding:"required"`
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage"`
	ContactNumber        *string          `json:"contactNumber"`
	WebAddress           *string          `json:"webAddress"`
	Notes                *string          `json:"notes"`
	IsFavorite           bool             `json:"isFavorite"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateDistributorRequest) ToEntity() *distributor.Distributor {
	d := distributor.NewDistributor(r.Name)
	d.CommissionPercentage = r.CommissionPercentage
	d.ContactNumber = r.ContactNumber
	d.WebAddress = r.WebAddress
	d.Notes = r.Notes
	d.IsFavorite = r.IsFavorite
	return d
}

// UpdateDistributorRequest is the request body for updating a distributor.
type UpdateDistributorRequest struct {
	Name                 string           `json:"name" binding:"required"`
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage"`
	ContactNumber        *string          `json:"contactNumber"`
	WebAddress           *string          `json:"webAddress"`
	Notes                *string          `json:"notes"`
	IsFavorite           bool             `json:"isFavorite"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateDistributorRequest) ApplyTo(d *distributor.Distributor) {
	d.Name = r.Name
	d.CommissionPercentage = r.CommissionPercentage
	d.ContactNumber = r.ContactNumber
	d.WebAddress = r.WebAddress
	d.Notes = r.Notes
	d.IsFavorite = r.IsFavorite
}
