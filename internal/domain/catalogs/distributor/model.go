// Package distributor provides the Distributor catalog: galleries and sales
// channels that hold editions on consignment.
package distributor

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"printstock/internal/core/apperror"
	"printstock/internal/core/entity"
)

var oneHundred = decimal.NewFromInt(100)

// Distributor represents a gallery or sales channel.
type Distributor struct {
	entity.BaseRecord

	// Name is the display name, unique across the catalog
	Name string `db:"name" json:"name"`

	// CommissionPercentage is the gallery's default commission (0-100)
	CommissionPercentage *decimal.Decimal `db:"commission_percentage" json:"commissionPercentage,omitempty"`

	// ContactNumber is the primary contact phone
	ContactNumber *string `db:"contact_number" json:"contactNumber,omitempty"`

	// WebAddress is the gallery's website
	WebAddress *string `db:"web_address" json:"webAddress,omitempty"`

	// Notes is a free-form internal note
	Notes *string `db:"notes" json:"notes,omitempty"`

	// IsFavorite pins the distributor in the dashboard
	IsFavorite bool `db:"is_favorite" json:"isFavorite"`
}

// NewDistributor creates a new Distributor with required fields.
func NewDistributor(name string) *Distributor {
	return &Distributor{
		BaseRecord: entity.NewBaseRecord(),
		Name:       name,
	}
}

// Validate implements entity.Validatable.
func (d *Distributor) Validate(ctx context.Context) error {
	if strings.TrimSpace(d.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if d.CommissionPercentage != nil {
		pct := *d.CommissionPercentage
		if pct.IsNegative() || pct.GreaterThan(oneHundred) {
			return apperror.NewValidation("commission must be between 0 and 100").
				WithDetail("field", "commissionPercentage").
				WithDetail("value", pct.String())
		}
	}

	return nil
}

// Commission returns the distributor's commission percentage, zero when unset.
func (d *Distributor) Commission() decimal.Decimal {
	if d.CommissionPercentage == nil {
		return decimal.Zero
	}
	return *d.CommissionPercentage
}
