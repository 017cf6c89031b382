// Package artprint provides the Print catalog: the master list of artwork designs.
// Each Print owns a numbered run of physical editions.
package artprint

import (
	"context"
	"strings"

	"printstock/internal/core/apperror"
	"printstock/internal/core/entity"
)

// Print represents a unique artwork design.
type Print struct {
	entity.BaseRecord

	// Name is the display name, unique across the catalog
	Name string `db:"name" json:"name"`

	// Description is free-form text about the artwork
	Description *string `db:"description" json:"description,omitempty"`

	// TotalEditions is the size of the limited-edition run
	TotalEditions int `db:"total_editions" json:"totalEditions"`

	// WebLink points at the artwork's page on the public site
	WebLink *string `db:"web_link" json:"webLink,omitempty"`

	// Notes is a free-form internal note
	Notes *string `db:"notes" json:"notes,omitempty"`

	// ImageURLs holds references to artwork images; the first is primary
	ImageURLs []string `db:"image_urls" json:"imageUrls,omitempty"`
}

// NewPrint creates a new Print with required fields.
func NewPrint(name string, totalEditions int) *Print {
	return &Print{
		BaseRecord:    entity.NewBaseRecord(),
		Name:          name,
		TotalEditions: totalEditions,
	}
}

// Validate implements entity.Validatable.
func (p *Print) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if p.TotalEditions < 0 {
		return apperror.NewValidation("total editions must not be negative").
			WithDetail("field", "totalEditions").
			WithDetail("value", p.TotalEditions)
	}

	return nil
}

// PrimaryImage returns the first image URL or empty string.
func (p *Print) PrimaryImage() string {
	if len(p.ImageURLs) == 0 {
		return ""
	}
	return p.ImageURLs[0]
}
