package dto

import (
	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/domain/edition"
)

// --- Request DTOs ---

// CreatePrintRequest is the request body for creating a print.
type CreatePrintRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   *string  `json:"description"`
	TotalEditions int      `json:"totalEditions"`
	WebLink       *string  `json:"webLink"`
	Notes         *string  `json:"notes"`
	ImageURLs     []string `json:"imageUrls"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePrintRequest) ToEntity() *artprint.Print {
	p := artprint.NewPrint(r.Name, r.TotalEditions)
	p.Description = r.Description
	p.WebLink = r.WebLink
	p.Notes = r.Notes
	p.ImageURLs = r.ImageURLs
	return p
}

// UpdatePrintRequest is the request body for updating a print.
type UpdatePrintRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   *string  `json:"description"`
	TotalEditions int      `json:"totalEditions"`
	WebLink       *string  `json:"webLink"`
	Notes         *string  `json:"notes"`
	ImageURLs     []string `json:"imageUrls"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdatePrintRequest) ApplyTo(p *artprint.Print) {
	p.Name = r.Name
	p.Description = r.Description
	p.TotalEditions = r.TotalEditions
	p.WebLink = r.WebLink
	p.Notes = r.Notes
	p.ImageURLs = r.ImageURLs
}

// RegisterRunRequest is the request body for registering a print run.
type RegisterRunRequest struct {
	Count int    `json:"count" binding:"required,min=1"`
	Size  string `json:"size"`
}

// RunSize returns the requested size, defaulting to Small.
func (r *RegisterRunRequest) RunSize() edition.Size {
	if r.Size == "" {
		return edition.SizeSmall
	}
	return edition.Size(r.Size)
}
