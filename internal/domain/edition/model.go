// Package edition provides the Edition entity: one numbered physical instance
// of a limited-edition print, tracked from printing through gallery placement,
// sale and settlement.
package edition

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"printstock/internal/core/apperror"
	"printstock/internal/core/entity"
	"printstock/internal/core/id"
)

// Size is the physical print size.
type Size string

const (
	SizeSmall      Size = "Small"
	SizeLarge      Size = "Large"
	SizeExtraLarge Size = "Extra Large"
)

// FrameType is how the edition is presented.
type FrameType string

const (
	FrameFramed   FrameType = "Framed"
	FrameTubeOnly FrameType = "Tube only"
	FrameMounted  FrameType = "Mounted"
)

var oneHundred = decimal.NewFromInt(100)

// Edition represents one numbered physical print.
type Edition struct {
	entity.BaseRecord

	// PrintID references the owning artwork design
	PrintID id.ID `db:"print_id" json:"printId"`

	// DistributorID references the gallery currently holding the edition.
	// Nil means the edition is held directly (unassigned).
	DistributorID *id.ID `db:"distributor_id" json:"distributorId,omitempty"`

	// EditionNumber is the position in the print run (1-based)
	EditionNumber int `db:"edition_number" json:"editionNumber"`

	// DisplayName is the human label, e.g. "Seaview Two - 14"
	DisplayName string `db:"display_name" json:"displayName"`

	Size      Size       `db:"size" json:"size"`
	FrameType *FrameType `db:"frame_type" json:"frameType,omitempty"`
	Variation *string    `db:"variation" json:"variation,omitempty"`

	// Lifecycle flags
	IsPrinted       bool `db:"is_printed" json:"isPrinted"`
	IsSold          bool `db:"is_sold" json:"isSold"`
	IsSettled       bool `db:"is_settled" json:"isSettled"`
	IsStockChecked  bool `db:"is_stock_checked" json:"isStockChecked"`
	ToCheckInDetail bool `db:"to_check_in_detail" json:"toCheckInDetail"`

	// Sales information
	RetailPrice *decimal.Decimal `db:"retail_price" json:"retailPrice,omitempty"`
	DateSold    *time.Time       `db:"date_sold" json:"dateSold,omitempty"`

	// CommissionPercentage overrides the distributor's commission when set
	CommissionPercentage *decimal.Decimal `db:"commission_percentage" json:"commissionPercentage,omitempty"`

	// DateInGallery is when the edition arrived at its distributor
	DateInGallery *time.Time `db:"date_in_gallery" json:"dateInGallery,omitempty"`

	Notes       *string `db:"notes" json:"notes,omitempty"`
	PaymentNote *string `db:"payment_note" json:"paymentNote,omitempty"`
}

// NewEdition creates a new Edition for a print run slot.
func NewEdition(printID id.ID, number int, displayName string, size Size) *Edition {
	return &Edition{
		BaseRecord:    entity.NewBaseRecord(),
		PrintID:       printID,
		EditionNumber: number,
		DisplayName:   displayName,
		Size:          size,
	}
}

// Validate implements entity.Validatable.
func (e *Edition) Validate(ctx context.Context) error {
	if strings.TrimSpace(e.DisplayName) == "" {
		return apperror.NewValidation("display name is required").
			WithDetail("field", "displayName")
	}

	if id.IsNil(e.PrintID) {
		return apperror.NewValidation("print reference is required").
			WithDetail("field", "printId")
	}

	if e.EditionNumber < 0 {
		return apperror.NewValidation("edition number must not be negative").
			WithDetail("field", "editionNumber").
			WithDetail("value", e.EditionNumber)
	}

	if !isValidSize(e.Size) {
		return apperror.NewValidation("invalid size").
			WithDetail("field", "size").
			WithDetail("value", string(e.Size))
	}

	if e.FrameType != nil && !isValidFrameType(*e.FrameType) {
		return apperror.NewValidation("invalid frame type").
			WithDetail("field", "frameType").
			WithDetail("value", string(*e.FrameType))
	}

	if e.CommissionPercentage != nil {
		pct := *e.CommissionPercentage
		if pct.IsNegative() || pct.GreaterThan(oneHundred) {
			return apperror.NewValidation("commission must be between 0 and 100").
				WithDetail("field", "commissionPercentage").
				WithDetail("value", pct.String())
		}
	}

	// Settlement implies a completed sale.
	if e.IsSettled && !e.IsSold {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"an edition cannot be settled before it is sold").
			WithDetail("field", "isSettled")
	}

	if e.IsSold && e.DateSold == nil {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"a sold edition requires a sale date").
			WithDetail("field", "dateSold")
	}

	return nil
}

// Price returns the retail price, zero when unset.
func (e *Edition) Price() decimal.Decimal {
	if e.RetailPrice == nil {
		return decimal.Zero
	}
	return *e.RetailPrice
}

func isValidSize(s Size) bool {
	switch s {
	case SizeSmall, SizeLarge, SizeExtraLarge:
		return true
	}
	return false
}

func isValidFrameType(f FrameType) bool {
	switch f {
	case FrameFramed, FrameTubeOnly, FrameMounted:
		return true
	}
	return false
}
