package edition

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"printstock/internal/core/id"
)

// Patch is a partial update of an Edition. Nil fields are unchanged.
// Nullable columns use sql/uuid/decimal Null wrappers so a patch can
// distinguish "leave alone" from "set to NULL".
type Patch struct {
	PrintID       *id.ID
	DistributorID *uuid.NullUUID

	EditionNumber *int
	DisplayName   *string
	Size          *Size
	FrameType     *sql.NullString
	Variation     *sql.NullString

	IsPrinted       *bool
	IsSold          *bool
	IsSettled       *bool
	IsStockChecked  *bool
	ToCheckInDetail *bool

	RetailPrice          *decimal.NullDecimal
	DateSold             *sql.NullTime
	CommissionPercentage *decimal.NullDecimal
	DateInGallery        *sql.NullTime

	Notes       *sql.NullString
	PaymentNote *sql.NullString
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return len(p.Fields()) == 0
}

// ChangesRelations reports whether the patch touches a foreign key,
// meaning any joined projection must be re-resolved.
func (p Patch) ChangesRelations() bool {
	return p.PrintID != nil || p.DistributorID != nil
}

// Apply merges the patch into the edition in place.
func (p Patch) Apply(e *Edition) {
	if p.PrintID != nil {
		e.PrintID = *p.PrintID
	}
	if p.DistributorID != nil {
		if p.DistributorID.Valid {
			v := p.DistributorID.UUID
			e.DistributorID = &v
		} else {
			e.DistributorID = nil
		}
	}
	if p.EditionNumber != nil {
		e.EditionNumber = *p.EditionNumber
	}
	if p.DisplayName != nil {
		e.DisplayName = *p.DisplayName
	}
	if p.Size != nil {
		e.Size = *p.Size
	}
	if p.FrameType != nil {
		if p.FrameType.Valid {
			ft := FrameType(p.FrameType.String)
			e.FrameType = &ft
		} else {
			e.FrameType = nil
		}
	}
	if p.Variation != nil {
		e.Variation = nullStringPtr(*p.Variation)
	}
	if p.IsPrinted != nil {
		e.IsPrinted = *p.IsPrinted
	}
	if p.IsSold != nil {
		e.IsSold = *p.IsSold
	}
	if p.IsSettled != nil {
		e.IsSettled = *p.IsSettled
	}
	if p.IsStockChecked != nil {
		e.IsStockChecked = *p.IsStockChecked
	}
	if p.ToCheckInDetail != nil {
		e.ToCheckInDetail = *p.ToCheckInDetail
	}
	if p.RetailPrice != nil {
		if p.RetailPrice.Valid {
			v := p.RetailPrice.Decimal
			e.RetailPrice = &v
		} else {
			e.RetailPrice = nil
		}
	}
	if p.DateSold != nil {
		if p.DateSold.Valid {
			v := p.DateSold.Time
			e.DateSold = &v
		} else {
			e.DateSold = nil
		}
	}
	if p.CommissionPercentage != nil {
		if p.CommissionPercentage.Valid {
			v := p.CommissionPercentage.Decimal
			e.CommissionPercentage = &v
		} else {
			e.CommissionPercentage = nil
		}
	}
	if p.DateInGallery != nil {
		if p.DateInGallery.Valid {
			v := p.DateInGallery.Time
			e.DateInGallery = &v
		} else {
			e.DateInGallery = nil
		}
	}
	if p.Notes != nil {
		e.Notes = nullStringPtr(*p.Notes)
	}
	if p.PaymentNote != nil {
		e.PaymentNote = nullStringPtr(*p.PaymentNote)
	}
}

// Fields returns the column map for the repository layer.
// NULL assignments appear as nil values.
func (p Patch) Fields() map[string]any {
	fields := make(map[string]any)

	if p.PrintID != nil {
		fields["print_id"] = *p.PrintID
	}
	if p.DistributorID != nil {
		if p.DistributorID.Valid {
			fields["distributor_id"] = p.DistributorID.UUID
		} else {
			fields["distributor_id"] = nil
		}
	}
	if p.EditionNumber != nil {
		fields["edition_number"] = *p.EditionNumber
	}
	if p.DisplayName != nil {
		fields["display_name"] = *p.DisplayName
	}
	if p.Size != nil {
		fields["size"] = string(*p.Size)
	}
	if p.FrameType != nil {
		fields["frame_type"] = nullStringValue(*p.FrameType)
	}
	if p.Variation != nil {
		fields["variation"] = nullStringValue(*p.Variation)
	}
	if p.IsPrinted != nil {
		fields["is_printed"] = *p.IsPrinted
	}
	if p.IsSold != nil {
		fields["is_sold"] = *p.IsSold
	}
	if p.IsSettled != nil {
		fields["is_settled"] = *p.IsSettled
	}
	if p.IsStockChecked != nil {
		fields["is_stock_checked"] = *p.IsStockChecked
	}
	if p.ToCheckInDetail != nil {
		fields["to_check_in_detail"] = *p.ToCheckInDetail
	}
	if p.RetailPrice != nil {
		if p.RetailPrice.Valid {
			fields["retail_price"] = p.RetailPrice.Decimal
		} else {
			fields["retail_price"] = nil
		}
	}
	if p.DateSold != nil {
		if p.DateSold.Valid {
			fields["date_sold"] = p.DateSold.Time
		} else {
			fields["date_sold"] = nil
		}
	}
	if p.CommissionPercentage != nil {
		if p.CommissionPercentage.Valid {
			fields["commission_percentage"] = p.CommissionPercentage.Decimal
		} else {
			fields["commission_percentage"] = nil
		}
	}
	if p.DateInGallery != nil {
		if p.DateInGallery.Valid {
			fields["date_in_gallery"] = p.DateInGallery.Time
		} else {
			fields["date_in_gallery"] = nil
		}
	}
	if p.Notes != nil {
		fields["notes"] = nullStringValue(*p.Notes)
	}
	if p.PaymentNote != nil {
		fields["payment_note"] = nullStringValue(*p.PaymentNote)
	}

	return fields
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullStringValue(ns sql.NullString) any {
	if !ns.Valid {
		return nil
	}
	return ns.String
}
