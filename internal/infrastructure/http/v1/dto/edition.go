package dto

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"printstock/internal/core/apperror"
	"printstock/internal/core/id"
	"printstock/internal/domain/edition"
)

// UpdateEditionRequest is the partial-update body for an edition. Absent
// fields are unchanged; nullable fields accept explicit null to clear.
type UpdateEditionRequest struct {
	PrintID       Field[string] `json:"printId"`
	DistributorID Field[string] `json:"distributorId"`

	EditionNumber Field[int]    `json:"editionNumber"`
	DisplayName   Field[string] `json:"displayName"`
	Size          Field[string] `json:"size"`
	FrameType     Field[string] `json:"frameType"`
	Variation     Field[string] `json:"variation"`

	IsPrinted       Field[bool] `json:"isPrinted"`
	IsSold          Field[bool] `json:"isSold"`
	IsSettled       Field[bool] `json:"isSettled"`
	IsStockChecked  Field[bool] `json:"isStockChecked"`
	ToCheckInDetail Field[bool] `json:"toCheckInDetail"`

	RetailPrice          Field[decimal.Decimal] `json:"retailPrice"`
	DateSold             Field[time.Time]       `json:"dateSold"`
	CommissionPercentage Field[decimal.Decimal] `json:"commissionPercentage"`
	DateInGallery        Field[time.Time]       `json:"dateInGallery"`

	Notes       Field[string] `json:"notes"`
	PaymentNote Field[string] `json:"paymentNote"`
}

// ToPatch converts the request into a domain patch, rejecting null on
// non-nullable columns and malformed ids.
func (r *UpdateEditionRequest) ToPatch() (edition.Patch, error) {
	var p edition.Patch

	if r.PrintID.Set {
		if !r.PrintID.Valid {
			return p, requiredField("printId")
		}
		printID, err := id.Parse(r.PrintID.Value)
		if err != nil {
			return p, invalidField("printId", r.PrintID.Value)
		}
		p.PrintID = &printID
	}

	if r.DistributorID.Set {
		var nu uuid.NullUUID
		if r.DistributorID.Valid {
			distributorID, err := id.Parse(r.DistributorID.Value)
			if err != nil {
				return p, invalidField("distributorId", r.DistributorID.Value)
			}
			nu = uuid.NullUUID{UUID: distributorID, Valid: true}
		}
		p.DistributorID = &nu
	}

	if r.EditionNumber.Set {
		if !r.EditionNumber.Valid {
			return p, requiredField("editionNumber")
		}
		p.EditionNumber = &r.EditionNumber.Value
	}

	if r.DisplayName.Set {
		if !r.DisplayName.Valid {
			return p, requiredField("displayName")
		}
		p.DisplayName = &r.DisplayName.Value
	}

	if r.Size.Set {
		if !r.Size.Valid {
			return p, requiredField("size")
		}
		size := edition.Size(r.Size.Value)
		switch size {
		case edition.SizeSmall, edition.SizeLarge, edition.SizeExtraLarge:
		default:
			return p, invalidField("size", r.Size.Value)
		}
		p.Size = &size
	}

	if r.FrameType.Set {
		if r.FrameType.Valid {
			switch edition.FrameType(r.FrameType.Value) {
			case edition.FrameFramed, edition.FrameTubeOnly, edition.FrameMounted:
			default:
				return p, invalidField("frameType", r.FrameType.Value)
			}
		}
		p.FrameType = nullString(r.FrameType)
	}

	if r.Variation.Set {
		p.Variation = nullString(r.Variation)
	}

	for _, flag := range []struct {
		name   string
		field  Field[bool]
		target **bool
	}{
		{"isPrinted", r.IsPrinted, &p.IsPrinted},
		{"isSold", r.IsSold, &p.IsSold},
		{"isSettled", r.IsSettled, &p.IsSettled},
		{"isStockChecked", r.IsStockChecked, &p.IsStockChecked},
		{"toCheckInDetail", r.ToCheckInDetail, &p.ToCheckInDetail},
	} {
		if !flag.field.Set {
			continue
		}
		if !flag.field.Valid {
			return p, requiredField(flag.name)
		}
		v := flag.field.Value
		*flag.target = &v
	}

	if r.RetailPrice.Set {
		p.RetailPrice = nullDecimal(r.RetailPrice)
	}
	if r.DateSold.Set {
		p.DateSold = nullTime(r.DateSold)
	}
	if r.CommissionPercentage.Set {
		if r.CommissionPercentage.Valid {
			pct := r.CommissionPercentage.Value
			if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
				return p, invalidField("commissionPercentage", pct.String())
			}
		}
		p.CommissionPercentage = nullDecimal(r.CommissionPercentage)
	}
	if r.DateInGallery.Set {
		p.DateInGallery = nullTime(r.DateInGallery)
	}

	if r.Notes.Set {
		p.Notes = nullString(r.Notes)
	}
	if r.PaymentNote.Set {
		p.PaymentNote = nullString(r.PaymentNote)
	}

	return p, nil
}

// BatchUpdateEditionsRequest applies one patch to many editions.
type BatchUpdateEditionsRequest struct {
	EditionIDs []string             `json:"editionIds" binding:"required,min=1"`
	Patch      UpdateEditionRequest `json:"patch"`
}

// ParseIDs parses the edition id list.
func (r *BatchUpdateEditionsRequest) ParseIDs() ([]id.ID, error) {
	ids := make([]id.ID, 0, len(r.EditionIDs))
	for _, raw := range r.EditionIDs {
		editionID, err := id.Parse(raw)
		if err != nil {
			return nil, invalidField("editionIds", raw)
		}
		ids = append(ids, editionID)
	}
	return ids, nil
}

func requiredField(name string) error {
	return apperror.NewValidation("field cannot be null").WithDetail("field", name)
}

func invalidField(name, value string) error {
	return apperror.NewValidation("invalid field value").
		WithDetail("field", name).
		WithDetail("value", value)
}

func nullString(f Field[string]) *sql.NullString {
	return &sql.NullString{String: f.Value, Valid: f.Valid}
}

func nullTime(f Field[time.Time]) *sql.NullTime {
	return &sql.NullTime{Time: f.Value, Valid: f.Valid}
}

func nullDecimal(f Field[decimal.Decimal]) *decimal.NullDecimal {
	return &decimal.NullDecimal{Decimal: f.Value, Valid: f.Valid}
}
