package edition

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printstock/internal/core/id"
)

func TestPatch_ApplyMerge(t *testing.T) {
	e := validEdition()

	sold := true
	price := decimal.NewFromInt(1000)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	p := Patch{
		IsSold:      &sold,
		RetailPrice: &decimal.NullDecimal{Decimal: price, Valid: true},
		DateSold:    &sql.NullTime{Time: date, Valid: true},
	}
	p.Apply(e)

	assert.True(t, e.IsSold)
	require.NotNil(t, e.RetailPrice)
	assert.True(t, e.RetailPrice.Equal(price))
	require.NotNil(t, e.DateSold)
	assert.Equal(t, date, *e.DateSold)

	// Untouched fields survive the merge.
	assert.Equal(t, 1, e.EditionNumber)
	assert.Equal(t, SizeSmall, e.Size)
}

func TestPatch_SetToNull(t *testing.T) {
	e := validEdition()
	dist := id.New()
	e.DistributorID = &dist
	notes := "for review"
	e.Notes = &notes

	p := Patch{
		DistributorID: &uuid.NullUUID{Valid: false},
		Notes:         &sql.NullString{Valid: false},
	}
	p.Apply(e)

	assert.Nil(t, e.DistributorID)
	assert.Nil(t, e.Notes)
}

func TestPatch_Fields(t *testing.T) {
	sold := true
	p := Patch{
		IsSold:        &sold,
		DistributorID: &uuid.NullUUID{Valid: false},
	}

	fields := p.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, true, fields["is_sold"])

	v, ok := fields["distributor_id"]
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestPatch_ChangesRelations(t *testing.T) {
	assert.False(t, Patch{}.ChangesRelations())

	pid := id.New()
	assert.True(t, Patch{PrintID: &pid}.ChangesRelations())
	assert.True(t, Patch{DistributorID: &uuid.NullUUID{Valid: false}}.ChangesRelations())
}

func TestPatch_IsZero(t *testing.T) {
	assert.True(t, Patch{}.IsZero())

	sold := false
	assert.False(t, Patch{IsSold: &sold}.IsZero())
}
