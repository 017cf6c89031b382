package edition

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"printstock/internal/core/id"
)

func validEdition() *Edition {
	return NewEdition(id.New(), 1, "Seaview Two - 1", SizeSmall)
}

func TestValidate_OK(t *testing.T) {
	e := validEdition()
	if err := e.Validate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_SettledRequiresSold(t *testing.T) {
	e := validEdition()
	e.IsSettled = true

	if err := e.Validate(context.Background()); err == nil {
		t.Fatal("expected error for settled-but-unsold edition")
	}
}

func TestValidate_SoldRequiresDate(t *testing.T) {
	e := validEdition()
	e.IsSold = true

	if err := e.Validate(context.Background()); err == nil {
		t.Fatal("expected error for sold edition without sale date")
	}

	sold := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	e.DateSold = &sold
	if err := e.Validate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CommissionRange(t *testing.T) {
	e := validEdition()

	bad := decimal.NewFromInt(120)
	e.CommissionPercentage = &bad
	if err := e.Validate(context.Background()); err == nil {
		t.Fatal("expected error for commission over 100")
	}

	ok := decimal.NewFromInt(40)
	e.CommissionPercentage = &ok
	if err := e.Validate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_SizeAndFrame(t *testing.T) {
	e := validEdition()
	e.Size = Size("Medium")
	if err := e.Validate(context.Background()); err == nil {
		t.Fatal("expected error for unknown size")
	}

	e = validEdition()
	bad := FrameType("Glued")
	e.FrameType = &bad
	if err := e.Validate(context.Background()); err == nil {
		t.Fatal("expected error for unknown frame type")
	}
}
