package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Part struct {
	// Globally unique identifier of the part.
	ID string
	// Human-readable part name, e.g. "Thread Guide 3".
	PartName string
	// Catalogue number. Unique across the inventory.
	PartNumber string
	// Sewing machine model the part belongs to.
	ModelName string
	// Physical storage slot of the part.
	Location Location
	// Cost basis and sale price of one unit.
	Price Price
	// Units currently in stock.
	Quantity int64
	// Timestamp when the part was created.
	CreatedAt time.Time
	// Timestamp when the part was last updated.
	UpdatedAt time.Time
}

type Location struct {
	Floor     int
	Rack      int
	Row       int
	Column    int
	BoxNumber string `validate:"required"`
	BoxColor  string `validate:"required"`
}

type Price struct {
	LandingPrice decimal.Decimal `validate:"gte=0"`
	RetailPrice  decimal.Decimal `validate:"gte=0"`
}

// PartDraft is a part before it has an identity. Create and import consume it.
type PartDraft struct {
	PartName   string    `validate:"required"`
	PartNumber string    `validate:"required"`
	ModelName  string    `validate:"required"`
	Location   *Location `validate:"required"`
	Price      *Price    `validate:"required"`
	Quantity   *int64    `validate:"omitempty,gte=0"`
}

// PartPatch holds the fields to overwrite. Nil means "keep".
type PartPatch struct {
	PartName   *string        `validate:"omitempty,min=1"`
	PartNumber *string        `validate:"omitempty,min=1"`
	ModelName  *string        `validate:"omitempty,min=1"`
	Location   *LocationPatch `validate:"omitempty"`
	Price      *PricePatch    `validate:"omitempty"`
	Quantity   *int64         `validate:"omitempty,gte=0"`
}

type LocationPatch struct {
	Floor     *int
	Rack      *int
	Row       *int
	Column    *int
	BoxNumber *string `validate:"omitempty,min=1"`
	BoxColor  *string `validate:"omitempty,min=1"`
}

type PricePatch struct {
	LandingPrice *decimal.Decimal `validate:"omitempty,gte=0"`
	RetailPrice  *decimal.Decimal `validate:"omitempty,gte=0"`
}

func (p PartPatch) Empty() bool {
	return p.PartName == nil &&
		p.PartNumber == nil &&
		p.ModelName == nil &&
		p.Location == nil &&
		p.Price == nil &&
		p.Quantity == nil
}

// AsPatch turns a draft into a patch that overwrites every field the draft
// carries. Empty strings and missing nested values keep the stored ones.
func (d PartDraft) AsPatch() PartPatch {
	patch := PartPatch{Quantity: d.Quantity}

	if d.PartName != "" {
		patch.PartName = &d.PartName
	}
	if d.PartNumber != "" {
		patch.PartNumber = &d.PartNumber
	}
	if d.ModelName != "" {
		patch.ModelName = &d.ModelName
	}

	if d.Location != nil {
		loc := *d.Location
		patch.Location = &LocationPatch{
			Floor:     &loc.Floor,
			Rack:      &loc.Rack,
			Row:       &loc.Row,
			Column:    &loc.Column,
			BoxNumber: &loc.BoxNumber,
			BoxColor:  &loc.BoxColor,
		}
	}

	if d.Price != nil {
		price := *d.Price
		patch.Price = &PricePatch{
			LandingPrice: &price.LandingPrice,
			RetailPrice:  &price.RetailPrice,
		}
	}

	return patch
}
