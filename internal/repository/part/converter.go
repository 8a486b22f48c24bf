package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/you-humble/sewing-inventory/internal/model"
)

func EntityToModel(e *PartEntity) (*model.Part, error) {
	if e == nil {
		return nil, nil
	}

	landing, err := decimalFromBSON(e.Price.LandingPrice)
	if err != nil {
		return nil, fmt.Errorf("part %s landing price: %w", e.ID, err)
	}
	retail, err := decimalFromBSON(e.Price.RetailPrice)
	if err != nil {
		return nil, fmt.Errorf("part %s retail price: %w", e.ID, err)
	}

	return &model.Part{
		ID:         e.ID,
		PartName:   e.PartName,
		PartNumber: e.PartNumber,
		ModelName:  e.ModelName,
		Location: model.Location{
			Floor:     e.Location.Floor,
			Rack:      e.Location.Rack,
			Row:       e.Location.Row,
			Column:    e.Location.Column,
			BoxNumber: e.Location.BoxNumber,
			BoxColor:  e.Location.BoxColor,
		},
		Price: model.Price{
			LandingPrice: landing,
			RetailPrice:  retail,
		},
		Quantity:  e.Quantity,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}, nil
}

func EntityFromModel(p *model.Part) (*PartEntity, error) {
	if p == nil {
		return nil, nil
	}

	landing, err := decimalToBSON(p.Price.LandingPrice)
	if err != nil {
		return nil, fmt.Errorf("landing price: %w", err)
	}
	retail, err := decimalToBSON(p.Price.RetailPrice)
	if err != nil {
		return nil, fmt.Errorf("retail price: %w", err)
	}

	return &PartEntity{
		ID:         p.ID,
		PartName:   p.PartName,
		PartNumber: p.PartNumber,
		ModelName:  p.ModelName,
		Location: LocationEntity{
			Floor:     p.Location.Floor,
			Rack:      p.Location.Rack,
			Row:       p.Location.Row,
			Column:    p.Location.Column,
			BoxNumber: p.Location.BoxNumber,
			BoxColor:  p.Location.BoxColor,
		},
		Price: PriceEntity{
			LandingPrice: landing,
			RetailPrice:  retail,
		},
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

// BuildSetDocument flattens a patch into dotted $set paths so nested location
// and price fields can be replaced one by one.
func BuildSetDocument(patch model.PartPatch, updatedAt time.Time) (bson.M, error) {
	set := bson.M{fieldUpdatedAt: updatedAt}

	if patch.PartName != nil {
		set[fieldPartName] = *patch.PartName
	}
	if patch.PartNumber != nil {
		set[fieldPartNumber] = *patch.PartNumber
	}
	if patch.ModelName != nil {
		set[fieldModelName] = *patch.ModelName
	}
	if patch.Quantity != nil {
		set[fieldQuantity] = *patch.Quantity
	}

	if loc := patch.Location; loc != nil {
		if loc.Floor != nil {
			set[fieldFloor] = *loc.Floor
		}
		if loc.Rack != nil {
			set["location.rack"] = *loc.Rack
		}
		if loc.Row != nil {
			set["location.row"] = *loc.Row
		}
		if loc.Column != nil {
			set["location.column"] = *loc.Column
		}
		if loc.BoxNumber != nil {
			set["location.box_number"] = *loc.BoxNumber
		}
		if loc.BoxColor != nil {
			set["location.box_color"] = *loc.BoxColor
		}
	}

	if price := patch.Price; price != nil {
		if price.LandingPrice != nil {
			v, err := decimalToBSON(*price.LandingPrice)
			if err != nil {
				return nil, fmt.Errorf("landing price: %w", err)
			}
			set[fieldLandingPrice] = v
		}
		if price.RetailPrice != nil {
			v, err := decimalToBSON(*price.RetailPrice)
			if err != nil {
				return nil, fmt.Errorf("retail price: %w", err)
			}
			set[fieldRetailPrice] = v
		}
	}

	return set, nil
}

func decimalToBSON(d decimal.Decimal) (bson.Decimal128, error) {
	return bson.ParseDecimal128(d.String())
}

func decimalFromBSON(d bson.Decimal128) (decimal.Decimal, error) {
	if d.IsZero() {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(d.String())
}

func SummaryToModel(e summaryEntity) (*model.Summary, error) {
	out := &model.Summary{
		FinancialSummary: model.FinancialSummary{
			TotalLandingValue: decimal.Zero,
			TotalRetailValue:  decimal.Zero,
		},
		FloorDistribution: make([]model.FloorCount, 0, len(e.Floors)),
		TopModels:         make([]model.ModelCount, 0, len(e.Models)),
	}

	if len(e.Totals) > 0 {
		t := e.Totals[0]

		landing, err := decimalFromBSON(t.TotalLandingValue)
		if err != nil {
			return nil, fmt.Errorf("total landing value: %w", err)
		}
		retail, err := decimalFromBSON(t.TotalRetailValue)
		if err != nil {
			return nil, fmt.Errorf("total retail value: %w", err)
		}

		out.TotalItems = t.Count
		out.FinancialSummary = model.FinancialSummary{
			TotalLandingValue: landing,
			TotalRetailValue:  retail,
			TotalQuantity:     t.TotalQuantity,
		}
	}

	for _, f := range e.Floors {
		out.FloorDistribution = append(out.FloorDistribution, model.FloorCount{
			Floor: f.Floor,
			Count: f.Count,
		})
	}
	for _, m := range e.Models {
		out.TopModels = append(out.TopModels, model.ModelCount{
			ModelName: m.ModelName,
			Count:     m.Count,
		})
	}

	return out, nil
}
