// Package partv1 holds the JSON shapes of the parts REST API.
package partv1

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Location struct {
	Floor     *int   `json:"floor"`
	Rack      *int   `json:"rack"`
	Row       *int   `json:"row"`
	Column    *int   `json:"column"`
	BoxNumber string `json:"boxNumber"`
	BoxColor  string `json:"boxColor"`
}

type Price struct {
	LandingPrice *decimal.Decimal `json:"landingPrice"`
	RetailPrice  *decimal.Decimal `json:"retailPrice"`
}

// PartRequest is the body of create and of every bulk import element.
type PartRequest struct {
	PartName   string    `json:"partName"`
	PartNumber string    `json:"partNumber"`
	ModelName  string    `json:"modelName"`
	Location   *Location `json:"location"`
	Price      *Price    `json:"price"`
	Quantity   *int64    `json:"quantity"`
}

type LocationPatch struct {
	Floor     *int    `json:"floor"`
	Rack      *int    `json:"rack"`
	Row       *int    `json:"row"`
	Column    *int    `json:"column"`
	BoxNumber *string `json:"boxNumber"`
	BoxColor  *string `json:"boxColor"`
}

// UpdatePartRequest is a partial update. Absent fields keep their value.
type UpdatePartRequest struct {
	PartName   *string        `json:"partName"`
	PartNumber *string        `json:"partNumber"`
	ModelName  *string        `json:"modelName"`
	Location   *LocationPatch `json:"location"`
	Price      *Price         `json:"price"`
	Quantity   *int64         `json:"quantity"`
}

type LocationView struct {
	Floor     int    `json:"floor"`
	Rack      int    `json:"rack"`
	Row       int    `json:"row"`
	Column    int    `json:"column"`
	BoxNumber string `json:"boxNumber"`
	BoxColor  string `json:"boxColor"`
}

type PriceView struct {
	LandingPrice decimal.Decimal `json:"landingPrice"`
	RetailPrice  decimal.Decimal `json:"retailPrice"`
}

// MarshalJSON writes prices as JSON numbers.
func (p PriceView) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		LandingPrice json.Number `json:"landingPrice"`
		RetailPrice  json.Number `json:"retailPrice"`
	}{
		LandingPrice: number(p.LandingPrice),
		RetailPrice:  number(p.RetailPrice),
	})
}

type Part struct {
	ID         string       `json:"id"`
	PartName   string       `json:"partName"`
	PartNumber string       `json:"partNumber"`
	ModelName  string       `json:"modelName"`
	Location   LocationView `json:"location"`
	Price      PriceView    `json:"price"`
	Quantity   int64        `json:"quantity"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// SearchHit carries the relevance score for ranked text results only.
type SearchHit struct {
	Part
	Score *float64 `json:"score,omitempty"`
}

type PartsPage struct {
	Parts       []Part `json:"parts"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	Total       int64  `json:"total"`
}

type FinancialSummary struct {
	TotalLandingValue decimal.Decimal `json:"totalLandingValue"`
	TotalRetailValue  decimal.Decimal `json:"totalRetailValue"`
	TotalQuantity     int64           `json:"totalQuantity"`
}

func (f FinancialSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalLandingValue json.Number `json:"totalLandingValue"`
		TotalRetailValue  json.Number `json:"totalRetailValue"`
		TotalQuantity     int64       `json:"totalQuantity"`
	}{
		TotalLandingValue: number(f.TotalLandingValue),
		TotalRetailValue:  number(f.TotalRetailValue),
		TotalQuantity:     f.TotalQuantity,
	})
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type FloorCount struct {
	Floor int   `json:"floor"`
	Count int64 `json:"count"`
}

type ModelCount struct {
	ModelName string `json:"modelName"`
	Count     int64  `json:"count"`
}

type Summary struct {
	TotalItems        int64            `json:"totalItems"`
	FinancialSummary  FinancialSummary `json:"financialSummary"`
	FloorDistribution []FloorCount     `json:"floorDistribution"`
	TopModels         []ModelCount     `json:"topModels"`
}

type ImportError struct {
	PartNumber string `json:"partNumber"`
	Error      string `json:"error"`
}

type ImportReport struct {
	Success  int           `json:"success"`
	Failures int           `json:"failures"`
	Created  int           `json:"created"`
	Updated  int           `json:"updated"`
	Errors   []ImportError `json:"errors"`
}

type Message struct {
	Message string `json:"message"`
}
