package model

import "github.com/shopspring/decimal"

const TopModelsLimit = 10

type Summary struct {
	TotalItems        int64
	FinancialSummary  FinancialSummary
	FloorDistribution []FloorCount
	TopModels         []ModelCount
}

type FinancialSummary struct {
	// Sum of landing price × quantity.
	TotalLandingValue decimal.Decimal
	// Sum of retail price × quantity.
	TotalRetailValue decimal.Decimal
	TotalQuantity    int64
}

type FloorCount struct {
	Floor int
	Count int64
}

type ModelCount struct {
	ModelName string
	Count     int64
}
