package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type PartEntity struct {
	ID         string         `bson:"_id"`
	PartName   string         `bson:"part_name"`
	PartNumber string         `bson:"part_number"`
	ModelName  string         `bson:"model_name"`
	Location   LocationEntity `bson:"location"`
	Price      PriceEntity    `bson:"price"`
	Quantity   int64          `bson:"quantity"`
	CreatedAt  time.Time      `bson:"created_at"`
	UpdatedAt  time.Time      `bson:"updated_at"`
}

type LocationEntity struct {
	Floor     int    `bson:"floor"`
	Rack      int    `bson:"rack"`
	Row       int    `bson:"row"`
	Column    int    `bson:"column"`
	BoxNumber string `bson:"box_number"`
	BoxColor  string `bson:"box_color"`
}

type PriceEntity struct {
	LandingPrice bson.Decimal128 `bson:"landing_price"`
	RetailPrice  bson.Decimal128 `bson:"retail_price"`
}

type scoredPartEntity struct {
	PartEntity `bson:",inline"`
	Score      float64 `bson:"score"`
}

type summaryEntity struct {
	Totals []totalsEntity     `bson:"totals"`
	Floors []floorCountEntity `bson:"floors"`
	Models []modelCountEntity `bson:"models"`
}

type totalsEntity struct {
	Count             int64           `bson:"count"`
	TotalLandingValue bson.Decimal128 `bson:"total_landing_value"`
	TotalRetailValue  bson.Decimal128 `bson:"total_retail_value"`
	TotalQuantity     int64           `bson:"total_quantity"`
}

type floorCountEntity struct {
	Floor int   `bson:"_id"`
	Count int64 `bson:"count"`
}

type modelCountEntity struct {
	ModelName string `bson:"_id"`
	Count     int64  `bson:"count"`
}
