package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/you-humble/sewing-inventory/internal/model"
)

const (
	fieldID           = "_id"
	fieldPartName     = "part_name"
	fieldPartNumber   = "part_number"
	fieldModelName    = "model_name"
	fieldQuantity     = "quantity"
	fieldFloor        = "location.floor"
	fieldLandingPrice = "price.landing_price"
	fieldRetailPrice  = "price.retail_price"
	fieldUpdatedAt    = "updated_at"
	fieldScore        = "score"
)

// searchableFields are covered by both the pattern stage and the text index.
var searchableFields = []string{fieldPartNumber, fieldPartName, fieldModelName}

// defaultSort is the repository order: most recently updated first.
func defaultSort() bson.D {
	return bson.D{
		{Key: fieldUpdatedAt, Value: -1},
		{Key: fieldID, Value: 1},
	}
}

func textScoreMeta() bson.M {
	return bson.M{"$meta": "textScore"}
}

// textSort ranks by relevance and falls back to the repository order so that
// equal scores come back in a stable order.
func textSort() bson.D {
	return append(bson.D{{Key: fieldScore, Value: textScoreMeta()}}, defaultSort()...)
}

// BuildPatternFilter matches q as a case-insensitive substring of any searchable field.
func BuildPatternFilter(q string) bson.M {
	pattern := regexp.QuoteMeta(q)

	or := make(bson.A, 0, len(searchableFields))
	for _, f := range searchableFields {
		or = append(or, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
	}

	return bson.M{"$or": or}
}

func BuildTextFilter(q string) bson.M {
	return bson.M{"$text": bson.M{"$search": q}}
}

// BuildSummaryPipeline computes every summary figure in one $facet stage so
// they are all read from the same pass over the collection.
func BuildSummaryPipeline() mongo.Pipeline {
	valueOf := func(priceField string) bson.M {
		return bson.M{"$sum": bson.M{"$multiply": bson.A{
			bson.M{"$toDecimal": "$" + priceField},
			"$" + fieldQuantity,
		}}}
	}

	return mongo.Pipeline{
		{{Key: "$facet", Value: bson.D{
			{Key: "totals", Value: bson.A{
				bson.M{"$group": bson.D{
					{Key: "_id", Value: nil},
					{Key: "count", Value: bson.M{"$sum": 1}},
					{Key: "total_landing_value", Value: valueOf(fieldLandingPrice)},
					{Key: "total_retail_value", Value: valueOf(fieldRetailPrice)},
					{Key: "total_quantity", Value: bson.M{"$sum": "$" + fieldQuantity}},
				}},
			}},
			{Key: "floors", Value: bson.A{
				bson.M{"$group": bson.D{
					{Key: "_id", Value: "$" + fieldFloor},
					{Key: "count", Value: bson.M{"$sum": 1}},
				}},
				bson.M{"$sort": bson.D{{Key: "_id", Value: 1}}},
			}},
			{Key: "models", Value: bson.A{
				bson.M{"$group": bson.D{
					{Key: "_id", Value: "$" + fieldModelName},
					{Key: "count", Value: bson.M{"$sum": 1}},
				}},
				bson.M{"$sort": bson.D{
					{Key: "count", Value: -1},
					{Key: "_id", Value: 1},
				}},
				bson.M{"$limit": model.TopModelsLimit},
			}},
		}}},
	}
}
