package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/sewing-inventory/internal/model"
)

const (
	PartNumberIndex = "part_number_unique"
	TextIndex       = "parts_text"
)

type BatchCreator interface {
	CreateBatch(ctx context.Context, parts []*model.Part) error
}

// EnsureIndexes creates the indexes the repository relies on. The unique
// part number index is what finally rejects concurrent duplicates.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	const op = "repository.EnsureIndexes"

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: fieldPartNumber, Value: 1}},
			Options: options.Index().SetName(PartNumberIndex).SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: fieldPartName, Value: "text"},
				{Key: fieldPartNumber, Value: "text"},
				{Key: fieldModelName, Value: "text"},
			},
			Options: options.Index().SetName(TextIndex),
		},
		{Keys: bson.D{{Key: fieldUpdatedAt, Value: -1}, {Key: fieldID, Value: 1}}},
		{Keys: bson.D{{Key: fieldFloor, Value: 1}}},
		{Keys: bson.D{{Key: fieldModelName, Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

type partCategory struct {
	prefix string
	name   string
}

var (
	sampleCategories = []partCategory{
		{"TG", "Thread Guide"},
		{"NP", "Needle Plate"},
		{"BC", "Bobbin Case"},
		{"FD", "Feed Dog"},
		{"PF", "Presser Foot"},
		{"TP", "Tension Pulley"},
		{"NB", "Needle Bar"},
		{"SH", "Shuttle Hook"},
		{"MT", "Motor"},
		{"PD", "Pedal"},
	}
	sampleModels = []string{
		"Singer 1507",
		"Juki DDL-8700",
		"Brother CS6000i",
		"Janome HD3000",
		"Pfaff Quilt Expression 4.2",
	}
	sampleBoxColors = []string{"Red", "Blue", "Green", "Yellow", "Black", "White", "Orange", "Purple"}
)

// GenerateSampleParts builds n parts with realistic sewing machine data.
// Part numbers are sequential per call, so one batch never collides with itself.
func GenerateSampleParts(n int, f *gofakeit.Faker, now time.Time) []*model.Part {
	parts := make([]*model.Part, 0, n)

	for i := 1; i <= n; i++ {
		category := sampleCategories[f.IntRange(0, len(sampleCategories)-1)]

		landing := decimal.NewFromInt(int64(f.IntRange(100, 4999)))
		markup := decimal.NewFromFloat(1 + f.Float64Range(0.2, 0.5))

		parts = append(parts, &model.Part{
			ID:         uuid.NewString(),
			PartName:   fmt.Sprintf("%s %d", category.name, f.IntRange(1, 10)),
			PartNumber: fmt.Sprintf("%s-%03d", category.prefix, i),
			ModelName:  f.RandomString(sampleModels),
			Location: model.Location{
				Floor:     f.IntRange(1, 3),
				Rack:      f.IntRange(1, 10),
				Row:       f.IntRange(1, 6),
				Column:    f.IntRange(1, 4),
				BoxNumber: fmt.Sprintf("BX-%02d", f.IntRange(1, 100)),
				BoxColor:  f.RandomString(sampleBoxColors),
			},
			Price: model.Price{
				LandingPrice: landing,
				RetailPrice:  landing.Mul(markup).Round(2),
			},
			Quantity:  int64(f.IntRange(1, 50)),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return parts
}

func PartsBootstrap(ctx context.Context, c BatchCreator, n int, f *gofakeit.Faker, now time.Time) (int, error) {
	parts := GenerateSampleParts(n, f, now)
	if err := c.CreateBatch(ctx, parts); err != nil {
		return 0, err
	}

	return len(parts), nil
}
