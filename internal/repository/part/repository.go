package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/sewing-inventory/internal/model"
	"github.com/you-humble/sewing-inventory/platform/logger"
)

type repository struct {
	coll *mongo.Collection
}

func NewPartRepository(collection *mongo.Collection) *repository {
	return &repository{coll: collection}
}

func (r *repository) Create(ctx context.Context, p *model.Part) error {
	const op = "repository.Create"

	ent, err := EntityFromModel(p)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, model.ErrValidation, err)
	}

	if _, err := r.coll.InsertOne(ctx, ent); err != nil {
		return storageErr(op, err)
	}

	return nil
}

func (r *repository) PartByID(ctx context.Context, id string) (*model.Part, error) {
	const op = "repository.PartByID"

	return r.findOne(ctx, op, bson.M{fieldID: id})
}

func (r *repository) PartByNumber(ctx context.Context, partNumber string) (*model.Part, error) {
	const op = "repository.PartByNumber"

	return r.findOne(ctx, op, bson.M{fieldPartNumber: partNumber})
}

func (r *repository) Update(
	ctx context.Context,
	id string,
	patch model.PartPatch,
	updatedAt time.Time,
) (*model.Part, error) {
	const op = "repository.Update"

	set, err := BuildSetDocument(patch, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrValidation, err)
	}

	var ent PartEntity
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{fieldID: id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPartNotFound
		}
		return nil, storageErr(op, err)
	}

	return decodeEntity(op, &ent)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	const op = "repository.Delete"

	res, err := r.coll.DeleteOne(ctx, bson.M{fieldID: id})
	if err != nil {
		return storageErr(op, err)
	}
	if res.DeletedCount == 0 {
		return model.ErrPartNotFound
	}

	return nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	const op = "repository.Count"

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storageErr(op, err)
	}

	return n, nil
}

func (r *repository) List(ctx context.Context, page model.PageRequest) ([]*model.Part, error) {
	const op = "repository.List"

	opts := options.Find().
		SetSort(defaultSort()).
		SetSkip(page.Skip()).
		SetLimit(int64(page.PageSize))

	return r.find(ctx, op, bson.M{}, opts)
}

func (r *repository) All(ctx context.Context) ([]*model.Part, error) {
	const op = "repository.All"

	return r.find(ctx, op, bson.M{}, options.Find().SetSort(defaultSort()))
}

func (r *repository) MatchPattern(ctx context.Context, q string) ([]*model.Part, error) {
	const op = "repository.MatchPattern"

	return r.find(ctx, op, BuildPatternFilter(q), options.Find().SetSort(defaultSort()))
}

func (r *repository) SearchText(ctx context.Context, q string) ([]model.ScoredPart, error) {
	const op = "repository.SearchText"

	opts := options.Find().
		SetProjection(bson.M{fieldScore: textScoreMeta()}).
		SetSort(textSort())

	cur, err := r.coll.Find(ctx, BuildTextFilter(q), opts)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer closeCursor(ctx, op, cur)

	out := make([]model.ScoredPart, 0)
	for cur.Next(ctx) {
		var ent scoredPartEntity
		if err := cur.Decode(&ent); err != nil {
			return nil, fmt.Errorf("%s decode: %w: %w", op, model.ErrPersistence, err)
		}

		p, err := decodeEntity(op, &ent.PartEntity)
		if err != nil {
			return nil, err
		}
		out = append(out, model.ScoredPart{Part: p, Score: ent.Score})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w: %w", op, model.ErrPersistence, err)
	}

	return out, nil
}

func (r *repository) Summary(ctx context.Context) (*model.Summary, error) {
	const op = "repository.Summary"

	cur, err := r.coll.Aggregate(ctx, BuildSummaryPipeline())
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer closeCursor(ctx, op, cur)

	var facets []summaryEntity
	if err := cur.All(ctx, &facets); err != nil {
		return nil, fmt.Errorf("%s decode: %w: %w", op, model.ErrPersistence, err)
	}

	var ent summaryEntity
	if len(facets) > 0 {
		ent = facets[0]
	}

	out, err := SummaryToModel(ent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}

	return out, nil
}

func (r *repository) CreateBatch(ctx context.Context, parts []*model.Part) error {
	const op = "repository.CreateBatch"

	docs := make([]any, 0, len(parts))
	for _, p := range parts {
		if p == nil {
			continue
		}
		if p.ID == "" {
			return fmt.Errorf("%s: part ID is empty", op)
		}

		ent, err := EntityFromModel(p)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		docs = append(docs, ent)
	}
	if len(docs) == 0 {
		return nil
	}

	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return storageErr(op, err)
	}

	return nil
}

func (r *repository) DeleteAll(ctx context.Context) (int64, error) {
	const op = "repository.DeleteAll"

	res, err := r.coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, storageErr(op, err)
	}

	return res.DeletedCount, nil
}

func (r *repository) findOne(ctx context.Context, op string, filter bson.M) (*model.Part, error) {
	var ent PartEntity
	err := r.coll.FindOne(ctx, filter).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPartNotFound
		}
		return nil, storageErr(op, err)
	}

	return decodeEntity(op, &ent)
}

func (r *repository) find(
	ctx context.Context,
	op string,
	filter bson.M,
	opts *options.FindOptionsBuilder,
) ([]*model.Part, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr(op, err)
	}
	defer closeCursor(ctx, op, cur)

	out := make([]*model.Part, 0)
	for cur.Next(ctx) {
		var ent PartEntity
		if err := cur.Decode(&ent); err != nil {
			return nil, fmt.Errorf("%s decode: %w: %w", op, model.ErrPersistence, err)
		}

		p, err := decodeEntity(op, &ent)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w: %w", op, model.ErrPersistence, err)
	}

	return out, nil
}

func decodeEntity(op string, ent *PartEntity) (*model.Part, error) {
	p, err := EntityToModel(ent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
	}
	return p, nil
}

// storageErr classifies a driver error. A unique index violation is the
// authoritative part number conflict.
func storageErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, model.ErrDuplicateKey)
	}
	return fmt.Errorf("%s: %w: %w", op, model.ErrPersistence, err)
}

func closeCursor(ctx context.Context, op string, cur *mongo.Cursor) {
	if cerr := cur.Close(ctx); cerr != nil {
		logger.Error(ctx, "failed to close cursor",
			logger.String("op", op),
			logger.ErrorF(cerr),
		)
	}
}
