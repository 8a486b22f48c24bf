package repository

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/sewing-inventory/internal/model"
)

type batchRecorder struct {
	got []*model.Part
	err error
}

func (b *batchRecorder) CreateBatch(_ context.Context, parts []*model.Part) error {
	b.got = parts
	return b.err
}

func TestGenerateSampleParts(t *testing.T) {
	t.Parallel()

	parts := GenerateSampleParts(40, gofakeit.New(7), updatedAt)
	require.Len(t, parts, 40)

	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		_, dup := seen[p.PartNumber]
		assert.False(t, dup, "duplicate part number %s", p.PartNumber)
		seen[p.PartNumber] = struct{}{}

		assert.NotEmpty(t, p.ID)
		assert.GreaterOrEqual(t, p.Location.Floor, 1)
		assert.LessOrEqual(t, p.Location.Floor, 3)
		assert.True(t, p.Price.RetailPrice.GreaterThan(p.Price.LandingPrice))
		assert.Positive(t, p.Quantity)
		assert.Equal(t, updatedAt, p.CreatedAt)
	}
}

func TestGenerateSamplePartsDeterministic(t *testing.T) {
	t.Parallel()

	a := GenerateSampleParts(5, gofakeit.New(11), updatedAt)
	b := GenerateSampleParts(5, gofakeit.New(11), updatedAt)

	for i := range a {
		assert.Equal(t, a[i].PartNumber, b[i].PartNumber)
		assert.Equal(t, a[i].ModelName, b[i].ModelName)
		assert.True(t, a[i].Price.RetailPrice.Equal(b[i].Price.RetailPrice))
	}
}

func TestPartsBootstrap(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		rec := &batchRecorder{}
		n, err := PartsBootstrap(context.Background(), rec, 10, gofakeit.New(1), updatedAt)
		require.NoError(t, err)
		assert.Equal(t, 10, n)
		assert.Len(t, rec.got, 10)
	})

	t.Run("storage error", func(t *testing.T) {
		t.Parallel()

		rec := &batchRecorder{err: model.ErrPersistence}
		n, err := PartsBootstrap(context.Background(), rec, 3, gofakeit.New(1), updatedAt)
		require.ErrorIs(t, err, model.ErrPersistence)
		assert.Zero(t, n)
	})
}
