package model

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{"defaults", PageRequest{}, PageRequest{Page: 1, PageSize: 20}},
		{"negative", PageRequest{Page: -3, PageSize: -1}, PageRequest{Page: 1, PageSize: 20}},
		{"capped", PageRequest{Page: 2, PageSize: 500}, PageRequest{Page: 2, PageSize: MaxPageSize}},
		{"kept", PageRequest{Page: 4, PageSize: 15}, PageRequest{Page: 4, PageSize: 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageRequestSkip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), PageRequest{Page: 1, PageSize: 20}.Skip())
	assert.Equal(t, int64(40), PageRequest{Page: 3, PageSize: 20}.Skip())
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(1, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestClassifyQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		q    string
		want SearchStage
	}{
		{"TG-001", StagePatternMatch},
		{"singer", StagePatternMatch},
		{"1507", StagePatternMatch},
		{"thread guide", StageRankedText},
		{"Juki DDL-8700", StageRankedText},
		{"a.b", StageRankedText},
	}

	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyQuery(tt.q))
		})
	}
}

func TestSearchStageString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pattern", StagePatternMatch.String())
	assert.Equal(t, "text", StageRankedText.String())
	assert.Equal(t, "unknown", SearchStage(0).String())
}

func TestImportReportMerge(t *testing.T) {
	t.Parallel()

	outcomes := []ImportOutcome{
		{PartNumber: "TG-001", Action: ImportCreated},
		{PartNumber: "TG-002", Action: ImportUpdated},
		{PartNumber: "TG-003", Err: errors.Join(ErrValidation, errors.New("quantity must be >= 0"))},
		{PartNumber: "TG-004", Action: ImportCreated},
	}

	report := lo.Reduce(outcomes, func(r ImportReport, o ImportOutcome, _ int) ImportReport {
		return r.Merge(o)
	}, ImportReport{})

	assert.Equal(t, 3, report.Success)
	assert.Equal(t, 1, report.Failures)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 1, report.Updated)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, ImportError{
		PartNumber: "TG-003",
		Error:      "validation error: quantity must be >= 0",
	}, report.Errors[0])
	assert.Equal(t, report.Success+report.Failures, len(outcomes))
}

func TestMessage(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Message(nil))
	assert.Equal(t, "part not found", Message(ErrPartNotFound))
	assert.Equal(t, "op: part not found", Message(fmt.Errorf("op: %w", ErrPartNotFound)))
	assert.Equal(t,
		"validation error: partName is required: modelName is required",
		Message(errors.Join(ErrValidation, errors.New("partName is required"), errors.New("modelName is required"))),
	)
}

func TestPartDraftAsPatch(t *testing.T) {
	t.Parallel()

	t.Run("full draft overwrites everything", func(t *testing.T) {
		t.Parallel()

		draft := PartDraft{
			PartName:   "Motor 2",
			PartNumber: "MT-002",
			ModelName:  "Singer 1507",
			Location:   &Location{Floor: 1, Rack: 2, Row: 3, Column: 4, BoxNumber: "BX-01", BoxColor: "Red"},
			Price: &Price{
				LandingPrice: decimal.RequireFromString("100"),
				RetailPrice:  decimal.RequireFromString("150.25"),
			},
			Quantity: lo.ToPtr(int64(0)),
		}

		patch := draft.AsPatch()

		assert.Equal(t, "Motor 2", lo.FromPtr(patch.PartName))
		assert.Equal(t, "MT-002", lo.FromPtr(patch.PartNumber))
		assert.Equal(t, "Singer 1507", lo.FromPtr(patch.ModelName))
		require.NotNil(t, patch.Location)
		assert.Equal(t, 4, lo.FromPtr(patch.Location.Column))
		assert.Equal(t, "Red", lo.FromPtr(patch.Location.BoxColor))
		require.NotNil(t, patch.Price)
		assert.True(t, patch.Price.RetailPrice.Equal(decimal.RequireFromString("150.25")))
		require.NotNil(t, patch.Quantity)
		assert.Zero(t, *patch.Quantity)
	})

	t.Run("partial draft keeps stored values", func(t *testing.T) {
		t.Parallel()

		patch := PartDraft{PartNumber: "MT-002", Quantity: lo.ToPtr(int64(7))}.AsPatch()

		assert.Nil(t, patch.PartName)
		assert.Nil(t, patch.ModelName)
		assert.Nil(t, patch.Location)
		assert.Nil(t, patch.Price)
		assert.Equal(t, int64(7), lo.FromPtr(patch.Quantity))
		assert.False(t, patch.Empty())
	})
}

func TestPartPatchEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, PartPatch{}.Empty())
	assert.False(t, PartPatch{Quantity: lo.ToPtr(int64(0))}.Empty())
}

func TestReportMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{
			name: "validation keeps its detail",
			err:  fmt.Errorf("inventory.service.Create: %w", errors.Join(ErrValidation, errors.New("quantity must be >= 0"))),
			want: "validation error: quantity must be >= 0",
		},
		{
			name: "validation wrapped by the repository",
			err:  fmt.Errorf("inventory.service.Update: %w", fmt.Errorf("repository.Update: %w: %w", ErrValidation, errors.New("bad decimal"))),
			want: "validation error: bad decimal",
		},
		{
			name: "persistence hides the driver chain",
			err:  fmt.Errorf("inventory.service.Update: %w", fmt.Errorf("repository.Update: %w: %w", ErrPersistence, errors.New("connection reset"))),
			want: "persistence failure",
		},
		{
			name: "duplicate",
			err:  fmt.Errorf("inventory.service.Create: %w", ErrDuplicateKey),
			want: "part number already exists",
		},
		{"unknown", errors.New("boom"), "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ReportMessage(tt.err))
		})
	}
}

func TestDomainTypesCarryNoJSONTags(t *testing.T) {
	t.Parallel()

	for _, v := range []any{Part{}, Location{}, Price{}, PartDraft{}} {
		typ := reflect.TypeOf(v)
		for i := range typ.NumField() {
			f := typ.Field(i)
			assert.Empty(t, f.Tag.Get("json"), "%s.%s", typ.Name(), f.Name)
		}
	}
}
