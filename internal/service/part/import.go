package service

import (
	"context"
	"errors"
	"strings"

	"github.com/you-humble/sewing-inventory/internal/model"
	"github.com/you-humble/sewing-inventory/platform/logger"
)

// Import upserts every item by part number. A failing item is recorded in the
// report and never stops the rest of the batch.
func (s *service) Import(ctx context.Context, items []model.ImportItem) (*model.ImportReport, error) {
	const op = "inventory.service.Import"

	if len(items) == 0 {
		return nil, errors.Join(model.ErrValidation, errors.New("invalid import data format"))
	}

	report := model.ImportReport{Errors: make([]model.ImportError, 0)}
	for _, item := range items {
		report = report.Merge(s.reconcile(ctx, item))
	}

	logger.Info(ctx, "import finished",
		logger.String("op", op),
		logger.Int("success", report.Success),
		logger.Int("failures", report.Failures),
		logger.Int("created", report.Created),
		logger.Int("updated", report.Updated),
	)

	return &report, nil
}

func (s *service) reconcile(ctx context.Context, item model.ImportItem) model.ImportOutcome {
	out := model.ImportOutcome{PartNumber: strings.TrimSpace(item.Draft.PartNumber)}
	if out.PartNumber == "" {
		out.PartNumber = model.UnknownPartNumber
	}

	if item.Err != nil {
		out.Err = item.Err
		return out
	}

	existing, err := s.lookupForImport(ctx, item.Draft.PartNumber)
	if err != nil {
		out.Err = err
		return out
	}

	if existing == nil {
		_, out.Err = s.Create(ctx, item.Draft)
		out.Action = model.ImportCreated
		return out
	}

	_, out.Err = s.Update(ctx, existing.ID, item.Draft.AsPatch())
	out.Action = model.ImportUpdated
	return out
}

// lookupForImport returns nil without error when no part owns partNumber.
func (s *service) lookupForImport(ctx context.Context, partNumber string) (*model.Part, error) {
	partNumber = strings.TrimSpace(partNumber)
	if partNumber == "" {
		return nil, nil
	}

	p, err := s.PartByNumber(ctx, partNumber)
	if errors.Is(err, model.ErrPartNotFound) {
		return nil, nil
	}
	return p, err
}
