package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/you-humble/sewing-inventory/internal/model"
	"github.com/you-humble/sewing-inventory/platform/clock"
	"github.com/you-humble/sewing-inventory/platform/logger"
)

type PartRepository interface {
	Create(ctx context.Context, p *model.Part) error
	PartByID(ctx context.Context, id string) (*model.Part, error)
	PartByNumber(ctx context.Context, partNumber string) (*model.Part, error)
	Update(ctx context.Context, id string, patch model.PartPatch, updatedAt time.Time) (*model.Part, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, page model.PageRequest) ([]*model.Part, error)
	All(ctx context.Context) ([]*model.Part, error)
	MatchPattern(ctx context.Context, q string) ([]*model.Part, error)
	SearchText(ctx context.Context, q string) ([]model.ScoredPart, error)
	Summary(ctx context.Context) (*model.Summary, error)
}

type service struct {
	repo     PartRepository
	clock    clock.Clock
	validate *validator.Validate
}

func NewInventoryService(repo PartRepository, clk clock.Clock) *service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{
		repo:     repo,
		clock:    clk,
		validate: newValidator(),
	}
}

func (s *service) Create(ctx context.Context, draft model.PartDraft) (*model.Part, error) {
	const op = "inventory.service.Create"

	draft = normalizeDraft(draft)
	log := logger.With(logger.String("part_number", draft.PartNumber))

	if err := s.validateStruct(draft); err != nil {
		log.Warn(ctx, "validation: invalid draft", logger.ErrorF(err))
		return nil, err
	}

	if err := s.ensureNumberFree(ctx, draft.PartNumber, ""); err != nil {
		log.Warn(ctx, "part number check", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.clock.Now()
	p := &model.Part{
		ID:         uuid.NewString(),
		PartName:   draft.PartName,
		PartNumber: draft.PartNumber,
		ModelName:  draft.ModelName,
		Location:   *draft.Location,
		Price:      *draft.Price,
		Quantity:   lo.FromPtr(draft.Quantity),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error(ctx, "repository create", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info(ctx, "part created", logger.String("part_id", p.ID))
	return p, nil
}

func (s *service) Part(ctx context.Context, partID string) (*model.Part, error) {
	const op = "inventory.service.Part"
	log := logger.With(
		logger.String("part_id", partID),
	)

	partID = strings.TrimSpace(partID)
	if partID == "" {
		log.Error(ctx, "validation: empty part id")
		return nil, errors.Join(model.ErrValidation, errors.New("id must be non-empty"))
	}

	p, err := s.repo.PartByID(ctx, partID)
	if err != nil {
		log.Error(ctx, "repository part by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *service) PartByNumber(ctx context.Context, partNumber string) (*model.Part, error) {
	const op = "inventory.service.PartByNumber"

	partNumber = strings.TrimSpace(partNumber)
	if partNumber == "" {
		return nil, errors.Join(model.ErrValidation, errors.New("part number must be non-empty"))
	}

	p, err := s.repo.PartByNumber(ctx, partNumber)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, partID string, patch model.PartPatch) (*model.Part, error) {
	const op = "inventory.service.Update"

	partID = strings.TrimSpace(partID)
	log := logger.With(logger.String("part_id", partID))

	if partID == "" {
		log.Error(ctx, "validation: empty part id")
		return nil, errors.Join(model.ErrValidation, errors.New("id must be non-empty"))
	}

	patch = normalizePatch(patch)
	if err := s.validateStruct(patch); err != nil {
		log.Warn(ctx, "validation: invalid patch", logger.ErrorF(err))
		return nil, err
	}

	if patch.PartNumber != nil {
		if err := s.ensureNumberFree(ctx, *patch.PartNumber, partID); err != nil {
			log.Warn(ctx, "part number check", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	p, err := s.repo.Update(ctx, partID, patch, s.clock.Now())
	if err != nil {
		log.Error(ctx, "repository update", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (s *service) Delete(ctx context.Context, partID string) error {
	const op = "inventory.service.Delete"

	partID = strings.TrimSpace(partID)
	if partID == "" {
		return errors.Join(model.ErrValidation, errors.New("id must be non-empty"))
	}

	if err := s.repo.Delete(ctx, partID); err != nil {
		logger.Error(ctx, "repository delete",
			logger.String("part_id", partID),
			logger.ErrorF(err),
		)
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info(ctx, "part deleted", logger.String("part_id", partID))
	return nil
}

func (s *service) List(ctx context.Context, page model.PageRequest) (*model.PartsPage, error) {
	const op = "inventory.service.List"

	page = page.Normalize()
	log := logger.With(
		logger.Int("page", page.Page),
		logger.Int("page_size", page.PageSize),
	)

	var (
		parts []*model.Part
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		parts, err = s.repo.List(gctx, page)
		return err
	})
	g.Go(func() (err error) {
		total, err = s.repo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error(ctx, "repository list parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &model.PartsPage{
		Parts:       parts,
		TotalPages:  model.TotalPages(total, page.PageSize),
		CurrentPage: page.Page,
		Total:       total,
	}, nil
}

func (s *service) Export(ctx context.Context) ([]*model.Part, error) {
	const op = "inventory.service.Export"

	parts, err := s.repo.All(ctx)
	if err != nil {
		logger.Error(ctx, "repository all parts", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return parts, nil
}

// ensureNumberFree fails with ErrDuplicateKey when partNumber belongs to a
// part other than ownerID. The unique index still has the final word.
func (s *service) ensureNumberFree(ctx context.Context, partNumber, ownerID string) error {
	existing, err := s.repo.PartByNumber(ctx, partNumber)
	switch {
	case errors.Is(err, model.ErrPartNotFound):
		return nil
	case err != nil:
		return err
	case existing != nil && existing.ID != ownerID:
		return model.ErrDuplicateKey
	default:
		return nil
	}
}
