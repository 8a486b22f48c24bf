package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/you-humble/sewing-inventory/internal/model"
	"github.com/you-humble/sewing-inventory/platform/logger"
)

// Search runs the pattern stage for identifier-shaped queries and stops there
// on any hit. Otherwise it falls through to the ranked text stage.
func (s *service) Search(ctx context.Context, q string) (*model.SearchResult, error) {
	const op = "inventory.service.Search"

	q = strings.TrimSpace(q)
	if q == "" {
		return nil, errors.Join(model.ErrValidation, errors.New("search term is required"))
	}
	log := logger.With(logger.String("query", q))

	if model.ClassifyQuery(q) == model.StagePatternMatch {
		parts, err := s.repo.MatchPattern(ctx, q)
		if err != nil {
			log.Error(ctx, "repository match pattern", logger.ErrorF(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(parts) > 0 {
			log.Debug(ctx, "pattern stage hit", logger.Int("hits", len(parts)))
			return &model.SearchResult{Stage: model.StagePatternMatch, Parts: parts}, nil
		}
	}

	scored, err := s.repo.SearchText(ctx, q)
	if err != nil {
		log.Error(ctx, "repository search text", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &model.SearchResult{
		Stage: model.StageRankedText,
		Parts: lo.Map(scored, func(sp model.ScoredPart, _ int) *model.Part {
			return sp.Part
		}),
		Scores: lo.Map(scored, func(sp model.ScoredPart, _ int) float64 {
			return sp.Score
		}),
	}, nil
}
