package service

import (
	"context"
	"fmt"

	"github.com/you-humble/sewing-inventory/internal/model"
	"github.com/you-humble/sewing-inventory/platform/logger"
)

func (s *service) Summary(ctx context.Context) (*model.Summary, error) {
	const op = "inventory.service.Summary"

	sum, err := s.repo.Summary(ctx)
	if err != nil {
		logger.Error(ctx, "repository summary", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sum, nil
}
