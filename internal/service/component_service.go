package service

import (
	"context"
	"strings"

	"labstock/internal/model"
	"labstock/internal/repository"
)

type ComponentService struct {
	components *repository.ComponentRepository
}

func NewComponentService(components *repository.ComponentRepository) *ComponentService {
	return &ComponentService{components: components}
}

func (s *ComponentService) Add(ctx context.Context, name, category string, quantity int) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, ErrInvalidInput
	}
	if quantity < 0 {
		return 0, ErrInvalidQuantity
	}
	return s.components.Insert(ctx, name, category, quantity)
}

func (s *ComponentService) ListAll(ctx context.Context) ([]model.Component, error) {
	return s.components.ListAll(ctx)
}

func (s *ComponentService) Dashboard(ctx context.Context) ([]model.Component, error) {
	return s.components.ListDashboard(ctx)
}
