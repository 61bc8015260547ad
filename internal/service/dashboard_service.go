package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alenapavlenkko/lifetracker/internal/dashboard"
	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/repository"
	"gorm.io/gorm"
)

type DashboardService struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// Widgets возвращает раскладку. Шаблон по умолчанию подставляется и сохраняется
// только если раскладки нет вовсе; сохранённый пустой список остаётся пустым.
func (s *DashboardService) Widgets(ctx context.Context, userID string) ([]models.Widget, error) {
	layout, err := s.repo.Find(ctx, userID)
	if err == nil {
		if layout.Widgets == nil {
			return []models.Widget{}, nil
		}
		return dashboard.Sorted(layout.Widgets), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.ReplaceWidgets(ctx, userID, dashboard.Defaults())
}

// ReplaceWidgets сохраняет список целиком
func (s *DashboardService) ReplaceWidgets(ctx context.Context, userID string, widgets []models.Widget) ([]models.Widget, error) {
	if widgets == nil {
		widgets = []models.Widget{}
	}
	if err := dashboard.Validate(widgets); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	layout := &models.DashboardLayout{UserID: userID, Widgets: widgets}
	if err := s.repo.Save(ctx, layout); err != nil {
		return nil, err
	}
	return dashboard.Sorted(layout.Widgets), nil
}

// ApplyAction применяет одно действие к сохранённой раскладке и сохраняет результат
func (s *DashboardService) ApplyAction(ctx context.Context, userID string, action dashboard.Action) ([]models.Widget, error) {
	current, err := s.Widgets(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, err := dashboard.Apply(current, action)
	if err != nil {
		if errors.Is(err, dashboard.ErrUnknownWidget) {
			return nil, fmt.Errorf("widget %w", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.ReplaceWidgets(ctx, userID, next)
}
