package repository

import (
	"context"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	Find(ctx context.Context, userID string) (*models.UserSettings, error)
	Save(ctx context.Context, settings *models.UserSettings) error
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Find(ctx context.Context, userID string) (*models.UserSettings, error) {
	var s models.UserSettings
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) Save(ctx context.Context, settings *models.UserSettings) error {
	return upsert(ctx, r.db, settings,
		[]string{"user_id"},
		[]string{"theme", "day_start_hour", "day_end_hour", "show_quotes", "show_streaks",
			"show_completed_tasks", "show_night_routine", "show_week_numbers"},
		"user_id = ?", settings.UserID)
}
