package repository

import (
	"context"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoutineRepository interface {
	FindActions(ctx context.Context, userID, kind string) ([]*models.RoutineAction, error)
	FindAction(ctx context.Context, userID, kind, id string) (*models.RoutineAction, error)
	CreateAction(ctx context.Context, action *models.RoutineAction) error
	UpdateAction(ctx context.Context, action *models.RoutineAction) error
	DeleteAction(ctx context.Context, userID, kind, id string) error
	UpsertLog(ctx context.Context, log *models.RoutineLog) error
	FindLogs(ctx context.Context, actionID string) ([]*models.RoutineLog, error)
	DeleteAll(ctx context.Context, userID string) error
}

type routineRepo struct {
	db *gorm.DB
}

func NewRoutineRepo(db *gorm.DB) RoutineRepository {
	return &routineRepo{db: db}
}

func (r *routineRepo) withLogs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Logs", func(db *gorm.DB) *gorm.DB {
		return db.Order("date DESC")
	})
}

func (r *routineRepo) FindActions(ctx context.Context, userID, kind string) ([]*models.RoutineAction, error) {
	actions := []*models.RoutineAction{}
	err := r.withLogs(ctx).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at").
		Find(&actions).Error
	return actions, err
}

func (r *routineRepo) FindAction(ctx context.Context, userID, kind, id string) (*models.RoutineAction, error) {
	var action models.RoutineAction
	err := r.withLogs(ctx).
		Where("user_id = ? AND kind = ? AND id = ?", userID, kind, id).
		First(&action).Error
	if err != nil {
		return nil, err
	}
	return &action, nil
}

func (r *routineRepo) CreateAction(ctx context.Context, action *models.RoutineAction) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(action).Error
}

func (r *routineRepo) UpdateAction(ctx context.Context, action *models.RoutineAction) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(action).Error
}

// DeleteAction удаляет действие вместе с его отметками
func (r *routineRepo) DeleteAction(ctx context.Context, userID, kind, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND kind = ? AND id = ?", userID, kind, id).
			Limit(1).Find(&models.RoutineAction{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("action_id = ?", id).Delete(&models.RoutineLog{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.RoutineAction{}).Error
	})
}

func (r *routineRepo) UpsertLog(ctx context.Context, log *models.RoutineLog) error {
	return upsert(ctx, r.db, log,
		[]string{"action_id", "date"},
		[]string{"completed"},
		"action_id = ? AND date = ?", log.ActionID, log.Date)
}

func (r *routineRepo) FindLogs(ctx context.Context, actionID string) ([]*models.RoutineLog, error) {
	logs := []*models.RoutineLog{}
	err := r.db.WithContext(ctx).Where("action_id = ?", actionID).Order("date DESC").Find(&logs).Error
	return logs, err
}

func (r *routineRepo) DeleteAll(ctx context.Context, userID string) error {
	owned := r.db.Model(&models.RoutineAction{}).Select("id").Where("user_id = ?", userID)
	if err := r.db.WithContext(ctx).Where("action_id IN (?)", owned).Delete(&models.RoutineLog{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RoutineAction{}).Error
}
