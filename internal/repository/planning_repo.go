package repository

import (
	"context"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepository interface {
	OwnedRepository[models.Task]
}

type CalendarRepository interface {
	OwnedRepository[models.CalendarEvent]
}

type NoteRepository interface {
	OwnedRepository[models.Note]
}

func NewTaskRepo(db *gorm.DB) TaskRepository {
	return newOwnedRepo[models.Task](db, "created_at DESC")
}

func NewCalendarRepo(db *gorm.DB) CalendarRepository {
	return newOwnedRepo[models.CalendarEvent](db, "date, start_time")
}

func NewNoteRepo(db *gorm.DB) NoteRepository {
	return newOwnedRepo[models.Note](db, "pinned DESC, updated_at DESC")
}

// ==================== МИССИИ ====================

type MissionRepository interface {
	OwnedRepository[models.Mission]
	FindByTitleAndDate(ctx context.Context, userID, title, dueDate string) (*models.Mission, error)
	ReplaceTasks(ctx context.Context, mission *models.Mission) error
	DeleteWithTasks(ctx context.Context, userID, id string) error
}

type missionRepo struct {
	*ownedRepo[models.Mission]
}

func NewMissionRepo(db *gorm.DB) MissionRepository {
	return &missionRepo{newOwnedRepo[models.Mission](db, "created_at DESC", "Tasks")}
}

func (r *missionRepo) FindByTitleAndDate(ctx context.Context, userID, title, dueDate string) (*models.Mission, error) {
	var mission models.Mission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND title = ? AND due_date = ?", userID, title, dueDate).
		First(&mission).Error
	if err != nil {
		return nil, err
	}
	return &mission, nil
}

// ReplaceTasks заменяет чек-лист миссии на mission.Tasks
func (r *missionRepo) ReplaceTasks(ctx context.Context, mission *models.Mission) error {
	return replaceTasks(ctx, r.db, "mission_id", mission.ID, mission.Tasks)
}

func (r *missionRepo) DeleteWithTasks(ctx context.Context, userID, id string) error {
	return deleteWithTasks[models.Mission](ctx, r.db, "mission_id", userID, id)
}

// ==================== ПРОЕКТЫ ====================

type ProjectRepository interface {
	OwnedRepository[models.Project]
	ReplaceTasks(ctx context.Context, project *models.Project) error
	DeleteWithTasks(ctx context.Context, userID, id string) error
}

type projectRepo struct {
	*ownedRepo[models.Project]
}

func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{newOwnedRepo[models.Project](db, "created_at DESC", "Tasks")}
}

func (r *projectRepo) ReplaceTasks(ctx context.Context, project *models.Project) error {
	return replaceTasks(ctx, r.db, "project_id", project.ID, project.Tasks)
}

func (r *projectRepo) DeleteWithTasks(ctx context.Context, userID, id string) error {
	return deleteWithTasks[models.Project](ctx, r.db, "project_id", userID, id)
}

func replaceTasks(ctx context.Context, db *gorm.DB, column, ownerID string, tasks []models.Task) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(column+" = ?", ownerID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Create(&tasks).Error
	})
}

func deleteWithTasks[T any](ctx context.Context, db *gorm.DB, column, userID, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, id).Limit(1).Find(new(T))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where(column+" = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(new(T)).Error
	})
}
