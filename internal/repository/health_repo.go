package repository

import (
	"context"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ==================== СОН ====================

type SleepRepository interface {
	OwnedRepository[models.SleepLog]
	Upsert(ctx context.Context, log *models.SleepLog) error
	FindByDate(ctx context.Context, userID, date string) (*models.SleepLog, error)
}

type sleepRepo struct {
	*ownedRepo[models.SleepLog]
}

func NewSleepRepo(db *gorm.DB) SleepRepository {
	return &sleepRepo{newOwnedRepo[models.SleepLog](db, "date DESC")}
}

// Upsert - запись за ту же дату обновляется на месте
func (r *sleepRepo) Upsert(ctx context.Context, log *models.SleepLog) error {
	return upsert(ctx, r.db, log,
		[]string{"user_id", "date"},
		[]string{"bed_time", "wake_time", "duration", "quality", "notes"},
		"user_id = ? AND date = ?", log.UserID, log.Date)
}

func (r *sleepRepo) FindByDate(ctx context.Context, userID, date string) (*models.SleepLog, error) {
	var log models.SleepLog
	err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// ==================== ПРОГРАММЫ ТРЕНИРОВОК ====================

type ProgramRepository interface {
	OwnedRepository[models.WorkoutProgram]
	ReplaceSessions(ctx context.Context, program *models.WorkoutProgram) error
	DeleteWithSessions(ctx context.Context, userID, id string) error
}

type programRepo struct {
	*ownedRepo[models.WorkoutProgram]
}

func NewProgramRepo(db *gorm.DB) ProgramRepository {
	return &programRepo{newOwnedRepo[models.WorkoutProgram](db, "created_at DESC", "Sessions")}
}

func (r *programRepo) ReplaceSessions(ctx context.Context, program *models.WorkoutProgram) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("program_id = ?", program.ID).Delete(&models.WorkoutProgramSession{}).Error; err != nil {
			return err
		}
		if len(program.Sessions) == 0 {
			return nil
		}
		for i := range program.Sessions {
			program.Sessions[i].ProgramID = program.ID
		}
		return tx.Create(&program.Sessions).Error
	})
}

func (r *programRepo) DeleteWithSessions(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, id).Limit(1).Find(&models.WorkoutProgram{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("program_id = ?", id).Delete(&models.WorkoutProgramSession{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.WorkoutProgram{}).Error
	})
}

func (r *programRepo) DeleteAll(ctx context.Context, userID string) error {
	owned := r.db.Model(&models.WorkoutProgram{}).Select("id").Where("user_id = ?", userID)
	if err := r.db.WithContext(ctx).Where("program_id IN (?)", owned).Delete(&models.WorkoutProgramSession{}).Error; err != nil {
		return err
	}
	return r.ownedRepo.DeleteAll(ctx, userID)
}

// ==================== ТРЕНИРОВКИ ====================

type WorkoutRepository interface {
	OwnedRepository[models.WorkoutSession]
	FindByProgram(ctx context.Context, userID, programID string) ([]*models.WorkoutSession, error)
	CreateBatch(ctx context.Context, sessions []*models.WorkoutSession) error
}

type workoutRepo struct {
	*ownedRepo[models.WorkoutSession]
}

func NewWorkoutRepo(db *gorm.DB) WorkoutRepository {
	return &workoutRepo{newOwnedRepo[models.WorkoutSession](db, "date DESC")}
}

func (r *workoutRepo) FindByProgram(ctx context.Context, userID, programID string) ([]*models.WorkoutSession, error) {
	sessions := []*models.WorkoutSession{}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND program_id = ?", userID, programID).
		Order("date").
		Find(&sessions).Error
	return sessions, err
}

func (r *workoutRepo) CreateBatch(ctx context.Context, sessions []*models.WorkoutSession) error {
	if len(sessions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&sessions).Error
}

// ==================== РЕКОРДЫ ====================

type RecordRepository interface {
	OwnedRepository[models.PersonalRecord]
}

func NewRecordRepo(db *gorm.DB) RecordRepository {
	return newOwnedRepo[models.PersonalRecord](db, "date DESC")
}

// ==================== ПРОФИЛЬ ====================

type ProfileRepository interface {
	Find(ctx context.Context, userID string) (*models.FitnessProfile, error)
	Save(ctx context.Context, profile *models.FitnessProfile) error
	DeleteAll(ctx context.Context, userID string) error
}

type profileRepo struct {
	*ownedRepo[models.FitnessProfile]
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{newOwnedRepo[models.FitnessProfile](db, "created_at")}
}

func (r *profileRepo) Find(ctx context.Context, userID string) (*models.FitnessProfile, error) {
	var p models.FitnessProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Save(ctx context.Context, profile *models.FitnessProfile) error {
	return upsert(ctx, r.db, profile,
		[]string{"user_id"},
		[]string{"age", "weight", "height", "gender", "goal", "activity_level", "target_weight"},
		"user_id = ?", profile.UserID)
}

// ==================== ПИТАНИЕ ====================

type NutritionRepository interface {
	FindAll(ctx context.Context, userID string) ([]*models.DailyNutrition, error)
	FindByDate(ctx context.Context, userID, date string) (*models.DailyNutrition, error)
	Save(ctx context.Context, day *models.DailyNutrition) error
	DeleteAll(ctx context.Context, userID string) error
}

type nutritionRepo struct {
	*ownedRepo[models.DailyNutrition]
}

func NewNutritionRepo(db *gorm.DB) NutritionRepository {
	return &nutritionRepo{newOwnedRepo[models.DailyNutrition](db, "date DESC")}
}

func (r *nutritionRepo) FindByDate(ctx context.Context, userID, date string) (*models.DailyNutrition, error) {
	var day models.DailyNutrition
	err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *nutritionRepo) Save(ctx context.Context, day *models.DailyNutrition) error {
	return upsert(ctx, r.db, day,
		[]string{"user_id", "date"},
		[]string{"calories", "protein", "carbs", "fats", "meals"},
		"user_id = ? AND date = ?", day.UserID, day.Date)
}

// ==================== ДАШБОРД ====================

type DashboardRepository interface {
	// Find возвращает gorm.ErrRecordNotFound, если раскладку ещё не сохраняли
	Find(ctx context.Context, userID string) (*models.DashboardLayout, error)
	Save(ctx context.Context, layout *models.DashboardLayout) error
}

type dashboardRepo struct {
	*ownedRepo[models.DashboardLayout]
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{newOwnedRepo[models.DashboardLayout](db, "created_at")}
}

func (r *dashboardRepo) Find(ctx context.Context, userID string) (*models.DashboardLayout, error) {
	var layout models.DashboardLayout
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&layout).Error
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *dashboardRepo) Save(ctx context.Context, layout *models.DashboardLayout) error {
	return upsert(ctx, r.db, layout,
		[]string{"user_id"},
		[]string{"widgets"},
		"user_id = ?", layout.UserID)
}
