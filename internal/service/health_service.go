package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealthService - сон, рекорды, фитнес-профиль и дневник питания
type HealthService struct {
	store *repository.Store
	now   Clock
}

func NewHealthService(store *repository.Store, now Clock) *HealthService {
	if now == nil {
		now = time.Now
	}
	return &HealthService{store: store, now: now}
}

// ==================== СОН ====================

// sleepMinutes - длительность сна с учётом перехода через полночь
func sleepMinutes(bed, wake string) int {
	b, err1 := time.Parse("15:04", bed)
	w, err2 := time.Parse("15:04", wake)
	if err1 != nil || err2 != nil {
		return 0
	}
	d := w.Sub(b)
	if d <= 0 {
		d += 24 * time.Hour
	}
	return int(d.Minutes())
}

func (s *HealthService) ListSleep(ctx context.Context, userID string) ([]*models.SleepLog, error) {
	return s.store.Sleep.FindAll(ctx, userID)
}

// sleepFromDTO проверяет поля и заполняет значения по умолчанию
func (s *HealthService) sleepFromDTO(userID string, dto SleepLogDTO) (*models.SleepLog, error) {
	date := orDefault(dto.Date, dateOf(s.now()))
	if !validDate(date) {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	if !validClock(dto.BedTime) || !validClock(dto.WakeTime) {
		return nil, invalid("bedTime and wakeTime must be HH:MM")
	}
	quality := dto.Quality
	if quality == 0 {
		quality = 3
	}
	if quality < 1 || quality > 5 {
		return nil, invalid("quality must be between 1 and 5")
	}
	duration := dto.Duration
	if duration <= 0 {
		duration = sleepMinutes(dto.BedTime, dto.WakeTime)
	}

	return &models.SleepLog{
		UserID:   userID,
		Date:     date,
		BedTime:  dto.BedTime,
		WakeTime: dto.WakeTime,
		Duration: duration,
		Quality:  quality,
		Notes:    emptyToNil(dto.Notes),
	}, nil
}

// SaveSleep создаёт запись или обновляет запись за ту же дату
func (s *HealthService) SaveSleep(ctx context.Context, userID string, dto SleepLogDTO) (*models.SleepLog, error) {
	log, err := s.sleepFromDTO(userID, dto)
	if err != nil {
		return nil, err
	}
	if err := s.store.Sleep.Upsert(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// UpdateSleep - PUT по id; дата может смениться, но не на дату другой записи
func (s *HealthService) UpdateSleep(ctx context.Context, userID string, dto SleepLogDTO) (*models.SleepLog, error) {
	if dto.ID == "" {
		return nil, invalid("id is required")
	}

	var updated *models.SleepLog
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		existing, err := tx.Sleep.FindByID(ctx, userID, dto.ID)
		if err != nil {
			return notFound(err, "sleep log")
		}
		if dto.Date == "" {
			dto.Date = existing.Date
		}
		log, err := s.sleepFromDTO(userID, dto)
		if err != nil {
			return err
		}

		if log.Date != existing.Date {
			_, err := tx.Sleep.FindByDate(ctx, userID, log.Date)
			if err == nil {
				return fmt.Errorf("sleep log for %s %w", log.Date, ErrConflict)
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		log.ID = existing.ID
		log.CreatedAt = existing.CreatedAt
		if err := tx.Sleep.Update(ctx, log); err != nil {
			return err
		}
		updated = log
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *HealthService) DeleteSleep(ctx context.Context, userID, id string) error {
	return notFound(s.store.Sleep.Delete(ctx, userID, id), "sleep log")
}

// ==================== РЕКОРДЫ ====================

func applyRecord(r *models.PersonalRecord, dto RecordDTO) error {
	if dto.Exercise == "" {
		return invalid("exercise is required")
	}
	if !validDate(dto.Date) {
		return invalid("date must be YYYY-MM-DD")
	}
	r.Exercise = dto.Exercise
	r.Value = dto.Value
	r.Reps = dto.Reps
	r.Unit = orDefault(dto.Unit, "kg")
	r.Date = dto.Date
	return nil
}

func (s *HealthService) ListRecords(ctx context.Context, userID string) ([]*models.PersonalRecord, error) {
	return s.store.Records.FindAll(ctx, userID)
}

func (s *HealthService) CreateRecord(ctx context.Context, userID string, dto RecordDTO) (*models.PersonalRecord, error) {
	if dto.Date == "" {
		dto.Date = dateOf(s.now())
	}
	record := &models.PersonalRecord{UserID: userID}
	if err := applyRecord(record, dto); err != nil {
		return nil, err
	}
	if err := s.store.Records.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *HealthService) UpdateRecord(ctx context.Context, userID string, dto RecordDTO) (*models.PersonalRecord, error) {
	if dto.ID == "" {
		return nil, invalid("id is required")
	}
	record, err := s.store.Records.FindByID(ctx, userID, dto.ID)
	if err != nil {
		return nil, notFound(err, "personal record")
	}
	if err := applyRecord(record, dto); err != nil {
		return nil, err
	}
	if err := s.store.Records.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *HealthService) DeleteRecord(ctx context.Context, userID, id string) error {
	return notFound(s.store.Records.Delete(ctx, userID, id), "personal record")
}

// ==================== ПРОФИЛЬ ====================

// Profile возвращает nil без ошибки, если профиль ещё не заполнен
func (s *HealthService) Profile(ctx context.Context, userID string) (*models.FitnessProfile, error) {
	p, err := s.store.Profiles.Find(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *HealthService) SaveProfile(ctx context.Context, userID string, dto ProfileDTO) (*models.FitnessProfile, error) {
	if dto.Age <= 0 || dto.Weight <= 0 || dto.Height <= 0 {
		return nil, invalid("age, weight and height must be positive")
	}
	switch dto.Gender {
	case "male", "female":
	default:
		return nil, invalid("gender must be male or female")
	}
	goal := orDefault(dto.Goal, models.GoalMaintenance)
	switch goal {
	case models.GoalWeightLoss, models.GoalMaintenance, models.GoalMuscleGain:
	default:
		return nil, invalid("unknown goal %q", goal)
	}
	level := orDefault(dto.ActivityLevel, "sedentary")
	if err := validActivityLevel(level); err != nil {
		return nil, err
	}

	profile := &models.FitnessProfile{
		UserID:        userID,
		Age:           dto.Age,
		Weight:        dto.Weight,
		Height:        dto.Height,
		Gender:        dto.Gender,
		Goal:          goal,
		ActivityLevel: level,
		TargetWeight:  dto.TargetWeight,
	}
	if err := s.store.Profiles.Save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Targets считает дневные нормы по профилю
func (s *HealthService) Targets(ctx context.Context, userID string) (NutritionTargets, error) {
	profile, err := s.store.Profiles.Find(ctx, userID)
	if err != nil {
		return NutritionTargets{}, notFound(err, "fitness profile")
	}
	return EstimateNutrition(profile)
}

// ==================== ПИТАНИЕ ====================

func (s *HealthService) ListNutrition(ctx context.Context, userID string) ([]*models.DailyNutrition, error) {
	return s.store.Nutrition.FindAll(ctx, userID)
}

// Day возвращает итог за дату; если записей нет - пустой день
func (s *HealthService) Day(ctx context.Context, userID, date string) (*models.DailyNutrition, error) {
	date = orDefault(date, dateOf(s.now()))
	if !validDate(date) {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	day, err := s.store.Nutrition.FindByDate(ctx, userID, date)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.DailyNutrition{UserID: userID, Date: date, Meals: []models.Meal{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if day.Meals == nil {
		day.Meals = []models.Meal{}
	}
	return day, nil
}

// recalculate пересчитывает итоги дня из приёмов пищи
func recalculate(day *models.DailyNutrition) {
	day.Calories, day.Protein, day.Carbs, day.Fats = 0, 0, 0, 0
	for _, m := range day.Meals {
		day.Calories += m.Calories
		day.Protein += m.Protein
		day.Carbs += m.Carbs
		day.Fats += m.Fats
	}
	day.Protein = round2(day.Protein)
	day.Carbs = round2(day.Carbs)
	day.Fats = round2(day.Fats)
}

func (s *HealthService) AddMeal(ctx context.Context, userID string, dto MealDTO) (*models.DailyNutrition, error) {
	if dto.Calories < 0 || dto.Protein < 0 || dto.Carbs < 0 || dto.Fats < 0 {
		return nil, invalid("nutrition values must not be negative")
	}
	day, err := s.Day(ctx, userID, dto.Date)
	if err != nil {
		return nil, err
	}

	day.Meals = append(day.Meals, models.Meal{
		ID:       uuid.NewString(),
		Name:     dto.Name,
		Time:     dto.Time,
		Calories: dto.Calories,
		Protein:  dto.Protein,
		Carbs:    dto.Carbs,
		Fats:     dto.Fats,
	})
	recalculate(day)

	if err := s.store.Nutrition.Save(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}

func (s *HealthService) RemoveMeal(ctx context.Context, userID, date, mealID string) (*models.DailyNutrition, error) {
	day, err := s.store.Nutrition.FindByDate(ctx, userID, date)
	if err != nil {
		return nil, notFound(err, "nutrition day")
	}

	meals := make([]models.Meal, 0, len(day.Meals))
	for _, m := range day.Meals {
		if m.ID != mealID {
			meals = append(meals, m)
		}
	}
	if len(meals) == len(day.Meals) {
		return nil, notFound(gorm.ErrRecordNotFound, "meal")
	}
	day.Meals = meals
	recalculate(day)

	if err := s.store.Nutrition.Save(ctx, day); err != nil {
		return nil, err
	}
	return day, nil
}
