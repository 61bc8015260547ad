package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/repository"
	"github.com/alenapavlenkko/lifetracker/pkg/utils"
	"gorm.io/gorm"
)

const maxProgramWeeks = 52

type WorkoutService struct {
	store *repository.Store
	now   Clock
}

func NewWorkoutService(store *repository.Store, now Clock) *WorkoutService {
	if now == nil {
		now = time.Now
	}
	return &WorkoutService{store: store, now: now}
}

// ==================== ТРЕНИРОВКИ ====================

func applyWorkout(w *models.WorkoutSession, dto WorkoutDTO) error {
	if !validDate(dto.Date) {
		return invalid("date must be YYYY-MM-DD")
	}
	if dto.Type == "" {
		return invalid("type is required")
	}
	if dto.Duration < 0 {
		return invalid("duration must not be negative")
	}
	w.Date = dto.Date
	w.Type = dto.Type
	w.CustomType = emptyToNil(dto.CustomType)
	w.Duration = dto.Duration
	w.Intensity = orDefault(dto.Intensity, "medium")
	w.Time = emptyToNil(dto.Time)
	w.Notes = emptyToNil(dto.Notes)
	w.Completed = dto.Completed
	w.ProgramID = emptyToNil(dto.ProgramID)
	w.MissionID = emptyToNil(dto.MissionID)
	return nil
}

func (s *WorkoutService) ListSessions(ctx context.Context, userID string) ([]*models.WorkoutSession, error) {
	return s.store.Workouts.FindAll(ctx, userID)
}

func (s *WorkoutService) CreateSession(ctx context.Context, userID string, dto WorkoutDTO) (*models.WorkoutSession, error) {
	if dto.Date == "" {
		dto.Date = dateOf(s.now())
	}
	session := &models.WorkoutSession{UserID: userID}
	if err := applyWorkout(session, dto); err != nil {
		return nil, err
	}
	if err := s.store.Workouts.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *WorkoutService) UpdateSession(ctx context.Context, userID string, dto WorkoutDTO) (*models.WorkoutSession, error) {
	if dto.ID == "" {
		return nil, invalid("id is required")
	}
	session, err := s.store.Workouts.FindByID(ctx, userID, dto.ID)
	if err != nil {
		return nil, notFound(err, "workout")
	}
	if err := applyWorkout(session, dto); err != nil {
		return nil, err
	}
	if err := s.store.Workouts.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *WorkoutService) DeleteSession(ctx context.Context, userID, id string) error {
	return notFound(s.store.Workouts.Delete(ctx, userID, id), "workout")
}

// ==================== ПРОГРАММЫ ====================

func applyProgram(p *models.WorkoutProgram, dto ProgramDTO) error {
	if dto.Name == "" {
		return invalid("name is required")
	}
	sessions := make([]models.WorkoutProgramSession, 0, len(dto.Sessions))
	for _, sd := range dto.Sessions {
		if sd.DayOfWeek < 0 || sd.DayOfWeek > 6 {
			return invalid("dayOfWeek must be between 0 and 6")
		}
		if sd.Type == "" {
			return invalid("session type is required")
		}
		if sd.Time != nil && *sd.Time != "" && !validClock(*sd.Time) {
			return invalid("session time must be HH:MM")
		}
		sessions = append(sessions, models.WorkoutProgramSession{
			ProgramID:  p.ID,
			DayOfWeek:  sd.DayOfWeek,
			Type:       sd.Type,
			CustomType: emptyToNil(sd.CustomType),
			Duration:   sd.Duration,
			Intensity:  orDefault(sd.Intensity, "medium"),
			Time:       emptyToNil(sd.Time),
		})
	}

	p.Name = dto.Name
	p.Description = emptyToNil(dto.Description)
	p.Sessions = sessions
	p.Active = dto.Active == nil || *dto.Active
	p.AutoCreateMissions = dto.AutoCreateMissions
	return nil
}

func (s *WorkoutService) ListPrograms(ctx context.Context, userID string) ([]*models.WorkoutProgram, error) {
	return s.store.Programs.FindAll(ctx, userID)
}

func (s *WorkoutService) CreateProgram(ctx context.Context, userID string, dto ProgramDTO) (*models.WorkoutProgram, error) {
	program := &models.WorkoutProgram{UserID: userID}
	if err := applyProgram(program, dto); err != nil {
		return nil, err
	}
	if err := s.store.Programs.Create(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *WorkoutService) UpdateProgram(ctx context.Context, userID string, dto ProgramDTO) (*models.WorkoutProgram, error) {
	if dto.ID == "" {
		return nil, invalid("id is required")
	}

	var program *models.WorkoutProgram
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		program, err = tx.Programs.FindByID(ctx, userID, dto.ID)
		if err != nil {
			return notFound(err, "workout program")
		}
		if err := applyProgram(program, dto); err != nil {
			return err
		}
		if err := tx.Programs.Update(ctx, program); err != nil {
			return err
		}
		return tx.Programs.ReplaceSessions(ctx, program)
	})
	if err != nil {
		return nil, err
	}
	return program, nil
}

func (s *WorkoutService) DeleteProgram(ctx context.Context, userID, id string) error {
	return notFound(s.store.Programs.DeleteWithSessions(ctx, userID, id), "workout program")
}

// ApplyResult - что создал ApplyProgram
type ApplyResult struct {
	Created  []*models.WorkoutSession `json:"created"`
	Skipped  int                      `json:"skipped"`
	Missions []*models.Mission        `json:"missions"`
}

func missionTitle(program *models.WorkoutProgram, session *models.WorkoutSession) string {
	return fmt.Sprintf("%s: %s", program.Name, session.Label())
}

// ApplyProgram создаёт тренировки по шаблону программы на weeks недель вперёд.
// Повторный вызов на тот же диапазон ничего не дублирует: даты, на которые у программы
// уже есть тренировка, пропускаются.
func (s *WorkoutService) ApplyProgram(ctx context.Context, userID string, dto ApplyProgramDTO) (*ApplyResult, error) {
	startDate := orDefault(dto.StartDate, dateOf(s.now()))
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, invalid("startDate must be YYYY-MM-DD")
	}
	weeks := dto.Weeks
	if weeks == 0 {
		weeks = 4
	}
	if weeks < 1 || weeks > maxProgramWeeks {
		return nil, invalid("weeks must be between 1 and %d", maxProgramWeeks)
	}

	result := &ApplyResult{Created: []*models.WorkoutSession{}, Missions: []*models.Mission{}}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		program, err := tx.Programs.FindByID(ctx, userID, dto.ProgramID)
		if err != nil {
			return notFound(err, "workout program")
		}

		existing, err := tx.Workouts.FindByProgram(ctx, userID, program.ID)
		if err != nil {
			return err
		}
		taken := make(map[string]bool, len(existing))
		for _, w := range existing {
			taken[w.Date] = true
		}

		for _, candidate := range ExpandProgram(program, start, weeks) {
			if taken[candidate.Date] {
				result.Skipped++
				continue
			}
			result.Created = append(result.Created, candidate)
		}
		if err := tx.Workouts.CreateBatch(ctx, result.Created); err != nil {
			return err
		}

		if !program.AutoCreateMissions || !program.Active {
			return nil
		}
		for _, session := range result.Created {
			mission, created, err := s.ensureMission(ctx, tx, program, session)
			if err != nil {
				return err
			}
			if created {
				result.Missions = append(result.Missions, mission)
			}
			missionID := mission.ID
			session.MissionID = &missionID
			if err := tx.Workouts.Update(ctx, session); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.Log.Info("Workout program applied",
		"user", userID, "program", dto.ProgramID,
		"created", len(result.Created), "skipped", result.Skipped, "missions", len(result.Missions))
	return result, nil
}

// ensureMission находит миссию дня для тренировки или создаёт её
func (s *WorkoutService) ensureMission(ctx context.Context, tx *repository.Store, program *models.WorkoutProgram, session *models.WorkoutSession) (*models.Mission, bool, error) {
	title := missionTitle(program, session)
	mission, err := tx.Missions.FindByTitleAndDate(ctx, program.UserID, title, session.Date)
	if err == nil {
		return mission, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	date := session.Date
	mission = &models.Mission{
		UserID:    program.UserID,
		Title:     title,
		TimeFrame: "day",
		Priority:  models.PriorityMedium,
		Status:    models.MissionPending,
		DueDate:   &date,
		Tasks:     []models.Task{},
	}
	if err := tx.Missions.Create(ctx, mission); err != nil {
		return nil, false, err
	}
	return mission, true, nil
}
