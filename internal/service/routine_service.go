package service

import (
	"context"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/repository"
)

// RoutineService обслуживает и утренние, и вечерние рутины; вид задаётся kind
type RoutineService struct {
	repo repository.RoutineRepository
	now  Clock
}

func NewRoutineService(repo repository.RoutineRepository, now Clock) *RoutineService {
	if now == nil {
		now = time.Now
	}
	return &RoutineService{repo: repo, now: now}
}

// ActionStreak - действие и его серии
type ActionStreak struct {
	ActionID string `json:"actionId"`
	Name     string `json:"name"`
	Streak
}

func validKind(kind string) error {
	if kind != models.RoutineMorning && kind != models.RoutineNight {
		return invalid("unknown routine kind %q", kind)
	}
	return nil
}

func applyRoutineAction(a *models.RoutineAction, dto RoutineActionDTO) error {
	if dto.Name == "" {
		return invalid("name is required")
	}
	importance := orDefault(dto.Importance, models.ImportanceMedium)
	switch importance {
	case models.ImportanceLow, models.ImportanceMedium, models.ImportanceHigh:
	default:
		return invalid("unknown importance %q", importance)
	}

	a.Name = dto.Name
	a.Category = emptyToNil(dto.Category)
	a.Importance = importance
	return nil
}

// ListActions - действия вместе с отметками
func (s *RoutineService) ListActions(ctx context.Context, userID, kind string) ([]*models.RoutineAction, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	return s.repo.FindActions(ctx, userID, kind)
}

func (s *RoutineService) CreateAction(ctx context.Context, userID, kind string, dto RoutineActionDTO) (*models.RoutineAction, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}
	action := &models.RoutineAction{UserID: userID, Kind: kind}
	if err := applyRoutineAction(action, dto); err != nil {
		return nil, err
	}
	if err := s.repo.CreateAction(ctx, action); err != nil {
		return nil, err
	}
	action.Logs = []models.RoutineLog{}
	return action, nil
}

func (s *RoutineService) UpdateAction(ctx context.Context, userID, kind string, dto RoutineActionDTO) (*models.RoutineAction, error) {
	if dto.ID == "" {
		return nil, invalid("id is required")
	}
	action, err := s.repo.FindAction(ctx, userID, kind, dto.ID)
	if err != nil {
		return nil, notFound(err, "routine action")
	}
	if err := applyRoutineAction(action, dto); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAction(ctx, action); err != nil {
		return nil, err
	}
	return action, nil
}

func (s *RoutineService) DeleteAction(ctx context.Context, userID, kind, id string) error {
	return notFound(s.repo.DeleteAction(ctx, userID, kind, id), "routine action")
}

// LogCompletion ставит или снимает отметку за дату (upsert по action+date)
func (s *RoutineService) LogCompletion(ctx context.Context, userID, kind string, dto RoutineLogDTO) (*models.RoutineLog, error) {
	if !validDate(dto.Date) {
		return nil, invalid("date must be YYYY-MM-DD")
	}
	if _, err := s.repo.FindAction(ctx, userID, kind, dto.ActionID); err != nil {
		return nil, notFound(err, "routine action")
	}

	log := &models.RoutineLog{ActionID: dto.ActionID, Date: dto.Date, Completed: dto.Completed}
	if err := s.repo.UpsertLog(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// ToggleToday переключает отметку на сегодня
func (s *RoutineService) ToggleToday(ctx context.Context, userID, kind, actionID string) (*models.RoutineLog, error) {
	action, err := s.repo.FindAction(ctx, userID, kind, actionID)
	if err != nil {
		return nil, notFound(err, "routine action")
	}
	today := dateOf(s.now())
	completed := true
	for _, l := range action.Logs {
		if l.Date == today {
			completed = !l.Completed
			break
		}
	}
	return s.LogCompletion(ctx, userID, kind, RoutineLogDTO{ActionID: actionID, Date: today, Completed: completed})
}

func (s *RoutineService) Logs(ctx context.Context, userID, kind, actionID string) ([]*models.RoutineLog, error) {
	if _, err := s.repo.FindAction(ctx, userID, kind, actionID); err != nil {
		return nil, notFound(err, "routine action")
	}
	return s.repo.FindLogs(ctx, actionID)
}

// Streaks считает серии по каждому действию
func (s *RoutineService) Streaks(ctx context.Context, userID, kind string) ([]ActionStreak, error) {
	actions, err := s.ListActions(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]ActionStreak, 0, len(actions))
	for _, a := range actions {
		out = append(out, ActionStreak{
			ActionID: a.ID,
			Name:     a.Name,
			Streak:   CalculateStreak(a.Logs, now),
		})
	}
	return out, nil
}

// Pending - действия, не отмеченные сегодня
func (s *RoutineService) Pending(ctx context.Context, userID, kind string) ([]*models.RoutineAction, error) {
	actions, err := s.ListActions(ctx, userID, kind)
	if err != nil {
		return nil, err
	}
	today := dateOf(s.now())
	var pending []*models.RoutineAction
	for _, a := range actions {
		done := false
		for _, l := range a.Logs {
			if l.Date == today && l.Completed {
				done = true
				break
			}
		}
		if !done {
			pending = append(pending, a)
		}
	}
	return pending, nil
}
