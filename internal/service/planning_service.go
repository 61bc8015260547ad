package service

import (
	"context"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/repository"
)

// PlanningService - задачи, миссии, проекты, календарь и заметки
type PlanningService struct {
	store *repository.Store
	now   Clock
}

func NewPlanningService(store *repository.Store, now Clock) *PlanningService {
	if now == nil {
		now = time.Now
	}
	return &PlanningService{store: store, now: now}
}

// ==================== ЗАДАЧИ ====================

func (s *PlanningService) applyTask(t *models.Task, dto TaskDTO) error {
	if dto.Title == "" {
		return invalid("title is required")
	}
	priority := orDefault(dto.Priority, models.PriorityMedium)
	if !models.ValidPriority(priority) {
		return invalid("unknown priority %q", priority)
	}
	status := orDefault(dto.Status, models.TaskTodo)
	switch status {
	case models.TaskTodo, models.TaskInProgress, models.TaskDone:
	default:
		return invalid("unknown task status %q", status)
	}
	if !validOptionalDate(dto.DueDate) {
		return invalid("dueDate must be YYYY-MM-DD")
	}

	if status == models.TaskDone && t.CompletedAt == nil {
		now := s.now()
		t.CompletedAt = &now
	} else if status != models.TaskDone {
		t.CompletedAt = nil
	}

	t.Title = dto.Title
	t.Description = emptyToNil(dto.Description)
	t.Priority = priority
	t.Status = status
	t.DueDate = emptyToNil(dto.DueDate)
	t.MissionID = emptyToNil(dto.MissionID)
	t.ProjectID = emptyToNil(dto.ProjectID)
	return nil
}

// checkTaskLinks проверяет, что миссия и проект задачи принадлежат пользователю
func (s *PlanningService) checkTaskLinks(ctx context.Context, t *models.Task) error {
	if t.MissionID != nil {
		if _, err := s.store.Missions.FindByID(ctx, t.UserID, *t.MissionID); err != nil {
			return notFound(err, "mission")
		}
	}
	if t.ProjectID != nil {
		if _, err := s.store.Projects.FindByID(ctx, t.UserID, *t.ProjectID); err != nil {
			return notFound(err, "project")
		}
	}
	return nil
}

func (s *PlanningService) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	return s.store.Tasks.FindAll(ctx, userID)
}

func (s *PlanningService) CreateTask(ctx context.Context, userID string, dto TaskDTO) (*models.Task, error) {
	task := &models.Task{UserID: userID}
	if err := s.applyTask(task, dto); err != nil {
		return nil, err
	}
	if err := s.checkTaskLinks(ctx, task); err != nil {
		return nil, err
	}
	if err := s.store.Tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *PlanningService) UpdateTask(ctx context.Context, userID string, dto TaskDTO) (*models.Task, error) {
	if dto.ID == "" {
		return nil, invalid("id is required")
	}
	task, err := s.store.Tasks.FindByID(ctx, userID, dto.ID)
	if err != nil {
		return nil, notFound(err, "task")
	}
	if err := s.applyTask(task, dto); err != nil {
		return nil, err
	}
	if err := s.checkTaskLinks(ctx, task); err != nil {
		return nil, err
	}
	if err := s.store.Tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *PlanningService) DeleteTask(ctx context.Context, userID, id string) error {
	return notFound(s.store.Tasks.Delete(ctx, userID, id), "task")
}

// buildTasks собирает вложенные задачи миссии или проекта
func (s *PlanningService) buildTasks(userID string, dtos []TaskDTO, link func(*models.Task)) ([]models.Task, error) {
	tasks := make([]models.Task, 0, len(dtos))
	for _, dto := range dtos {
		t := models.Task{UserID: userID}
		if err := s.applyTask(&t, dto); err != nil {
			return nil, err
		}
		link(&t)
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// ==================== МИССИИ ====================

func (s *PlanningService) applyMission(m *models.Mission, dto MissionDTO) error {
	if dto.Title == "" {
		return invalid("title is required")
	}
	timeFrame := orDefault(dto.TimeFrame, "day")
	switch timeFrame {
	case "day", "week", "month", "year":
	default:
		return invalid("unknown time frame %q", timeFrame)
	}
	priority := orDefault(dto.Priority, models.PriorityMedium)
	if !models.ValidPriority(priority) {
		return invalid("unknown priority %q", priority)
	}
	status := orDefault(dto.Status, models.MissionPending)
	switch status {
	case models.MissionPending, models.MissionInProgress, models.MissionCompleted:
	default:
		return invalid("unknown mission status %q", status)
	}
	if !validOptionalDate(dto.DueDate) {
		return invalid("dueDate must be YYYY-MM-DD")
	}

	if status == models.MissionCompleted && m.CompletedAt == nil {
		now := s.now()
		m.CompletedAt = &now
	} else if status != models.MissionCompleted {
		m.CompletedAt = nil
	}

	m.Title = dto.Title
	m.Description = emptyToNil(dto.Description)
	m.TimeFrame = timeFrame
	m.Priority = priority
	m.Status = status
	m.DueDate = emptyToNil(dto.DueDate)
	return nil
}

func (s *PlanningService) ListMissions(ctx context.Context, userID string) ([]*models.Mission, error) {
	return s.store.Missions.FindAll(ctx, userID)
}

func (s *PlanningService) CreateMission(ctx context.Context, userID string, dto MissionDTO) (*models.Mission, error) {
	mission := &models.Mission{UserID: userID}
	if err := s.applyMission(mission, dto); err != nil {
		return nil, err
	}
	tasks, err := s.buildTasks(userID, dto.Tasks, func(t *models.Task) { t.ProjectID = nil })
	if err != nil {
		return nil, err
	}
	mission.Tasks = tasks

	// Задачи создаются вместе с миссией, mission_id проставит GORM
	if err := s.store.Missions.Create(ctx, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

func (s *PlanningService) UpdateMission(ctx context.Context, userID string, dto MissionDTO) (*models.Mission, error) {
	if dto.ID == "" {
		return nil, invalid("id is required")
	}

	var mission *models.Mission
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		mission, err = tx.Missions.FindByID(ctx, userID, dto.ID)
		if err != nil {
			return notFound(err, "mission")
		}
		if err := s.applyMission(mission, dto); err != nil {
			return err
		}
		if err := tx.Missions.Update(ctx, mission); err != nil {
			return err
		}
		if dto.Tasks == nil {
			return nil
		}

		missionID := mission.ID
		tasks, err := s.buildTasks(userID, dto.Tasks, func(t *models.Task) { t.MissionID = &missionID })
		if err != nil {
			return err
		}
		mission.Tasks = tasks
		return tx.Missions.ReplaceTasks(ctx, mission)
	})
	if err != nil {
		return nil, err
	}
	return mission, nil
}

func (s *PlanningService) DeleteMission(ctx context.Context, userID, id string) error {
	return notFound(s.store.Missions.DeleteWithTasks(ctx, userID, id), "mission")
}

// ==================== ПРОЕКТЫ ====================

func (s *PlanningService) applyProject(p *models.Project, dto ProjectDTO) error {
	if dto.Title == "" {
		return invalid("title is required")
	}
	if !validOptionalDate(dto.Deadline) {
		return invalid("deadline must be YYYY-MM-DD")
	}
	objectives := dto.Objectives
	if objectives == nil {
		objectives = []string{}
	}

	p.Title = dto.Title
	p.Description = emptyToNil(dto.Description)
	p.Objectives = objectives
	p.Deadline = emptyToNil(dto.Deadline)
	p.CompletedAt = dto.CompletedAt
	return nil
}

func (s *PlanningService) ListProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	return s.store.Projects.FindAll(ctx, userID)
}

func (s *PlanningService) CreateProject(ctx context.Context, userID string, dto ProjectDTO) (*models.Project, error) {
	project := &models.Project{UserID: userID}
	if err := s.applyProject(project, dto); err != nil {
		return nil, err
	}
	tasks, err := s.buildTasks(userID, dto.Tasks, func(t *models.Task) { t.MissionID = nil })
	if err != nil {
		return nil, err
	}
	project.Tasks = tasks

	if err := s.store.Projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *PlanningService) UpdateProject(ctx context.Context, userID string, dto ProjectDTO) (*models.Project, error) {
	if dto.ID == "" {
		return nil, invalid("id is required")
	}

	var project *models.Project
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		project, err = tx.Projects.FindByID(ctx, userID, dto.ID)
		if err != nil {
			return notFound(err, "project")
		}
		if err := s.applyProject(project, dto); err != nil {
			return err
		}
		if err := tx.Projects.Update(ctx, project); err != nil {
			return err
		}
		if dto.Tasks == nil {
			return nil
		}

		projectID := project.ID
		tasks, err := s.buildTasks(userID, dto.Tasks, func(t *models.Task) { t.ProjectID = &projectID })
		if err != nil {
			return err
		}
		project.Tasks = tasks
		return tx.Projects.ReplaceTasks(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *PlanningService) DeleteProject(ctx context.Context, userID, id string) error {
	return notFound(s.store.Projects.DeleteWithTasks(ctx, userID, id), "project")
}

// ==================== КАЛЕНДАРЬ ====================

func applyEvent(e *models.CalendarEvent, dto CalendarEventDTO) error {
	if dto.Title == "" {
		return invalid("title is required")
	}
	if !validDate(dto.Date) {
		return invalid("date must be YYYY-MM-DD")
	}
	for _, t := range []*string{dto.StartTime, dto.EndTime} {
		if t != nil && *t != "" && !validClock(*t) {
			return invalid("times must be HH:MM")
		}
	}
	priority := orDefault(dto.Priority, models.PriorityMedium)
	if !models.ValidPriority(priority) {
		return invalid("unknown priority %q", priority)
	}
	pattern := emptyToNil(dto.RecurrencePattern)
	if pattern != nil {
		switch *pattern {
		case "daily", "weekly", "monthly", "yearly":
		default:
			return invalid("unknown recurrence pattern %q", *pattern)
		}
	}
	if !dto.IsRecurring {
		pattern = nil
	}

	e.Title = dto.Title
	e.Description = emptyToNil(dto.Description)
	e.Date = dto.Date
	e.StartTime = emptyToNil(dto.StartTime)
	e.EndTime = emptyToNil(dto.EndTime)
	e.Priority = priority
	e.IsRecurring = dto.IsRecurring
	e.RecurrencePattern = pattern
	e.MissionID = emptyToNil(dto.MissionID)
	e.ProjectID = emptyToNil(dto.ProjectID)
	e.Completed = dto.Completed
	return nil
}

func (s *PlanningService) ListEvents(ctx context.Context, userID string) ([]*models.CalendarEvent, error) {
	return s.store.Calendar.FindAll(ctx, userID)
}

func (s *PlanningService) CreateEvent(ctx context.Context, userID string, dto CalendarEventDTO) (*models.CalendarEvent, error) {
	event := &models.CalendarEvent{UserID: userID}
	if err := applyEvent(event, dto); err != nil {
		return nil, err
	}
	if err := s.store.Calendar.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *PlanningService) UpdateEvent(ctx context.Context, userID string, dto CalendarEventDTO) (*models.CalendarEvent, error) {
	if dto.ID == "" {
		return nil, invalid("id is required")
	}
	event, err := s.store.Calendar.FindByID(ctx, userID, dto.ID)
	if err != nil {
		return nil, notFound(err, "event")
	}
	if err := applyEvent(event, dto); err != nil {
		return nil, err
	}
	if err := s.store.Calendar.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *PlanningService) DeleteEvent(ctx context.Context, userID, id string) error {
	return notFound(s.store.Calendar.Delete(ctx, userID, id), "event")
}

// ==================== ЗАМЕТКИ ====================

func applyNote(n *models.Note, dto NoteDTO) {
	n.Title = dto.Title
	n.Content = dto.Content
	n.Color = orDefault(dto.Color, "default")
	n.Pinned = dto.Pinned
}

func (s *PlanningService) ListNotes(ctx context.Context, userID string) ([]*models.Note, error) {
	return s.store.Notes.FindAll(ctx, userID)
}

func (s *PlanningService) CreateNote(ctx context.Context, userID string, dto NoteDTO) (*models.Note, error) {
	note := &models.Note{UserID: userID}
	applyNote(note, dto)
	if err := s.store.Notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *PlanningService) UpdateNote(ctx context.Context, userID string, dto NoteDTO) (*models.Note, error) {
	if dto.ID == "" {
		return nil, invalid("id is required")
	}
	note, err := s.store.Notes.FindByID(ctx, userID, dto.ID)
	if err != nil {
		return nil, notFound(err, "note")
	}
	applyNote(note, dto)
	if err := s.store.Notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *PlanningService) DeleteNote(ctx context.Context, userID, id string) error {
	return notFound(s.store.Notes.Delete(ctx, userID, id), "note")
}
