package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store собирает все репозитории поверх одного *gorm.DB (или транзакции)
type Store struct {
	db *gorm.DB

	Users     UserRepository
	Settings  SettingsRepository
	Routines  RoutineRepository
	Tasks     TaskRepository
	Missions  MissionRepository
	Projects  ProjectRepository
	Calendar  CalendarRepository
	Notes     NoteRepository
	Sleep     SleepRepository
	Programs  ProgramRepository
	Workouts  WorkoutRepository
	Records   RecordRepository
	Profiles  ProfileRepository
	Nutrition NutritionRepository
	Dashboard DashboardRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Users:     NewUserRepo(db),
		Settings:  NewSettingsRepo(db),
		Routines:  NewRoutineRepo(db),
		Tasks:     NewTaskRepo(db),
		Missions:  NewMissionRepo(db),
		Projects:  NewProjectRepo(db),
		Calendar:  NewCalendarRepo(db),
		Notes:     NewNoteRepo(db),
		Sleep:     NewSleepRepo(db),
		Programs:  NewProgramRepo(db),
		Workouts:  NewWorkoutRepo(db),
		Records:   NewRecordRepo(db),
		Profiles:  NewProfileRepo(db),
		Nutrition: NewNutritionRepo(db),
		Dashboard: NewDashboardRepo(db),
	}
}

// Transaction выполняет fn в одной транзакции; ошибка из fn откатывает всё
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
