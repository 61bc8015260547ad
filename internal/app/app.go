package app

import (
	"fmt"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/config"
	"github.com/alenapavlenkko/lifetracker/internal/database"
	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/repository"
	"github.com/alenapavlenkko/lifetracker/internal/service"
	"github.com/alenapavlenkko/lifetracker/pkg/utils"
	"gorm.io/gorm"
)

// Application - общая сборка для сервера и бота
type Application struct {
	DB    *gorm.DB
	Store *repository.Store

	Accounts  *service.AccountService
	Routines  *service.RoutineService
	Planning  *service.PlanningService
	Health    *service.HealthService
	Workouts  *service.WorkoutService
	Dashboard *service.DashboardService
}

// New подключается к базе, выполняет миграции и собирает сервисы
func New(cfg *config.Config) (*Application, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	utils.Log.Info("Database connected", "driver", cfg.Database.Driver)

	// Выполнение миграций для ВСЕХ моделей
	if err := database.AutoMigrateTables(db, models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return FromDB(db, time.Now), nil
}

// FromDB собирает сервисы поверх готового подключения
func FromDB(db *gorm.DB, now service.Clock) *Application {
	store := repository.NewStore(db)
	return &Application{
		DB:        db,
		Store:     store,
		Accounts:  service.NewAccountService(store),
		Routines:  service.NewRoutineService(store.Routines, now),
		Planning:  service.NewPlanningService(store, now),
		Health:    service.NewHealthService(store, now),
		Workouts:  service.NewWorkoutService(store, now),
		Dashboard: service.NewDashboardService(store.Dashboard),
	}
}

func (a *Application) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
