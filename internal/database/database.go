package database

import (
	"fmt"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/config"
	"github.com/alenapavlenkko/lifetracker/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectAttempts = 15

// Open подключается к базе, выбранной в конфиге
func Open(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := gormConfig(cfg.Database.Debug)
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		return NewSQLite(cfg.Database.URL, gormCfg)
	default:
		return NewPostgres(cfg.Database.URL, gormCfg)
	}
}

func gormConfig(debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}
}

// NewPostgres подключается к PostgreSQL с retry логикой
func NewPostgres(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	utils.Log.Info("Attempting to connect to database...")

	for i := 1; i <= connectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
		if err == nil {
			// Проверяем живое подключение
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					utils.Log.Info("Database connected", "attempt", i)
					return db, nil
				}
			} else {
				err = dbErr
			}
		}

		utils.Log.Warn("Database connection attempt failed", "attempt", i, "err", err)

		// Экспоненциальный backoff: 1, 2, 4, 8 секунд, дальше не больше 10
		waitTime := time.Duration(1<<uint(i-1)) * time.Second
		if waitTime > 10*time.Second {
			waitTime = 10 * time.Second
		}
		time.Sleep(waitTime)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
}

// NewSQLite открывает файл SQLite (или ":memory:") для локального запуска и тестов
func NewSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}

	// У in-memory базы каждое соединение своё
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return db, nil
}

// AutoMigrateTables создает таблицы
func AutoMigrateTables(db *gorm.DB, models ...interface{}) error {
	utils.Log.Info("Running database migrations...")

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	utils.Log.Info("Database migrations completed")
	return nil
}
