package service

import (
	"testing"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/database"
	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow - среда, 13 марта 2024
var fixedNow = time.Date(2024, time.March, 13, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	db, err := database.NewSQLite(":memory:", &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateTables(db, models.All()...))
	return repository.NewStore(db)
}

func newUserID() string { return uuid.NewString() }

func strPtr(s string) *string { return &s }
