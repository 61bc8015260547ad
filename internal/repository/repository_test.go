package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/alenapavlenkko/lifetracker/internal/database"
	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB использует Postgres из TEST_DATABASE_URL, иначе SQLite в памяти.
// Каждый тест работает под своим user_id, поэтому чистить таблицы не нужно.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var (
		db  *gorm.DB
		err error
	)
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		db, err = database.NewPostgres(dsn, cfg)
	} else {
		db, err = database.NewSQLite(":memory:", cfg)
	}
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateTables(db, models.All()...))
	return db
}

func TestOwnedRepoScopesByUser(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	alice, bob := uuid.NewString(), uuid.NewString()

	note := &models.Note{UserID: alice, Title: "groceries", Content: "<p>milk</p>"}
	require.NoError(t, store.Notes.Create(ctx, note))
	require.NoError(t, store.Notes.Create(ctx, &models.Note{UserID: bob, Title: "bob's"}))
	assert.NotEmpty(t, note.ID)

	list, err := store.Notes.FindAll(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "groceries", list[0].Title)

	_, err = store.Notes.FindByID(ctx, bob, note.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = store.Notes.Delete(ctx, bob, note.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, store.Notes.Delete(ctx, alice, note.ID))
	list, err = store.Notes.FindAll(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRoutineLogUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	userID := uuid.NewString()

	action := &models.RoutineAction{UserID: userID, Kind: models.RoutineMorning, Name: "Stretch", Importance: models.ImportanceMedium}
	require.NoError(t, store.Routines.CreateAction(ctx, action))

	first := &models.RoutineLog{ActionID: action.ID, Date: "2024-03-10", Completed: true}
	require.NoError(t, store.Routines.UpsertLog(ctx, first))

	second := &models.RoutineLog{ActionID: action.ID, Date: "2024-03-10", Completed: false}
	require.NoError(t, store.Routines.UpsertLog(ctx, second))

	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.Completed)

	logs, err := store.Routines.FindLogs(ctx, action.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Completed)

	found, err := store.Routines.FindAction(ctx, userID, models.RoutineMorning, action.ID)
	require.NoError(t, err)
	assert.Len(t, found.Logs, 1)

	// Вечерняя рутина не видит утреннее действие
	_, err = store.Routines.FindAction(ctx, userID, models.RoutineNight, action.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, store.Routines.DeleteAction(ctx, userID, models.RoutineMorning, action.ID))
	logs, err = store.Routines.FindLogs(ctx, action.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestSleepUpsertKeepsOneRowPerDate(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	userID := uuid.NewString()

	require.NoError(t, store.Sleep.Upsert(ctx, &models.SleepLog{
		UserID: userID, Date: "2024-03-10", BedTime: "23:00", WakeTime: "07:00", Duration: 480, Quality: 3,
	}))
	updated := &models.SleepLog{
		UserID: userID, Date: "2024-03-10", BedTime: "00:30", WakeTime: "07:00", Duration: 390, Quality: 2,
	}
	require.NoError(t, store.Sleep.Upsert(ctx, updated))

	logs, err := store.Sleep.FindAll(ctx, userID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "00:30", logs[0].BedTime)
	assert.Equal(t, 390, logs[0].Duration)
	assert.Equal(t, logs[0].ID, updated.ID)
}

func TestMissionDeleteWithTasks(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	userID := uuid.NewString()

	mission := &models.Mission{
		UserID: userID, Title: "Ship v1", TimeFrame: "week",
		Priority: models.PriorityHigh, Status: models.MissionPending,
	}
	require.NoError(t, store.Missions.Create(ctx, mission))
	mission.Tasks = []models.Task{
		{UserID: userID, Title: "write docs", Priority: models.PriorityLow, Status: models.TaskTodo, MissionID: &mission.ID},
		{UserID: userID, Title: "tag release", Priority: models.PriorityLow, Status: models.TaskTodo, MissionID: &mission.ID},
	}
	require.NoError(t, store.Missions.ReplaceTasks(ctx, mission))

	found, err := store.Missions.FindByID(ctx, userID, mission.ID)
	require.NoError(t, err)
	assert.Len(t, found.Tasks, 2)

	require.NoError(t, store.Missions.DeleteWithTasks(ctx, userID, mission.ID))

	tasks, err := store.Tasks.FindAll(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	err = store.Missions.DeleteWithTasks(ctx, userID, mission.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDashboardAbsentVersusEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	userID := uuid.NewString()

	_, err := store.Dashboard.Find(ctx, userID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, store.Dashboard.Save(ctx, &models.DashboardLayout{UserID: userID, Widgets: []models.Widget{}}))

	layout, err := store.Dashboard.Find(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, layout.Widgets)
}

func TestStoreTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))
	userID := uuid.NewString()
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx *Store) error {
		if err := tx.Notes.Create(ctx, &models.Note{UserID: userID, Title: "draft"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	notes, err := store.Notes.FindAll(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
