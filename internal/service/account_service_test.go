package service

import (
	"context"
	"testing"

	"github.com/alenapavlenkko/lifetracker/internal/dashboard"
	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(newTestStore(t))

	user, err := svc.Register(ctx, RegisterDTO{Email: " Ann@Example.com ", Password: "s3cret-pass", Name: "Ann"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	_, err = svc.Register(ctx, RegisterDTO{Email: "ann@example.com", Password: "another-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	found, err := svc.Authenticate(ctx, LoginDTO{Email: "ANN@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = svc.Authenticate(ctx, LoginDTO{Email: "ann@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, LoginDTO{Email: "nobody@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	settings, err := svc.Settings(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "system", settings.Theme)
}

func TestLinkTelegram(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(newTestStore(t))

	user, err := svc.Register(ctx, RegisterDTO{Email: "tg@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.LinkTelegram(ctx, LoginDTO{Email: "tg@example.com", Password: "bad"}, 42)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.LinkTelegram(ctx, LoginDTO{Email: "tg@example.com", Password: "s3cret-pass"}, 42)
	require.NoError(t, err)

	linked, err := svc.UserByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, user.ID, linked.ID)

	users, err := svc.LinkedUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = svc.UserByTelegramID(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSettingsPersistsFalseFlags(t *testing.T) {
	ctx := context.Background()
	svc := NewAccountService(newTestStore(t))
	userID := newUserID()

	_, err := svc.UpdateSettings(ctx, userID, SettingsDTO{Theme: "dark", DayStartHour: 7, DayEndHour: 23})
	require.NoError(t, err)

	settings, err := svc.Settings(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "dark", settings.Theme)
	assert.Equal(t, 7, settings.DayStartHour)
	assert.False(t, settings.ShowQuotes)
	assert.False(t, settings.ShowWeekNumbers)

	_, err = svc.UpdateSettings(ctx, userID, SettingsDTO{Theme: "neon"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.UpdateSettings(ctx, userID, SettingsDTO{DayStartHour: 25})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	accounts := NewAccountService(store)
	routines := NewRoutineService(store.Routines, clock)
	planning := NewPlanningService(store, clock)
	health := NewHealthService(store, clock)
	workouts := NewWorkoutService(store, clock)
	dash := NewDashboardService(store.Dashboard)

	user, err := accounts.Register(ctx, RegisterDTO{Email: "reset@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	uid := user.ID
	other := newUserID()

	// Наполняем все разделы
	action, err := routines.CreateAction(ctx, uid, models.RoutineMorning, RoutineActionDTO{Name: "Water"})
	require.NoError(t, err)
	_, err = routines.ToggleToday(ctx, uid, models.RoutineMorning, action.ID)
	require.NoError(t, err)
	_, err = routines.CreateAction(ctx, uid, models.RoutineNight, RoutineActionDTO{Name: "Read"})
	require.NoError(t, err)
	_, err = planning.CreateMission(ctx, uid, MissionDTO{Title: "Q1", TimeFrame: "month", Tasks: []TaskDTO{{Title: "plan"}}})
	require.NoError(t, err)
	_, err = planning.CreateProject(ctx, uid, ProjectDTO{Title: "House", Tasks: []TaskDTO{{Title: "paint"}}})
	require.NoError(t, err)
	_, err = planning.CreateTask(ctx, uid, TaskDTO{Title: "loose"})
	require.NoError(t, err)
	_, err = planning.CreateEvent(ctx, uid, CalendarEventDTO{Title: "Dentist", Date: "2024-03-20"})
	require.NoError(t, err)
	_, err = planning.CreateNote(ctx, uid, NoteDTO{Title: "n"})
	require.NoError(t, err)
	_, err = health.SaveSleep(ctx, uid, SleepLogDTO{BedTime: "23:00", WakeTime: "07:00"})
	require.NoError(t, err)
	_, err = health.CreateRecord(ctx, uid, RecordDTO{Exercise: "Squat", Value: 100, Unit: "kg"})
	require.NoError(t, err)
	_, err = health.SaveProfile(ctx, uid, ProfileDTO{Age: 30, Weight: 80, Height: 180, Gender: "male"})
	require.NoError(t, err)
	_, err = health.AddMeal(ctx, uid, MealDTO{Name: "Oats", Calories: 300})
	require.NoError(t, err)
	program, err := workouts.CreateProgram(ctx, uid, ProgramDTO{
		Name: "P", AutoCreateMissions: true, Sessions: []ProgramSessionDTO{{DayOfWeek: 1, Type: "run"}},
	})
	require.NoError(t, err)
	_, err = workouts.ApplyProgram(ctx, uid, ApplyProgramDTO{ProgramID: program.ID, Weeks: 2})
	require.NoError(t, err)
	_, err = dash.ReplaceWidgets(ctx, uid, dashboard.Defaults())
	require.NoError(t, err)
	_, err = accounts.UpdateSettings(ctx, uid, SettingsDTO{Theme: "dark"})
	require.NoError(t, err)

	// Данные другого пользователя не трогаем
	_, err = planning.CreateNote(ctx, other, NoteDTO{Title: "keep me"})
	require.NoError(t, err)

	require.NoError(t, accounts.Reset(ctx, uid))

	assertEmpty := func(n int, err error, what string) {
		t.Helper()
		require.NoError(t, err, what)
		assert.Zero(t, n, what)
	}
	morning, err := routines.ListActions(ctx, uid, models.RoutineMorning)
	assertEmpty(len(morning), err, "morning routines")
	night, err := routines.ListActions(ctx, uid, models.RoutineNight)
	assertEmpty(len(night), err, "night routines")
	tasks, err := planning.ListTasks(ctx, uid)
	assertEmpty(len(tasks), err, "tasks")
	missions, err := planning.ListMissions(ctx, uid)
	assertEmpty(len(missions), err, "missions")
	projects, err := planning.ListProjects(ctx, uid)
	assertEmpty(len(projects), err, "projects")
	events, err := planning.ListEvents(ctx, uid)
	assertEmpty(len(events), err, "calendar")
	notes, err := planning.ListNotes(ctx, uid)
	assertEmpty(len(notes), err, "notes")
	sleep, err := health.ListSleep(ctx, uid)
	assertEmpty(len(sleep), err, "sleep")
	records, err := health.ListRecords(ctx, uid)
	assertEmpty(len(records), err, "records")
	days, err := health.ListNutrition(ctx, uid)
	assertEmpty(len(days), err, "nutrition")
	sessions, err := workouts.ListSessions(ctx, uid)
	assertEmpty(len(sessions), err, "workouts")
	programs, err := workouts.ListPrograms(ctx, uid)
	assertEmpty(len(programs), err, "programs")

	profile, err := health.Profile(ctx, uid)
	require.NoError(t, err)
	assert.Nil(t, profile)

	settings, err := accounts.Settings(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "system", settings.Theme)
	assert.Equal(t, 6, settings.DayStartHour)
	assert.Equal(t, 22, settings.DayEndHour)
	assert.True(t, settings.ShowQuotes)
	assert.True(t, settings.ShowStreaks)
	assert.True(t, settings.ShowCompletedTasks)
	assert.True(t, settings.ShowNightRoutine)
	assert.True(t, settings.ShowWeekNumbers)

	// Раскладка очищена, шаблон не возвращается
	widgets, err := dash.Widgets(ctx, uid)
	require.NoError(t, err)
	assert.NotNil(t, widgets)
	assert.Empty(t, widgets)

	kept, err := planning.ListNotes(ctx, other)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
