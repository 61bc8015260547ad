package service

import (
	"context"
	"testing"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandProgramLandsOnWeekday(t *testing.T) {
	program := &models.WorkoutProgram{
		Sessions: []models.WorkoutProgramSession{{DayOfWeek: int(time.Monday), Type: "strength", Duration: 45}},
	}
	program.ID = "prog-1"

	// 2024-03-13 - среда
	sessions := ExpandProgram(program, fixedNow, 2)

	require.Len(t, sessions, 2)
	assert.Equal(t, "2024-03-18", sessions[0].Date)
	assert.Equal(t, "2024-03-25", sessions[1].Date)
	for _, s := range sessions {
		require.NotNil(t, s.ProgramID)
		assert.Equal(t, "prog-1", *s.ProgramID)
		assert.Equal(t, "strength", s.Type)
	}
}

func TestExpandProgramSameDayStart(t *testing.T) {
	program := &models.WorkoutProgram{
		Sessions: []models.WorkoutProgramSession{
			{DayOfWeek: int(time.Wednesday), Type: "run"},
			{DayOfWeek: int(time.Sunday), Type: "yoga"},
		},
	}

	sessions := ExpandProgram(program, fixedNow, 1)

	require.Len(t, sessions, 2)
	assert.Equal(t, "2024-03-13", sessions[0].Date)
	assert.Equal(t, "2024-03-17", sessions[1].Date)
}

func TestApplyProgramIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewWorkoutService(store, clock)
	userID := newUserID()

	program, err := svc.CreateProgram(ctx, userID, ProgramDTO{
		Name:     "Base",
		Sessions: []ProgramSessionDTO{{DayOfWeek: int(time.Monday), Type: "strength", Duration: 60}},
	})
	require.NoError(t, err)
	assert.True(t, program.Active)

	dto := ApplyProgramDTO{ProgramID: program.ID, StartDate: "2024-03-13", Weeks: 2}
	first, err := svc.ApplyProgram(ctx, userID, dto)
	require.NoError(t, err)
	assert.Len(t, first.Created, 2)
	assert.Zero(t, first.Skipped)
	assert.Empty(t, first.Missions)

	second, err := svc.ApplyProgram(ctx, userID, dto)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	assert.Equal(t, 2, second.Skipped)

	sessions, err := svc.ListSessions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "2024-03-25", sessions[0].Date)
	assert.Equal(t, "2024-03-18", sessions[1].Date)
}

func TestApplyProgramCreatesMissions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewWorkoutService(store, clock)
	userID := newUserID()

	program, err := svc.CreateProgram(ctx, userID, ProgramDTO{
		Name:               "Run club",
		AutoCreateMissions: true,
		Sessions: []ProgramSessionDTO{
			{DayOfWeek: int(time.Friday), Type: "custom", CustomType: strPtr("Intervals"), Duration: 30},
		},
	})
	require.NoError(t, err)

	result, err := svc.ApplyProgram(ctx, userID, ApplyProgramDTO{ProgramID: program.ID, StartDate: "2024-03-13", Weeks: 1})
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	require.Len(t, result.Missions, 1)

	mission := result.Missions[0]
	assert.Equal(t, "Run club: Intervals", mission.Title)
	assert.Equal(t, "day", mission.TimeFrame)
	require.NotNil(t, mission.DueDate)
	assert.Equal(t, "2024-03-15", *mission.DueDate)

	sessions, err := svc.ListSessions(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].MissionID)
	assert.Equal(t, mission.ID, *sessions[0].MissionID)
}

func TestApplyProgramInactiveSkipsMissions(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkoutService(newTestStore(t), clock)
	userID := newUserID()
	inactive := false

	program, err := svc.CreateProgram(ctx, userID, ProgramDTO{
		Name:               "Paused",
		Active:             &inactive,
		AutoCreateMissions: true,
		Sessions:           []ProgramSessionDTO{{DayOfWeek: int(time.Monday), Type: "swim"}},
	})
	require.NoError(t, err)

	result, err := svc.ApplyProgram(ctx, userID, ApplyProgramDTO{ProgramID: program.ID, Weeks: 1})
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
	assert.Empty(t, result.Missions)
}

func TestApplyProgramValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkoutService(newTestStore(t), clock)
	userID := newUserID()

	_, err := svc.ApplyProgram(ctx, userID, ApplyProgramDTO{ProgramID: "missing", Weeks: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ApplyProgram(ctx, userID, ApplyProgramDTO{ProgramID: "x", StartDate: "13.03.2024"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ApplyProgram(ctx, userID, ApplyProgramDTO{ProgramID: "x", Weeks: 100})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProgramReplacesSessions(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkoutService(newTestStore(t), clock)
	userID := newUserID()

	program, err := svc.CreateProgram(ctx, userID, ProgramDTO{
		Name: "Split",
		Sessions: []ProgramSessionDTO{
			{DayOfWeek: 1, Type: "push"},
			{DayOfWeek: 3, Type: "pull"},
		},
	})
	require.NoError(t, err)

	_, err = svc.UpdateProgram(ctx, userID, ProgramDTO{
		ID:       program.ID,
		Name:     "Split v2",
		Sessions: []ProgramSessionDTO{{DayOfWeek: 5, Type: "legs"}},
	})
	require.NoError(t, err)

	programs, err := svc.ListPrograms(ctx, userID)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "Split v2", programs[0].Name)
	require.Len(t, programs[0].Sessions, 1)
	assert.Equal(t, "legs", programs[0].Sessions[0].Type)

	require.NoError(t, svc.DeleteProgram(ctx, userID, program.ID))
	assert.ErrorIs(t, svc.DeleteProgram(ctx, userID, program.ID), ErrNotFound)
}
