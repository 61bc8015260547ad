// Package dashboard держит раскладку плиток дашборда: упорядоченный список виджетов,
// который меняется закрытым набором действий и целиком сохраняется на сервер.
package dashboard

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/google/uuid"
)

// Типы виджетов
const (
	WidgetClock           = "clock"
	WidgetQuote           = "quote"
	WidgetMorningRoutine  = "morning-routine"
	WidgetNightRoutine    = "night-routine"
	WidgetStreaks         = "streaks"
	WidgetTasks           = "tasks"
	WidgetMissions        = "missions"
	WidgetProjects        = "projects"
	WidgetCalendar        = "calendar"
	WidgetUpcomingEvents  = "upcoming-events"
	WidgetSleep           = "sleep"
	WidgetSleepChart      = "sleep-chart"
	WidgetWorkouts        = "workouts"
	WidgetWorkoutProgram  = "workout-program"
	WidgetPersonalRecords = "personal-records"
	WidgetNutrition       = "nutrition"
	WidgetMacros          = "macros"
	WidgetHydration       = "hydration"
	WidgetNotes           = "notes"
	WidgetPinnedNotes     = "pinned-notes"
	WidgetWeeklyProgress  = "weekly-progress"
	WidgetProductivity    = "productivity"
	WidgetHabitHeatmap    = "habit-heatmap"
	WidgetFocusTimer      = "focus-timer"
	WidgetGoals           = "goals"
)

var knownTypes = map[string]bool{
	WidgetClock: true, WidgetQuote: true, WidgetMorningRoutine: true, WidgetNightRoutine: true,
	WidgetStreaks: true, WidgetTasks: true, WidgetMissions: true, WidgetProjects: true,
	WidgetCalendar: true, WidgetUpcomingEvents: true, WidgetSleep: true, WidgetSleepChart: true,
	WidgetWorkouts: true, WidgetWorkoutProgram: true, WidgetPersonalRecords: true,
	WidgetNutrition: true, WidgetMacros: true, WidgetHydration: true, WidgetNotes: true,
	WidgetPinnedNotes: true, WidgetWeeklyProgress: true, WidgetProductivity: true,
	WidgetHabitHeatmap: true, WidgetFocusTimer: true, WidgetGoals: true,
}

// Границы размеров плитки и шаг сетки в пикселях
const (
	MinWidth  = 1
	MaxWidth  = 4
	MinHeight = 1
	MaxHeight = 2
	StepPx    = 60
)

var (
	ErrUnknownType   = errors.New("unknown widget type")
	ErrUnknownWidget = errors.New("unknown widget")
	ErrUnknownAction = errors.New("unknown action")
	ErrBadIndex      = errors.New("index out of range")
	ErrBadSize       = errors.New("widget size out of range")
)

// KnownType сообщает, поддерживается ли тип
func KnownType(t string) bool {
	return knownTypes[t]
}

// Defaults - шаблон из 8 плиток для раскладки, которую ещё ни разу не сохраняли
func Defaults() []models.Widget {
	template := []struct {
		typ    string
		width  int
		height int
	}{
		{WidgetClock, 1, 1},
		{WidgetMorningRoutine, 2, 2},
		{WidgetTasks, 2, 2},
		{WidgetMissions, 2, 1},
		{WidgetCalendar, 2, 2},
		{WidgetSleep, 1, 1},
		{WidgetWorkouts, 1, 1},
		{WidgetNotes, 2, 1},
	}

	widgets := make([]models.Widget, 0, len(template))
	for i, t := range template {
		widgets = append(widgets, models.Widget{
			ID:      uuid.NewString(),
			Type:    t.typ,
			Enabled: true,
			Order:   i,
			Width:   t.width,
			Height:  t.height,
		})
	}
	return widgets
}

// Validate проверяет список перед сохранением
func Validate(widgets []models.Widget) error {
	seen := make(map[string]bool, len(widgets))
	for _, w := range widgets {
		if w.ID == "" {
			return fmt.Errorf("%w: empty id", ErrUnknownWidget)
		}
		if seen[w.ID] {
			return fmt.Errorf("%w: duplicate id %s", ErrUnknownWidget, w.ID)
		}
		seen[w.ID] = true
		if !KnownType(w.Type) {
			return fmt.Errorf("%w: %q", ErrUnknownType, w.Type)
		}
		if w.Width < MinWidth || w.Width > MaxWidth || w.Height < MinHeight || w.Height > MaxHeight {
			return fmt.Errorf("%w: %dx%d", ErrBadSize, w.Width, w.Height)
		}
	}
	return nil
}

// Sorted возвращает копию, упорядоченную по Order
func Sorted(widgets []models.Widget) []models.Widget {
	out := make([]models.Widget, len(widgets))
	copy(out, widgets)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func renumber(widgets []models.Widget) {
	for i := range widgets {
		widgets[i].Order = i
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// steps переводит смещение указателя в целое число шагов сетки
func steps(deltaPx float64) int {
	return int(math.Round(deltaPx / StepPx))
}
