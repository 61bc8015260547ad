package service

import (
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/models"
)

// ExpandProgram разворачивает недельный шаблон программы в конкретные тренировки:
// по одной на каждый шаблон занятия на каждую из weeks недель, начиная со start.
// Дата занятия - ближайший day-of-week не раньше начала соответствующей недели.
func ExpandProgram(program *models.WorkoutProgram, start time.Time, weeks int) []*models.WorkoutSession {
	var out []*models.WorkoutSession
	programID := program.ID

	for w := 0; w < weeks; w++ {
		weekStart := start.AddDate(0, 0, 7*w)
		for _, tpl := range program.Sessions {
			offset := (tpl.DayOfWeek - int(weekStart.Weekday()) + 7) % 7
			date := weekStart.AddDate(0, 0, offset)

			out = append(out, &models.WorkoutSession{
				UserID:     program.UserID,
				Date:       dateOf(date),
				Type:       tpl.Type,
				CustomType: tpl.CustomType,
				Duration:   tpl.Duration,
				Intensity:  tpl.Intensity,
				Time:       tpl.Time,
				ProgramID:  &programID,
			})
		}
	}
	return out
}
