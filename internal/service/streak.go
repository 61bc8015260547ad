package service

import (
	"sort"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/models"
)

// Streak - текущая и самая длинная серия выполненных дней
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// CalculateStreak считает серии по отметкам одного действия.
// Текущая серия засчитывается, только если последняя выполненная дата - сегодня или вчера.
// Дубликаты дат не схлопываются: уникальность (action, date) держит база.
func CalculateStreak(logs []models.RoutineLog, now time.Time) Streak {
	var days []time.Time
	for _, l := range logs {
		if !l.Completed {
			continue
		}
		d, err := time.Parse(DateLayout, l.Date)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return Streak{}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today, _ := time.Parse(DateLayout, dateOf(now))
	yesterday := today.AddDate(0, 0, -1)

	current := 0
	if days[0].Equal(today) || days[0].Equal(yesterday) {
		current = 1
		for i := 1; i < len(days); i++ {
			if daysBetween(days[i], days[i-1]) > 1 {
				break
			}
			current++
		}
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	if current > longest {
		longest = current
	}

	return Streak{Current: current, Longest: longest}
}

// daysBetween - число календарных дней от earlier до later (обе даты в UTC без времени)
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
