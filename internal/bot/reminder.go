package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/pkg/utils"
	"github.com/robfig/cron/v3"
)

// StartReminders запускает вечернее напоминание по расписанию cron
func (b *BotApp) StartReminders(schedule string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		b.SendReminders(ctx)
	}); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	c.Start()
	utils.Log.Info("Reminder scheduled", "cron", schedule)
	return c, nil
}

// SendReminders пишет привязанным пользователям, какие рутины ещё не отмечены.
// Возвращает число отправленных напоминаний.
func (b *BotApp) SendReminders(ctx context.Context) int {
	users, err := b.accounts.LinkedUsers(ctx)
	if err != nil {
		utils.Log.Error("Failed to load linked users", "err", err)
		return 0
	}

	sent := 0
	for _, u := range users {
		if u.TelegramID == nil {
			continue
		}
		text, err := b.reminderText(ctx, u.ID)
		if err != nil {
			utils.Log.Error("Failed to build reminder", "user_id", u.ID, "err", err)
			continue
		}
		if text == "" {
			continue
		}
		b.sendText(*u.TelegramID, text)
		sent++
	}
	utils.Log.Info("Reminders sent", "count", sent)
	return sent
}

// reminderText пустой, если всё отмечено
func (b *BotApp) reminderText(ctx context.Context, userID string) (string, error) {
	var names []string
	for _, kind := range []string{models.RoutineMorning, models.RoutineNight} {
		pending, err := b.routines.Pending(ctx, userID, kind)
		if err != nil {
			return "", err
		}
		for _, a := range pending {
			names = append(names, kindIcon(kind)+" "+a.Name)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	return "⏰ Ещё не отмечено сегодня:\n" + strings.Join(names, "\n") + "\n\n/today - отметить", nil
}
