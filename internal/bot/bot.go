package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/service"
	"github.com/alenapavlenkko/lifetracker/pkg/utils"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	actionLink     = "link"
	callbackPrefix = "log"
	requestTimeout = 10 * time.Second
)

// Sender - часть tgbotapi.BotAPI, которой пользуется бот
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Services - сервисы, которые вызывает бот
type Services struct {
	Accounts *service.AccountService
	Routines *service.RoutineService
	Health   *service.HealthService
}

// BotApp - основная структура бота
type BotApp struct {
	API Sender
	Fsm *ChatFSM

	accounts *service.AccountService
	routines *service.RoutineService
	health   *service.HealthService

	handlers map[string]func(*tgbotapi.Message)
}

func NewBotApp(api Sender, s Services) *BotApp {
	b := &BotApp{
		API:      api,
		Fsm:      NewChatFSM(),
		accounts: s.Accounts,
		routines: s.Routines,
		health:   s.Health,
	}
	b.handlers = map[string]func(*tgbotapi.Message){
		"start":   b.handleStart,
		"help":    b.handleHelp,
		"link":    b.handleLink,
		"today":   b.handleToday,
		"streaks": b.handleStreaks,
		"sleep":   b.handleSleep,
		"targets": b.handleTargets,
	}
	return b
}

// Run читает обновления до отмены контекста
func (b *BotApp) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	utils.Log.Info("Bot started")
	for {
		select {
		case <-ctx.Done():
			utils.Log.Info("Bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(update)
		}
	}
}

func (b *BotApp) HandleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}
	if update.Message.IsCommand() {
		b.handleCommand(update.Message)
		return
	}
	b.handleRegularMessage(update.Message)
}

func (b *BotApp) handleCommand(msg *tgbotapi.Message) {
	// Новая команда прерывает незаконченный диалог
	b.Fsm.DeleteState(msg.Chat.ID)

	utils.Log.Debug("Command received", "command", msg.Command(), "chat_id", msg.Chat.ID)
	handler, ok := b.handlers[msg.Command()]
	if !ok {
		b.sendText(msg.Chat.ID, "Неизвестная команда. Используйте /help")
		return
	}
	handler(msg)
}

func (b *BotApp) handleStart(msg *tgbotapi.Message) {
	if _, err := b.linkedUser(msg.From.ID); err != nil {
		b.sendText(msg.Chat.ID, "👋 Привет! Чтобы начать, привяжите аккаунт командой /link")
		return
	}
	b.sendText(msg.Chat.ID, "👋 С возвращением! /today - отметки на сегодня, /help - все команды")
}

func (b *BotApp) handleHelp(msg *tgbotapi.Message) {
	b.sendText(msg.Chat.ID, `📚 Команды:
/link - привязать аккаунт
/today - рутины на сегодня
/streaks - серии выполнения
/sleep 23:30 07:15 4 - записать сон (качество 1-5)
/targets - дневные нормы КБЖУ`)
}

// ==================== ПРИВЯЗКА АККАУНТА ====================

func (b *BotApp) handleLink(msg *tgbotapi.Message) {
	b.Fsm.SetState(msg.Chat.ID, &ChatState{Action: actionLink, Step: stepLinkEmail})
	b.sendText(msg.Chat.ID, "📧 Введите email от аккаунта")
}

func (b *BotApp) handleRegularMessage(msg *tgbotapi.Message) {
	state, ok := b.Fsm.GetState(msg.Chat.ID)
	if !ok {
		b.sendText(msg.Chat.ID, "Используйте /help")
		return
	}

	switch state.Action {
	case actionLink:
		b.handleLinkStep(msg, state)
	default:
		b.Fsm.DeleteState(msg.Chat.ID)
	}
}

func (b *BotApp) handleLinkStep(msg *tgbotapi.Message, state *ChatState) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch state.Step {
	case stepLinkEmail:
		state.Email = text
		state.Step = stepLinkPassword
		b.Fsm.SetState(chatID, state)
		b.sendText(chatID, "🔑 Введите пароль. Сообщение с паролем будет удалено")
	case stepLinkPassword:
		b.Fsm.DeleteState(chatID)
		// Пароль не должен оставаться в истории чата
		if _, err := b.API.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID)); err != nil {
			utils.Log.Warn("Failed to delete password message", "chat_id", chatID, "err", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := b.accounts.LinkTelegram(ctx, service.LoginDTO{Email: state.Email, Password: text}, msg.From.ID)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				b.sendText(chatID, "❌ Неверный email или пароль. Попробуйте /link ещё раз")
				return
			}
			b.fail(chatID, "link", err)
			return
		}
		utils.Log.Info("Telegram linked", "user_id", user.ID, "telegram_id", msg.From.ID)
		b.sendText(chatID, fmt.Sprintf("✅ Аккаунт %s привязан", user.Email))
	}
}

// linkedUser находит пользователя по Telegram ID
func (b *BotApp) linkedUser(telegramID int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return b.accounts.UserByTelegramID(ctx, telegramID)
}

// requireUser отвечает подсказкой, если чат не привязан
func (b *BotApp) requireUser(msg *tgbotapi.Message) (*models.User, bool) {
	user, err := b.linkedUser(msg.From.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			b.sendText(msg.Chat.ID, "🔗 Сначала привяжите аккаунт командой /link")
		} else {
			b.fail(msg.Chat.ID, "lookup user", err)
		}
		return nil, false
	}
	return user, true
}

// ==================== РУТИНЫ ====================

func (b *BotApp) handleToday(msg *tgbotapi.Message) {
	user, ok := b.requireUser(msg)
	if !ok {
		return
	}
	text, rows, err := b.todayView(user.ID)
	if err != nil {
		b.fail(msg.Chat.ID, "today", err)
		return
	}
	if len(rows) == 0 {
		b.sendText(msg.Chat.ID, text)
		return
	}
	b.sendTextWithKeyboard(msg.Chat.ID, text, rows)
}

// todayView строит список рутин с кнопками-переключателями
func (b *BotApp) todayView(userID string) (string, [][]tgbotapi.InlineKeyboardButton, error) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, kind := range []string{models.RoutineMorning, models.RoutineNight} {
		actions, err := b.routines.ListActions(ctx, userID, kind)
		if err != nil {
			return "", nil, err
		}
		pending, err := b.routines.Pending(ctx, userID, kind)
		if err != nil {
			return "", nil, err
		}
		open := make(map[string]bool, len(pending))
		for _, a := range pending {
			open[a.ID] = true
		}

		for _, a := range actions {
			mark := "✅"
			if open[a.ID] {
				mark = "⬜"
			}
			label := fmt.Sprintf("%s %s %s", mark, kindIcon(kind), a.Name)
			data := strings.Join([]string{callbackPrefix, kind, a.ID}, ":")
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, data),
			))
		}
	}

	if len(rows) == 0 {
		return "📭 Рутин пока нет. Добавьте их в приложении", nil, nil
	}
	return "📋 Рутины на сегодня. Нажмите, чтобы отметить:", rows, nil
}

func kindIcon(kind string) string {
	if kind == models.RoutineNight {
		return "🌙"
	}
	return "☀️"
}

func (b *BotApp) handleCallback(callback *tgbotapi.CallbackQuery) {
	parts := strings.SplitN(callback.Data, ":", 3)
	if len(parts) != 3 || parts[0] != callbackPrefix {
		b.answerCallback(callback.ID, "")
		return
	}
	kind, actionID := parts[1], parts[2]

	user, err := b.linkedUser(callback.From.ID)
	if err != nil {
		b.answerCallback(callback.ID, "⛔ Аккаунт не привязан")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	entry, err := b.routines.ToggleToday(ctx, user.ID, kind, actionID)
	if err != nil {
		utils.Log.Error("Toggle failed", "user_id", user.ID, "action_id", actionID, "err", err)
		b.answerCallback(callback.ID, "❌ Не удалось отметить")
		return
	}

	if entry.Completed {
		b.answerCallback(callback.ID, "✅ Отмечено")
	} else {
		b.answerCallback(callback.ID, "↩️ Отметка снята")
	}

	if callback.Message == nil {
		return
	}
	text, rows, err := b.todayView(user.ID)
	if err != nil {
		utils.Log.Error("Failed to rebuild today view", "user_id", user.ID, "err", err)
		return
	}
	b.editMessage(callback.Message.Chat.ID, callback.Message.MessageID, text, rows)
}

func (b *BotApp) handleStreaks(msg *tgbotapi.Message) {
	user, ok := b.requireUser(msg)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	var sb strings.Builder
	sb.WriteString("🔥 Серии:\n")
	total := 0
	for _, kind := range []string{models.RoutineMorning, models.RoutineNight} {
		streaks, err := b.routines.Streaks(ctx, user.ID, kind)
		if err != nil {
			b.fail(msg.Chat.ID, "streaks", err)
			return
		}
		for _, s := range streaks {
			fmt.Fprintf(&sb, "%s %s: %d (рекорд %d)\n", kindIcon(kind), s.Name, s.Streak.Current, s.Streak.Longest)
			total++
		}
	}
	if total == 0 {
		b.sendText(msg.Chat.ID, "📭 Рутин пока нет")
		return
	}
	b.sendText(msg.Chat.ID, sb.String())
}

// ==================== СОН И ПИТАНИЕ ====================

// handleSleep: /sleep 23:30 07:15 [качество]
func (b *BotApp) handleSleep(msg *tgbotapi.Message) {
	user, ok := b.requireUser(msg)
	if !ok {
		return
	}

	args := strings.Fields(msg.CommandArguments())
	if len(args) < 2 {
		b.sendText(msg.Chat.ID, "Формат: /sleep 23:30 07:15 4")
		return
	}
	dto := service.SleepLogDTO{BedTime: args[0], WakeTime: args[1]}
	if len(args) > 2 {
		q, err := strconv.Atoi(args[2])
		if err != nil {
			b.sendText(msg.Chat.ID, "Качество сна - число от 1 до 5")
			return
		}
		dto.Quality = q
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	entry, err := b.health.SaveSleep(ctx, user.ID, dto)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			b.sendText(msg.Chat.ID, "❌ "+err.Error())
			return
		}
		b.fail(msg.Chat.ID, "sleep", err)
		return
	}
	b.sendText(msg.Chat.ID, fmt.Sprintf("😴 Сон за %s: %dч %02dм, качество %d/5",
		entry.Date, entry.Duration/60, entry.Duration%60, entry.Quality))
}

func (b *BotApp) handleTargets(msg *tgbotapi.Message) {
	user, ok := b.requireUser(msg)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	t, err := b.health.Targets(ctx, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			b.sendText(msg.Chat.ID, "📝 Заполните фитнес-профиль в приложении")
			return
		}
		b.fail(msg.Chat.ID, "targets", err)
		return
	}
	b.sendText(msg.Chat.ID, fmt.Sprintf(
		"🍽 Дневные нормы:\nКалории: %d ккал\nБелки: %d г\nУглеводы: %d г\nЖиры: %d г\nВода: %.2f-%.2f л",
		t.Calories, t.Protein, t.Carbs, t.Fats, t.Hydration.MinLiters, t.Hydration.MaxLiters))
}

// ==================== ОТПРАВКА ====================

func (b *BotApp) sendText(chatID int64, text string) {
	if _, err := b.API.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		utils.Log.Error("Failed to send message", "chat_id", chatID, "err", err)
	}
}

func (b *BotApp) sendTextWithKeyboard(chatID int64, text string, rows [][]tgbotapi.InlineKeyboardButton) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	if _, err := b.API.Send(msg); err != nil {
		utils.Log.Error("Failed to send keyboard", "chat_id", chatID, "err", err)
	}
}

func (b *BotApp) editMessage(chatID int64, messageID int, text string, rows [][]tgbotapi.InlineKeyboardButton) {
	var edit tgbotapi.EditMessageTextConfig
	if len(rows) == 0 {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	} else {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
	}
	if _, err := b.API.Send(edit); err != nil {
		utils.Log.Warn("Failed to edit message", "chat_id", chatID, "err", err)
	}
}

func (b *BotApp) answerCallback(callbackID string, text string) {
	if _, err := b.API.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		utils.Log.Warn("Failed to answer callback", "err", err)
	}
}

// fail логирует ошибку и отвечает пользователю без подробностей
func (b *BotApp) fail(chatID int64, op string, err error) {
	utils.Log.Error("Bot command failed", "op", op, "chat_id", chatID, "err", err)
	b.sendText(chatID, "❌ Что-то пошло не так, попробуйте позже")
}
