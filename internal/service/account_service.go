package service

import (
	"context"
	"errors"
	"strings"

	"github.com/alenapavlenkko/lifetracker/internal/auth"
	"github.com/alenapavlenkko/lifetracker/internal/models"
	"github.com/alenapavlenkko/lifetracker/internal/repository"
	"github.com/alenapavlenkko/lifetracker/pkg/utils"
	"gorm.io/gorm"
)

// AccountService - регистрация, вход, настройки и полный сброс данных
type AccountService struct {
	store *repository.Store
}

func NewAccountService(store *repository.Store) *AccountService {
	return &AccountService{store: store}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register создаёт пользователя вместе с настройками по умолчанию
func (s *AccountService) Register(ctx context.Context, dto RegisterDTO) (*models.User, error) {
	email := normalizeEmail(dto.Email)
	if email == "" {
		return nil, invalid("email is required")
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, Name: dto.Name, PasswordHash: hash}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Users.FindByEmail(ctx, email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if _, err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		settings := models.DefaultSettings(user.ID)
		return tx.Settings.Save(ctx, &settings)
	})
	if err != nil {
		return nil, err
	}

	utils.Log.Info("User registered", "user", user.ID)
	return user, nil
}

// Authenticate проверяет email и пароль
func (s *AccountService) Authenticate(ctx context.Context, dto LoginDTO) (*models.User, error) {
	user, err := s.store.Users.FindByEmail(ctx, normalizeEmail(dto.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, dto.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UserByEmail - пользователь текущей сессии; вызывается на каждый запрос
func (s *AccountService) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.store.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *AccountService) UserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	user, err := s.store.Users.FindByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

// LinkTelegram привязывает чат к аккаунту после проверки пароля
func (s *AccountService) LinkTelegram(ctx context.Context, dto LoginDTO, telegramID int64) (*models.User, error) {
	user, err := s.Authenticate(ctx, dto)
	if err != nil {
		return nil, err
	}
	user.TelegramID = &telegramID
	if err := s.store.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) LinkedUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.Users.FindLinked(ctx)
}

// Settings возвращает настройки; если строки нет - значения по умолчанию
func (s *AccountService) Settings(ctx context.Context, userID string) (*models.UserSettings, error) {
	settings, err := s.store.Settings.Find(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		def := models.DefaultSettings(userID)
		return &def, nil
	}
	return settings, err
}

func (s *AccountService) UpdateSettings(ctx context.Context, userID string, dto SettingsDTO) (*models.UserSettings, error) {
	if dto.DayStartHour < 0 || dto.DayStartHour > 23 || dto.DayEndHour < 0 || dto.DayEndHour > 23 {
		return nil, invalid("day hours must be within 0-23")
	}
	switch dto.Theme {
	case "light", "dark", "system":
	case "":
		dto.Theme = "system"
	default:
		return nil, invalid("unknown theme %q", dto.Theme)
	}

	settings := &models.UserSettings{
		UserID:             userID,
		Theme:              dto.Theme,
		DayStartHour:       dto.DayStartHour,
		DayEndHour:         dto.DayEndHour,
		ShowQuotes:         dto.ShowQuotes,
		ShowStreaks:        dto.ShowStreaks,
		ShowCompletedTasks: dto.ShowCompletedTasks,
		ShowNightRoutine:   dto.ShowNightRoutine,
		ShowWeekNumbers:    dto.ShowWeekNumbers,
	}
	if err := s.store.Settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Reset удаляет все данные пользователя одной транзакцией и возвращает настройки по умолчанию.
// Раскладка дашборда сохраняется пустой: шаблон подставляется только тем, кто её ни разу не сохранял.
func (s *AccountService) Reset(ctx context.Context, userID string) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		// Задачи раньше миссий и проектов: на них ссылаются внешние ключи
		steps := []func(context.Context, string) error{
			tx.Tasks.DeleteAll,
			tx.Missions.DeleteAll,
			tx.Projects.DeleteAll,
			tx.Routines.DeleteAll,
			tx.Calendar.DeleteAll,
			tx.Notes.DeleteAll,
			tx.Sleep.DeleteAll,
			tx.Workouts.DeleteAll,
			tx.Programs.DeleteAll,
			tx.Records.DeleteAll,
			tx.Profiles.DeleteAll,
			tx.Nutrition.DeleteAll,
		}
		for _, step := range steps {
			if err := step(ctx, userID); err != nil {
				return err
			}
		}
		layout := models.DashboardLayout{UserID: userID, Widgets: []models.Widget{}}
		if err := tx.Dashboard.Save(ctx, &layout); err != nil {
			return err
		}
		settings := models.DefaultSettings(userID)
		return tx.Settings.Save(ctx, &settings)
	})
	if err != nil {
		return err
	}

	utils.Log.Info("User data reset", "user", userID)
	return nil
}
