package models

type User struct {
	Base
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name         string `gorm:"size:255" json:"name"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	TelegramID   *int64 `gorm:"uniqueIndex" json:"telegramId,omitempty"`
}

// UserSettings - одна запись на пользователя
type UserSettings struct {
	Base
	UserID             string `gorm:"type:varchar(36);uniqueIndex;not null" json:"-"`
	Theme              string `gorm:"size:20;not null" json:"theme"`
	DayStartHour       int    `json:"dayStartHour"`
	DayEndHour         int    `json:"dayEndHour"`
	ShowQuotes         bool   `json:"showQuotes"`
	ShowStreaks        bool   `json:"showStreaks"`
	ShowCompletedTasks bool   `json:"showCompletedTasks"`
	ShowNightRoutine   bool   `json:"showNightRoutine"`
	ShowWeekNumbers    bool   `json:"showWeekNumbers"`
}

// DefaultSettings возвращает настройки нового (или сброшенного) аккаунта
func DefaultSettings(userID string) UserSettings {
	return UserSettings{
		UserID:             userID,
		Theme:              "system",
		DayStartHour:       6,
		DayEndHour:         22,
		ShowQuotes:         true,
		ShowStreaks:        true,
		ShowCompletedTasks: true,
		ShowNightRoutine:   true,
		ShowWeekNumbers:    true,
	}
}
