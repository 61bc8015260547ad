package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrConflict           = errors.New("already exists")
)

// DateLayout - формат всех дат в API
const DateLayout = "2006-01-02"

// notFound превращает gorm.ErrRecordNotFound в ErrNotFound с именем сущности
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func validOptionalDate(s *string) bool {
	return s == nil || *s == "" || validDate(*s)
}

// validClock проверяет время в формате HH:MM
func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// emptyToNil - пустая строка из формы означает "не задано"
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Clock возвращает текущее время; в тестах подменяется
type Clock func() time.Time

func dateOf(t time.Time) string {
	return t.Format(DateLayout)
}
