package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server struct {
		Port        string
		CORSOrigins []string
		GinMode     string
	}
	Database struct {
		Driver string
		URL    string
		Debug  bool
	}
	Session struct {
		Secret string
		TTL    time.Duration
		Secure bool
	}
	Log struct {
		Level string
		File  string
	}
	Telegram struct {
		Token        string
		ReminderCron string
	}
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse .env: %w", err)
	}

	cfg := &Config{}
	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Server.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	cfg.Server.GinMode = getEnv("GIN_MODE", "release")

	cfg.Database.Driver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.Database.URL = getEnv("DATABASE_URL", "")
	cfg.Database.Debug = getBool("DB_DEBUG", false)

	cfg.Session.Secret = getEnv("SESSION_SECRET", "")
	cfg.Session.Secure = getBool("SESSION_SECURE", false)
	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.Session.TTL = ttl

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.File = getEnv("LOG_FILE", "")

	cfg.Telegram.Token = getEnv("TELEGRAM_TOKEN", "")
	cfg.Telegram.ReminderCron = getEnv("BOT_REMINDER_CRON", "0 21 * * *")

	return cfg, nil
}

// validateDatabase - общее для сервера и бота
func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL not set")
	}
	return nil
}

// ValidateServer проверяет то, без чего не стартует HTTP API
func (c *Config) ValidateServer() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if c.Session.Secret == "" {
		return errors.New("SESSION_SECRET not set")
	}
	return nil
}

// ValidateBot проверяет то, без чего не стартует бот; сессии ему не нужны
func (c *Config) ValidateBot() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if c.Telegram.Token == "" {
		return errors.New("TELEGRAM_TOKEN not set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
