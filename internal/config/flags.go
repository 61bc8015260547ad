package config

import "github.com/alecthomas/kong"

// Flags - параметры командной строки; непустые значения перекрывают окружение
type Flags struct {
	Port        string `help:"HTTP port." short:"p"`
	DBDriver    string `help:"Database driver (postgres|sqlite)." name:"db-driver"`
	DatabaseURL string `help:"Database DSN or SQLite file path." name:"database-url"`
	LogLevel    string `help:"Log level (debug|info|warn|error)." name:"log-level"`
	LogFile     string `help:"Rotating log file path." name:"log-file"`
	Version     kong.VersionFlag
}

// Apply переносит заданные флаги в конфигурацию
func (f Flags) Apply(cfg *Config) {
	if f.Port != "" {
		cfg.Server.Port = f.Port
	}
	if f.DBDriver != "" {
		cfg.Database.Driver = f.DBDriver
	}
	if f.DatabaseURL != "" {
		cfg.Database.URL = f.DatabaseURL
	}
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
}

// ParseFlags разбирает os.Args, загружает конфигурацию и проверяет её через validate
func ParseFlags(name, description string, validate func(*Config) error) (*Config, error) {
	var flags Flags
	kong.Parse(&flags,
		kong.Name(name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	flags.Apply(cfg)
	return cfg, validate(cfg)
}

// Version подставляется при сборке через -ldflags
var Version = "dev"
