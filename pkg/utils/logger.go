package utils

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger с уровнями debug, info, warn и error
type Logger struct {
	l *log.Logger
}

// Создаём глобальный экземпляр
var Log = NewLogger(os.Stderr)

func NewLogger(w io.Writer) *Logger {
	return &Logger{
		l: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			Prefix:          "lifetracker",
		}),
	}
}

// LogConfig - уровень и необязательный файл с ротацией
type LogConfig struct {
	Level string
	File  string
}

// Configure перенастраивает глобальный логгер
func Configure(cfg LogConfig) {
	var w io.Writer = os.Stderr
	if cfg.File != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	Log = NewLogger(w)
	Log.SetLevel(cfg.Level)
}

// SetLevel меняет уровень; неизвестное значение означает info
func (l *Logger) SetLevel(name string) {
	level, err := log.ParseLevel(name)
	if err != nil {
		level = log.InfoLevel
	}
	l.l.SetLevel(level)
	l.l.SetReportCaller(level == log.DebugLevel)
}

// Writer отдаёт поток для сторонних логгеров (HTTP access log)
func (l *Logger) Writer() io.Writer {
	return l.l.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel}).Writer()
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.l.Debug(msg, keyvals...)
}

func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.l.Info(msg, keyvals...)
}

func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.l.Warn(msg, keyvals...)
}

func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.l.Error(msg, keyvals...)
}
