package logger

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// GetLogger returns the global logger instance, creating a default
// one from the environment on first use.
func GetLogger() *Logger {
	once.Do(func() {
		if globalLogger == nil {
			level := "info"
			if os.Getenv("DEBUG") == "true" {
				level = "debug"
			} else if os.Getenv("LOG_LEVEL") != "" {
				level = os.Getenv("LOG_LEVEL")
			}

			format := "json"
			if os.Getenv("LOG_FORMAT") != "" {
				format = os.Getenv("LOG_FORMAT")
			}

			globalLogger = New(Config{
				Level:  level,
				Format: format,
				Output: "stdout",
			})
		}
	})
	return globalLogger
}

// SetLogger sets the global logger instance
func SetLogger(logger *Logger) {
	globalLogger = logger
}

// Debug logs a debug message
func Debug(msg string) {
	GetLogger().Debug(msg)
}

// Info logs an info message
func Info(msg string) {
	GetLogger().Info(msg)
}

// Warn logs a warning message
func Warn(msg string) {
	GetLogger().Warn(msg)
}

// Error logs an error message
func Error(msg string) {
	GetLogger().Error(msg)
}

// WithField adds a field to the logger
func WithField(key string, value interface{}) *Logger {
	return GetLogger().WithField(key, value)
}

// WithError adds an error to the logger
func WithError(err error) *Logger {
	return GetLogger().WithError(err)
}
