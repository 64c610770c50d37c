// Package logging configures the shared structured logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// New builds a JSON logger writing to stderr so command output on
// stdout stays clean. Level comes from DAYPLAN_LOG_LEVEL and defaults
// to warn, which keeps the CLI quiet unless asked.
func New() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	logger.SetLevel(logrus.WarnLevel)
	if raw := os.Getenv("DAYPLAN_LOG_LEVEL"); raw != "" {
		if level, err := logrus.ParseLevel(raw); err == nil {
			logger.SetLevel(level)
		}
	}
	return logger
}

// Discard returns a logger that drops everything. Used by tests and
// callers that have no interest in diagnostics.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
