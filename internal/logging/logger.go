// Package logging defines the structured logger used by the wallet service, the node client and the CLI. The
// cryptographic packages never log.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

type Fields map[string]any

type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)
}

var _ Logger = &logrusLogger{}

type logrusLogger struct {
	logger *logrus.Logger
}

// NewLogger returns a logger writing text records of at least the given level (e.g. "info", "debug") to w.
func NewLogger(w io.Writer, level string) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	return &logrusLogger{logger}, nil
}

// Discard returns a logger dropping all records.
func Discard() Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &logrusLogger{logger}
}

func (l *logrusLogger) Debug(msg string, fields Fields) {
	l.logger.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *logrusLogger) Info(msg string, fields Fields) {
	l.logger.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *logrusLogger) Warn(msg string, fields Fields) {
	l.logger.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *logrusLogger) Error(msg string, fields Fields) {
	l.logger.WithFields(logrus.Fields(fields)).Error(msg)
}
