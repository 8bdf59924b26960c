// Package logrus adapts github.com/sirupsen/logrus to logger.Logger
package logrus

import (
	"github.com/raykavin/ratebot/pkg/logger"
	"github.com/sirupsen/logrus"
)

// LogrusAdapter wraps a logrus entry so derived loggers keep their fields
type LogrusAdapter struct {
	*logrus.Entry
}

func NewAdapter(log *logrus.Logger) *LogrusAdapter {
	return &LogrusAdapter{logrus.NewEntry(log)}
}

// New creates a logrus logger using the text formatter, or JSON when asked
func New(level string, jsonFormat bool) (*logrus.Logger, error) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetLevel(parsed)
	if jsonFormat {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log, nil
}

// WithField implements logger.Logger.
func (l *LogrusAdapter) WithField(key string, value any) logger.Logger {
	return &LogrusAdapter{l.Entry.WithField(key, value)}
}

// WithFields implements logger.Logger.
func (l *LogrusAdapter) WithFields(fields map[string]any) logger.Logger {
	return &LogrusAdapter{l.Entry.WithFields(fields)}
}

// WithError implements logger.Logger.
func (l *LogrusAdapter) WithError(err error) logger.Logger {
	return &LogrusAdapter{l.Entry.WithError(err)}
}

// SetLevel implements logger.Logger. The level lives on the logrus.Logger
// and is shared by every adapter derived from it.
func (l *LogrusAdapter) SetLevel(level logger.Level) {
	l.Entry.Logger.SetLevel(toLogrusLevel(level))
}

// GetLevel implements logger.Logger.
func (l *LogrusAdapter) GetLevel() logger.Level {
	switch l.Entry.Logger.GetLevel() {
	case logrus.TraceLevel:
		return logger.TraceLevel
	case logrus.DebugLevel:
		return logger.DebugLevel
	case logrus.InfoLevel:
		return logger.InfoLevel
	case logrus.WarnLevel:
		return logger.WarnLevel
	case logrus.ErrorLevel:
		return logger.ErrorLevel
	case logrus.FatalLevel:
		return logger.FatalLevel
	case logrus.PanicLevel:
		return logger.PanicLevel
	}
	return logger.NoLevel
}

func toLogrusLevel(level logger.Level) logrus.Level {
	switch level {
	case logger.TraceLevel:
		return logrus.TraceLevel
	case logger.DebugLevel:
		return logrus.DebugLevel
	case logger.WarnLevel:
		return logrus.WarnLevel
	case logger.ErrorLevel:
		return logrus.ErrorLevel
	case logger.FatalLevel:
		return logrus.FatalLevel
	case logger.PanicLevel, logger.Disabled:
		return logrus.PanicLevel
	}
	return logrus.InfoLevel
}
