// Package zerolog adapts github.com/rs/zerolog to logger.Logger
package zerolog

import (
	"fmt"

	"github.com/raykavin/ratebot/pkg/logger"
	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	*zerolog.Logger
}

func NewAdapter(logger *zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger}
}

// GetLevel implements logger.Logger.
func (z *ZerologAdapter) GetLevel() logger.Level {
	return toLevel(z.Logger.GetLevel())
}

// SetLevel implements logger.Logger. Only this adapter is affected.
func (z *ZerologAdapter) SetLevel(level logger.Level) {
	leveled := z.Logger.Level(toZerologLevel(level))
	z.Logger = &leveled
}

// Trace implements logger.Logger.
func (z *ZerologAdapter) Trace(args ...any) {
	z.Logger.Trace().Msg(fmt.Sprint(args...))
}

// Tracef implements logger.Logger.
func (z *ZerologAdapter) Tracef(format string, args ...any) {
	z.Logger.Trace().Msgf(format, args...)
}

// Print implements logger.Logger.
func (z *ZerologAdapter) Print(args ...any) {
	z.Logger.Print(args...)
}

// Printf implements logger.Logger.
func (z *ZerologAdapter) Printf(format string, args ...any) {
	z.Logger.Printf(format, args...)
}

// Debug implements logger.Logger.
func (z *ZerologAdapter) Debug(args ...any) {
	z.Logger.Debug().Msg(fmt.Sprint(args...))
}

func (z *ZerologAdapter) Debugf(format string, args ...any) {
	z.Logger.Debug().Msgf(format, args...)
}

// Info implements logger.Logger.
func (z *ZerologAdapter) Info(args ...any) {
	z.Logger.Info().Msg(fmt.Sprint(args...))
}

// Infof implements logger.Logger.
func (z *ZerologAdapter) Infof(format string, args ...any) {
	z.Logger.Info().Msgf(format, args...)
}

// Warn implements logger.Logger.
func (z *ZerologAdapter) Warn(args ...any) {
	z.Logger.Warn().Msg(fmt.Sprint(args...))
}

// Warnf implements logger.Logger.
func (z *ZerologAdapter) Warnf(format string, args ...any) {
	z.Logger.Warn().Msgf(format, args...)
}

// Error implements logger.Logger.
func (z *ZerologAdapter) Error(args ...any) {
	z.Logger.Error().Msg(fmt.Sprint(args...))
}

// Errorf implements logger.Logger.
func (z *ZerologAdapter) Errorf(format string, args ...any) {
	z.Logger.Error().Msgf(format, args...)
}

// Fatal implements logger.Logger.
func (z *ZerologAdapter) Fatal(args ...any) {
	z.Logger.Fatal().Msg(fmt.Sprint(args...))
}

// Fatalf implements logger.Logger.
func (z *ZerologAdapter) Fatalf(format string, args ...any) {
	z.Logger.Fatal().Msgf(format, args...)
}

// Panic implements logger.Logger.
func (z *ZerologAdapter) Panic(args ...any) {
	z.Logger.Panic().Msg(fmt.Sprint(args...))
}

// Panicf implements logger.Logger.
func (z *ZerologAdapter) Panicf(format string, args ...any) {
	z.Logger.Panic().Msgf(format, args...)
}

// WithError implements logger.Logger. Errors carrying a github.com/pkg/errors
// stack are logged with it under the stack field.
func (z *ZerologAdapter) WithError(err error) logger.Logger {
	newLogger := z.With().Stack().Err(err).Logger()
	return &ZerologAdapter{&newLogger}
}

// WithField implements logger.Logger.
func (z *ZerologAdapter) WithField(key string, value any) logger.Logger {
	newLogger := z.With().Str(key, fmt.Sprint(value)).Logger()
	return &ZerologAdapter{&newLogger}
}

// WithFields implements logger.Logger.
func (z *ZerologAdapter) WithFields(fields map[string]any) logger.Logger {
	newLogger := z.With().Fields(fields).Logger()
	return &ZerologAdapter{&newLogger}
}

var levels = map[zerolog.Level]logger.Level{
	zerolog.Disabled:   logger.Disabled,
	zerolog.NoLevel:    logger.NoLevel,
	zerolog.TraceLevel: logger.TraceLevel,
	zerolog.DebugLevel: logger.DebugLevel,
	zerolog.InfoLevel:  logger.InfoLevel,
	zerolog.WarnLevel:  logger.WarnLevel,
	zerolog.ErrorLevel: logger.ErrorLevel,
	zerolog.FatalLevel: logger.FatalLevel,
	zerolog.PanicLevel: logger.PanicLevel,
}

// toLevel converts zerolog.Level to logger.Level.
func toLevel(level zerolog.Level) logger.Level {
	if l, ok := levels[level]; ok {
		return l
	}
	return logger.NoLevel
}

// toZerologLevel converts logger.Level to zerolog.Level.
func toZerologLevel(level logger.Level) zerolog.Level {
	for zl, l := range levels {
		if l == level {
			return zl
		}
	}
	return zerolog.NoLevel
}
