package database

import (
	"context"
	"time"

	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// logger sends gorm's logs to zerolog.
//
// The log level is controlled by the zerolog logger, gorm's own log
// level is ignored.
type logger struct {
	Logger zerolog.Logger
}

// LogMode is a no-op, the level is set on the zerolog logger.
func (l *logger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

// Info, Warn and Error log gorm's messages at the matching zerolog level.
func (l *logger) Info(_ context.Context, s string, args ...interface{}) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...interface{}) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...interface{}) {
	l.Logger.Error().Msgf(s, args...)
}

// Trace logs every statement with its duration and the number of affected rows.
//
// Statements are logged at debug level. Failed statements are logged as errors,
// except for lookups that found nothing since those are reported to the caller.
func (l *logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := map[string]interface{}{
		"sql":      sql,
		"rows":     rows,
		"duration": elapsed,
	}

	if err != nil && !models.IsNotFound(err) {
		l.Logger.Error().Err(err).Fields(fields).Msg("[GORM] query error")
		return
	}

	l.Logger.Debug().Fields(fields).Msg("[GORM] query")
}
