package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// ZerologLogger routes GORM logs into zerolog. Record-not-found is not an
// error at this layer; callers map it to a 404.
type ZerologLogger struct {
	log   zerolog.Logger
	level gormlogger.LogLevel
}

var _ gormlogger.Interface = (*ZerologLogger)(nil)

// NewLogger wraps log for GORM at the given level.
func NewLogger(log zerolog.Logger, level gormlogger.LogLevel) *ZerologLogger {
	return &ZerologLogger{log: log.With().Str("component", "gorm").Logger(), level: level}
}

func (l *ZerologLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *ZerologLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Info().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *ZerologLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *ZerologLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Error().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *ZerologLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case elapsed > slowQueryThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}

// LevelFor maps a zerolog level name to the GORM level that logs the same
// class of events. Debug surfaces every statement.
func LevelFor(level string) gormlogger.LogLevel {
	switch level {
	case "trace", "debug":
		return gormlogger.Info
	case "info", "warn", "":
		return gormlogger.Warn
	case "error", "fatal", "panic":
		return gormlogger.Error
	default:
		return gormlogger.Silent
	}
}
