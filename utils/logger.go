package utils

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger provides leveled logging throughout the application. Flow
// boundaries use Flow to emit a structured event instead of a format string.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a Logger writing human-readable lines to stdout.
func NewLogger() *Logger {
	return NewLoggerWithWriter(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}, zerolog.InfoLevel)
}

// NewLoggerWithWriter creates a Logger emitting to w at the given level.
func NewLoggerWithWriter(w io.Writer, level zerolog.Level) *Logger {
	return &Logger{zl: zerolog.New(w).Level(level).With().Timestamp().Logger()}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// WithLevel returns a copy of l filtered at the named level ("debug",
// "info", "warn", "error"). Unknown names keep l's current level.
func (l *Logger) WithLevel(name string) *Logger {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return l
	}
	return &Logger{zl: l.zl.Level(lvl)}
}

// With returns a child logger that tags every line with key=value.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

// Flow starts an info event for the named query flow. The caller adds
// fields and finishes it with Msg.
func (l *Logger) Flow(flow string) *zerolog.Event {
	return l.zl.Info().Str("flow", flow)
}

func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

type loggerKey struct{}

// ContextWithLogger attaches l to ctx.
func ContextWithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFrom returns the logger attached to ctx, or fallback.
func LoggerFrom(ctx context.Context, fallback *Logger) *Logger {
	if l, ok := ctx.Value(loggerKey{}).(*Logger); ok && l != nil {
		return l
	}
	return fallback
}
