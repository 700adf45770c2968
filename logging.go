package undo

import (
	"context"
	"log/slog"
	"time"
)

// Operation names reported in LogEvent.Op.
const (
	OpRecord   = "record"
	OpMerge    = "merge"
	OpUndo     = "undo"
	OpRedo     = "redo"
	OpDispose  = "dispose"
	OpRule     = "rule"
	OpActivity = "activity"
)

// LogEvent describes one tracker operation for logging.
type LogEvent struct {
	Op        string
	TrackerID string
	Cursor    int
	Length    int
	Duration  time.Duration
	Err       error
}

// Logger records tracker operations.
type Logger interface {
	LogOperation(LogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(LogEvent)

// LogOperation implements Logger.
func (f LoggerFunc) LogOperation(event LogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogOperation(LogEvent) {}

// WithLogger attaches an operation logger to the tracker.
func WithLogger(logger Logger) Option {
	return func(cfg *trackerConfig) {
		if logger == nil {
			cfg.logger = noopLogger{}
			return
		}
		cfg.logger = logger
	}
}

// SlogLogger writes operations to logger: successful ones at debug level,
// failed ones at warn level. A nil logger selects slog.Default().
func SlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return LoggerFunc(func(event LogEvent) {
		attrs := []slog.Attr{
			slog.String("op", event.Op),
			slog.String("tracker_id", event.TrackerID),
			slog.Int("cursor", event.Cursor),
			slog.Int("length", event.Length),
			slog.Duration("duration", event.Duration),
		}
		if event.Err != nil {
			attrs = append(attrs, slog.Any("error", event.Err))
			logger.LogAttrs(context.Background(), slog.LevelWarn, "undo operation failed", attrs...)
			return
		}
		logger.LogAttrs(context.Background(), slog.LevelDebug, "undo operation", attrs...)
	})
}
