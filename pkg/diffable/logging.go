package diffable

import (
	"context"
	"log/slog"
	"time"
)

// ApplyLogEvent describes one Reconciler.Apply call.
type ApplyLogEvent struct {
	SnapshotID string
	Sections   int
	Items      int
	Operations int
	Counts     map[OperationKind]int
	Duration   time.Duration
	Err        error
}

// Logger records reconciliation events.
type Logger interface {
	LogApply(ApplyLogEvent)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(ApplyLogEvent)

// LogApply implements Logger.
func (f LoggerFunc) LogApply(event ApplyLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopLogger struct{}

func (noopLogger) LogApply(ApplyLogEvent) {}

// SlogLogger writes apply events to logger: rejected snapshots at warn level,
// successful applications at debug level.
func SlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return noopLogger{}
	}
	return LoggerFunc(func(event ApplyLogEvent) {
		attrs := []slog.Attr{
			slog.String("snapshot_id", event.SnapshotID),
			slog.Int("sections", event.Sections),
			slog.Int("items", event.Items),
			slog.Int("operations", event.Operations),
			slog.Duration("duration", event.Duration),
		}
		for kind, n := range event.Counts {
			attrs = append(attrs, slog.Int(kind.String(), n))
		}
		if event.Err != nil {
			attrs = append(attrs, slog.Any("error", event.Err))
			logger.LogAttrs(context.Background(), slog.LevelWarn, "diffable: snapshot rejected", attrs...)
			return
		}
		logger.LogAttrs(context.Background(), slog.LevelDebug, "diffable: snapshot applied", attrs...)
	})
}
