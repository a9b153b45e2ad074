package today

import (
	"log/slog"
	"time"
)

// EvaluatorLogEvent describes one rule evaluation.
type EvaluatorLogEvent struct {
	Engine     string
	Expr       string
	ReminderID string
	Duration   time.Duration
	Matched    bool
	Err        error
}

// EvaluatorLogger records evaluator events.
type EvaluatorLogger interface {
	LogEvaluation(EvaluatorLogEvent)
}

// EvaluatorLoggerFunc adapts a function to EvaluatorLogger.
type EvaluatorLoggerFunc func(EvaluatorLogEvent)

// LogEvaluation implements EvaluatorLogger.
func (f EvaluatorLoggerFunc) LogEvaluation(event EvaluatorLogEvent) {
	if f != nil {
		f(event)
	}
}

type noopEvaluatorLogger struct{}

func (noopEvaluatorLogger) LogEvaluation(EvaluatorLogEvent) {}

// SlogEvaluatorLogger writes evaluations to logger: failures at warn level,
// everything else at debug.
func SlogEvaluatorLogger(logger *slog.Logger) EvaluatorLogger {
	if logger == nil {
		return noopEvaluatorLogger{}
	}
	return EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
		attrs := []any{
			slog.String("engine", event.Engine),
			slog.String("expr", event.Expr),
			slog.String("reminder", event.ReminderID),
			slog.Duration("duration", event.Duration),
		}
		if event.Err != nil {
			logger.Warn("today: rule evaluation failed", append(attrs, slog.Any("error", event.Err))...)
			return
		}
		logger.Debug("today: rule evaluated", append(attrs, slog.Bool("matched", event.Matched))...)
	})
}
