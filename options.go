package today

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-today/pkg/activity"
	"github.com/goliatone/go-today/pkg/diffable"
)

// Option configures a ReminderList.
type Option func(*listConfig)

type listConfig struct {
	evaluator        Evaluator
	programCache     ProgramCache
	functions        *FunctionRegistry
	evaluatorLogger  EvaluatorLogger
	activityHooks    activity.Hooks
	activityConfig   activity.Config
	clock            func() time.Time
	style            ListStyle
	filter           string
	sink             diffable.Sink[int, string]
	reconcilerLogger diffable.Logger
	logger           *slog.Logger
}

func applyOptions(opts []Option) listConfig {
	cfg := listConfig{
		clock:          time.Now,
		style:          ListStyleToday,
		activityConfig: activity.Config{Enabled: true},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	if cfg.evaluatorLogger == nil {
		cfg.evaluatorLogger = noopEvaluatorLogger{}
	}
	return cfg
}

// evaluatorOrDefault returns the configured evaluator or builds the expr one
// with the date helpers plus any custom functions.
func (cfg listConfig) evaluatorOrDefault() Evaluator {
	if cfg.evaluator != nil {
		return cfg.evaluator
	}
	registry := DefaultFunctions(cfg.clock)
	for _, name := range cfg.functions.Names() {
		fn := name
		_ = registry.Register(fn, func(args ...any) (any, error) {
			return cfg.functions.Call(fn, args...)
		})
	}
	exprOpts := []ExprEvaluatorOption{ExprWithFunctionRegistry(registry)}
	if cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cfg.programCache))
	}
	return NewExprEvaluator(exprOpts...)
}

// WithEvaluator replaces the default expr evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *listConfig) {
		cfg.evaluator = e
	}
}

// WithProgramCache shares compiled rules of the default evaluator.
func WithProgramCache(cache ProgramCache) Option {
	return func(cfg *listConfig) {
		cfg.programCache = cache
	}
}

// WithFunctionRegistry adds the registry's functions to the default
// evaluator. Names already used by the date helpers are skipped.
func WithFunctionRegistry(registry *FunctionRegistry) Option {
	return func(cfg *listConfig) {
		if registry != nil {
			cfg.functions = registry.Clone()
		}
	}
}

// WithCustomFunction registers a single function on the default evaluator.
func WithCustomFunction(name string, fn Function) Option {
	return func(cfg *listConfig) {
		if cfg.functions == nil {
			cfg.functions = NewFunctionRegistry()
		}
		_ = cfg.functions.Register(name, fn)
	}
}

// WithEvaluatorLogger records every rule evaluation.
func WithEvaluatorLogger(logger EvaluatorLogger) Option {
	return func(cfg *listConfig) {
		cfg.evaluatorLogger = logger
	}
}

// WithActivityHooks notifies hooks of reminder and snapshot changes. Nil
// hooks are dropped.
func WithActivityHooks(hooks activity.Hooks) Option {
	live := activity.CompactHooks(hooks)
	return func(cfg *listConfig) {
		cfg.activityHooks = live
	}
}

// WithActivityConfig sets the emitter defaults. Emission is enabled unless
// the config disables it.
func WithActivityConfig(config activity.Config) Option {
	return func(cfg *listConfig) {
		cfg.activityConfig = config
	}
}

// WithClock replaces time.Now for list styles, rules and date helpers.
func WithClock(clock func() time.Time) Option {
	return func(cfg *listConfig) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// WithListStyle sets the initial list style. Lists start on Today.
func WithListStyle(style ListStyle) Option {
	return func(cfg *listConfig) {
		cfg.style = style
	}
}

// WithFilter sets the initial rule expression.
func WithFilter(expression string) Option {
	return func(cfg *listConfig) {
		cfg.filter = expression
	}
}

// WithSink forwards every reconciled operation list to sink.
func WithSink(sink diffable.Sink[int, string]) Option {
	return func(cfg *listConfig) {
		cfg.sink = sink
	}
}

// WithReconcilerLogger records snapshot applications.
func WithReconcilerLogger(logger diffable.Logger) Option {
	return func(cfg *listConfig) {
		cfg.reconcilerLogger = logger
	}
}

// WithLogger sets the structured logger. Evaluator and reconciler logging
// fall back to it when not configured separately.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *listConfig) {
		cfg.logger = logger
		if logger == nil {
			return
		}
		if cfg.evaluatorLogger == nil {
			cfg.evaluatorLogger = SlogEvaluatorLogger(logger)
		}
		if cfg.reconcilerLogger == nil {
			cfg.reconcilerLogger = diffable.SlogLogger(logger)
		}
	}
}
