package today

import (
	"fmt"
	"time"
)

// RuleContext is the input of one rule evaluation.
type RuleContext struct {
	Reminder Reminder
	Now      time.Time
	Args     map[string]any
}

func (ctx RuleContext) withDefaults() RuleContext {
	if ctx.Now.IsZero() {
		ctx.Now = time.Now()
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	return ctx
}

// variables returns the names a rule can reference.
func (ctx RuleContext) variables() map[string]any {
	vars := ctx.Reminder.binding()
	vars["now"] = ctx.Now
	vars["args"] = ctx.Args
	return vars
}

// Evaluator runs rule expressions.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string) (CompiledRule, error)
}

// CompiledRule is an expression prepared for repeated evaluation.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

type namedEngine interface {
	engine() string
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	if named, ok := e.(namedEngine); ok {
		return named.engine()
	}
	return "custom"
}

// evaluateBool runs rule and requires a boolean result.
func evaluateBool(rule CompiledRule, ctx RuleContext) (bool, error) {
	value, err := rule.Evaluate(ctx)
	if err != nil {
		return false, err
	}
	matched, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("%w: got %T", ErrNonBooleanFilter, value)
	}
	return matched, nil
}
