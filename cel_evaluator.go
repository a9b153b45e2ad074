package today

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/uuid"
)

// celMaxArity bounds the overloads declared for registry functions.
const celMaxArity = 3

// CELEvaluatorOption configures the CEL evaluator.
type CELEvaluatorOption func(*celEvaluator)

// CELWithProgramCache shares compiled programs through cache.
func CELWithProgramCache(cache ProgramCache) CELEvaluatorOption {
	return func(e *celEvaluator) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry exposes the registry's functions to rules.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEvaluatorOption {
	return func(e *celEvaluator) {
		if registry != nil {
			e.registry = registry.Clone()
		}
	}
}

type celEvaluator struct {
	cache    ProgramCache
	registry *FunctionRegistry
	scope    string
}

// NewCELEvaluator returns an Evaluator backed by cel-go. Reminder fields are
// declared with their CEL types: title, notes and id are strings, due and now
// are timestamps, complete is a bool.
func NewCELEvaluator(opts ...CELEvaluatorOption) Evaluator {
	e := &celEvaluator{scope: uuid.NewString()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEvaluator) engine() string { return "cel" }

func (e *celEvaluator) Evaluate(ctx RuleContext, expression string) (any, error) {
	rule, err := e.Compile(expression)
	if err != nil {
		return nil, err
	}
	return rule.Evaluate(ctx)
}

func (e *celEvaluator) Compile(expression string) (CompiledRule, error) {
	if expression == "" {
		return nil, wrapEvaluationError("cel", "", "", ErrEmptyExpression)
	}
	program, err := e.loadOrCompile(expression)
	if err != nil {
		return nil, wrapEvaluationError("cel", expression, "", err)
	}
	return &celCompiledRule{program: program, expression: expression}, nil
}

func (e *celEvaluator) loadOrCompile(expression string) (celgo.Program, error) {
	if e.cache != nil {
		if cached, ok := e.cache.Get(programKey(e.scope, expression)); ok {
			if program, ok := cached.(celgo.Program); ok {
				return program, nil
			}
		}
	}
	env, err := e.buildEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	if e.cache != nil {
		e.cache.Set(programKey(e.scope, expression), program)
	}
	return program, nil
}

func (e *celEvaluator) buildEnv() (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("id", celgo.StringType),
		celgo.Variable("title", celgo.StringType),
		celgo.Variable("notes", celgo.StringType),
		celgo.Variable("due", celgo.TimestampType),
		celgo.Variable("complete", celgo.BoolType),
		celgo.Variable("now", celgo.TimestampType),
		celgo.Variable("args", celgo.MapType(celgo.StringType, celgo.DynType)),
	}
	for _, name := range e.registry.Names() {
		opts = append(opts, celgo.Function(name, e.overloads(name)...))
	}
	return celgo.NewEnv(opts...)
}

// overloads declares name for zero to celMaxArity dynamic arguments.
func (e *celEvaluator) overloads(name string) []celgo.FunctionOpt {
	binding := celgo.FunctionBinding(e.binding(name))
	var out []celgo.FunctionOpt
	for arity := 0; arity <= celMaxArity; arity++ {
		args := make([]*celgo.Type, arity)
		for i := range args {
			args[i] = celgo.DynType
		}
		out = append(out, celgo.Overload(fmt.Sprintf("%s_dyn_%d", name, arity), args, celgo.DynType, binding))
	}
	return out
}

func (e *celEvaluator) binding(name string) func(values ...ref.Val) ref.Val {
	registry := e.registry
	return func(values ...ref.Val) ref.Val {
		args := make([]any, len(values))
		for i, value := range values {
			args[i] = value.Value()
		}
		result, err := registry.Call(name, args...)
		if err != nil {
			return types.NewErr("%s", err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}

type celCompiledRule struct {
	program    celgo.Program
	expression string
}

func (r *celCompiledRule) Evaluate(ctx RuleContext) (any, error) {
	ctx = ctx.withDefaults()
	out, _, err := r.program.Eval(ctx.variables())
	if err != nil {
		return nil, wrapEvaluationError("cel", r.expression, ctx.Reminder.ID, err)
	}
	return out.Value(), nil
}
