package today

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"time"
)

// Function is a callable exposed to rule expressions.
type Function func(args ...any) (any, error)

// FunctionRegistry stores rule functions by name. Names are case sensitive so
// they match how expressions spell them.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]Function
}

// NewFunctionRegistry returns an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: make(map[string]Function)}
}

// Register stores fn under name. Names are registered once.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	if fn == nil {
		return fmt.Errorf("today: function %q is nil", name)
	}
	if name == "" {
		return fmt.Errorf("today: function name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = make(map[string]Function)
	}
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("today: function %q already registered", name)
	}
	r.functions[name] = fn
	return nil
}

// Clone returns a copy that can be extended independently.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := &FunctionRegistry{functions: make(map[string]Function, len(r.functions))}
	for name, fn := range r.functions {
		clone.functions[name] = fn
	}
	return clone
}

// Call runs the function registered under name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("today: function registry is nil")
	}
	r.mu.RLock()
	fn := r.functions[name]
	r.mu.RUnlock()
	if fn == nil {
		return nil, fmt.Errorf("today: function %q not registered", name)
	}
	return fn(args...)
}

// Names returns the registered names sorted.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultFunctions returns the date helpers every list registers:
// isToday, isFuture, isPast and daysUntil, all relative to clock.
func DefaultFunctions(clock func() time.Time) *FunctionRegistry {
	if clock == nil {
		clock = time.Now
	}
	registry := NewFunctionRegistry()
	_ = registry.Register("isToday", dateFunction(func(date time.Time) any {
		return isSameDay(date, clock())
	}))
	_ = registry.Register("isFuture", dateFunction(func(date time.Time) any {
		return date.After(clock())
	}))
	_ = registry.Register("isPast", dateFunction(func(date time.Time) any {
		return date.Before(clock())
	}))
	_ = registry.Register("daysUntil", dateFunction(func(date time.Time) any {
		return daysBetween(clock(), date)
	}))
	return registry
}

func dateFunction(fn func(time.Time) any) Function {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("today: expected 1 argument, got %d", len(args))
		}
		date, ok := args[0].(time.Time)
		if !ok {
			return nil, fmt.Errorf("today: expected a date argument, got %T", args[0])
		}
		return fn(date), nil
	}
}

// daysBetween counts calendar days from from to to in from's location.
func daysBetween(from, to time.Time) int {
	loc := from.Location()
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.In(loc).Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(math.Round(end.Sub(start).Hours() / 24))
}
