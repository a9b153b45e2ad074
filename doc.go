// Package today is the model layer of a reminders list.
//
// A ReminderList keeps reminders in an identity store, filters them by list
// style and an optional rule expression, and reconciles the visible order
// through a diffable.Reconciler so a rendering layer receives the insert,
// remove, move and reload operations it needs instead of full reloads.
//
// Rules are evaluated by pluggable engines. expr is the default; CEL is always
// available and a goja backed JavaScript engine is compiled in with the
// js_eval build tag. Each rule sees the reminder as variables (id, title,
// notes, due, complete), the evaluation time as now, and the functions
// registered on a FunctionRegistry.
//
// An Editor drives the detail view of a single reminder. It owns its own
// reconciler over sections and rows, exposes per-row content configurations
// and publishes the edited reminder back through a ReminderSink.
package today
