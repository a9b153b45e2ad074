package today

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-today/pkg/diffable"
	"github.com/goliatone/go-today/pkg/store"
)

var (
	// ErrNotFound reports an unknown reminder identifier.
	ErrNotFound = store.ErrNotFound
	// ErrDuplicateIdentifier reports a reminder identifier already in the list
	// or repeated within one snapshot section.
	ErrDuplicateIdentifier = store.ErrDuplicateIdentifier
	// ErrInvalidSnapshot reports a snapshot that breaks snapshot invariants.
	ErrInvalidSnapshot = diffable.ErrInvalidSnapshot

	ErrNoEvaluator      = errors.New("today: evaluator not configured")
	ErrEmptyExpression  = errors.New("today: expression must not be empty")
	ErrNonBooleanFilter = errors.New("today: filter must evaluate to a boolean")
	ErrUnknownListStyle = errors.New("today: unknown list style")
	ErrNotEditing       = errors.New("today: editor is not editing")
	ErrUnexpectedRow    = errors.New("today: unexpected combination of section and row")
)

// EvaluationError describes a rule that failed for a reminder.
type EvaluationError struct {
	Engine     string
	Expr       string
	ReminderID string
	Err        error
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	reminder := e.ReminderID
	if reminder == "" {
		reminder = "-"
	}
	return fmt.Sprintf("today: %s evaluator %s reminder=%s: %v", e.Engine, describeExpression(e.Expr), reminder, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

// wrapEvaluationError attaches rule metadata to err, filling only the fields
// an inner EvaluationError left blank.
func wrapEvaluationError(engine, expr, reminderID string, err error) error {
	if err == nil {
		return nil
	}
	var evalErr *EvaluationError
	if errors.As(err, &evalErr) {
		if evalErr.Engine == "" {
			evalErr.Engine = engine
		}
		if evalErr.Expr == "" {
			evalErr.Expr = expr
		}
		if evalErr.ReminderID == "" {
			evalErr.ReminderID = reminderID
		}
		return err
	}
	return &EvaluationError{
		Engine:     engine,
		Expr:       expr,
		ReminderID: reminderID,
		Err:        err,
	}
}
