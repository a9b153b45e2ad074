package diffable

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-today/pkg/store"
)

var (
	// ErrInvalidSnapshot reports a snapshot that breaks its structural invariants.
	ErrInvalidSnapshot = errors.New("diffable: invalid snapshot")
	// ErrDuplicateIdentifier reports an identifier repeated within one section.
	ErrDuplicateIdentifier = errors.New("diffable: duplicate identifier")
	// ErrInvalidOperation reports an operation that cannot be applied by Replay.
	ErrInvalidOperation = errors.New("diffable: invalid operation")
)

// SnapshotErrorKind classifies structural snapshot failures.
type SnapshotErrorKind int

const (
	// DuplicateSection means a section key was appended twice.
	DuplicateSection SnapshotErrorKind = iota + 1
	// UndeclaredSection means items reference a section that was never appended.
	UndeclaredSection
	// DuplicateItem means an identifier appears twice in the same section.
	DuplicateItem
	// ItemInMultipleSections means an identifier appears in two sections.
	ItemInMultipleSections
)

func (k SnapshotErrorKind) String() string {
	switch k {
	case DuplicateSection:
		return "duplicate section"
	case UndeclaredSection:
		return "undeclared section"
	case DuplicateItem:
		return "duplicate item"
	case ItemInMultipleSections:
		return "item in multiple sections"
	default:
		return "unknown"
	}
}

// SnapshotError describes the first invariant violation found in a snapshot.
// It matches ErrInvalidSnapshot, and DuplicateItem failures also match
// ErrDuplicateIdentifier and store.ErrDuplicateIdentifier.
type SnapshotError struct {
	Kind    SnapshotErrorKind
	Section any
	Item    any
}

func (e *SnapshotError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case DuplicateSection, UndeclaredSection:
		return fmt.Sprintf("diffable: invalid snapshot: %s %v", e.Kind, e.Section)
	default:
		return fmt.Sprintf("diffable: invalid snapshot: %s %v in section %v", e.Kind, e.Item, e.Section)
	}
}

// Is lets errors.Is match the package sentinels.
func (e *SnapshotError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrInvalidSnapshot:
		return true
	case ErrDuplicateIdentifier, store.ErrDuplicateIdentifier:
		return e.Kind == DuplicateItem
	default:
		return false
	}
}
