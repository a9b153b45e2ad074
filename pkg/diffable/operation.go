package diffable

import (
	"fmt"
	"strings"
)

// OperationKind names one primitive list update.
type OperationKind int

const (
	// OpInsertSection adds a section at Index.
	OpInsertSection OperationKind = iota + 1
	// OpRemoveSection drops a section, detaching the items it still holds.
	OpRemoveSection
	// OpMoveSection moves a section, with its items, to Index.
	OpMoveSection
	// OpInsertItem adds Item to Section at Index.
	OpInsertItem
	// OpRemoveItem drops Item.
	OpRemoveItem
	// OpMoveItem moves Item to Section at Index.
	OpMoveItem
	// OpReloadItem refreshes the content of Item in place.
	OpReloadItem
)

func (k OperationKind) String() string {
	switch k {
	case OpInsertSection:
		return "insertSection"
	case OpRemoveSection:
		return "removeSection"
	case OpMoveSection:
		return "moveSection"
	case OpInsertItem:
		return "insertItem"
	case OpRemoveItem:
		return "removeItem"
	case OpMoveItem:
		return "moveItem"
	case OpReloadItem:
		return "reloadItem"
	default:
		return fmt.Sprintf("operation(%d)", int(k))
	}
}

// Operation is one update a renderer applies. Section and Index are the
// destination for inserts and moves; Section is the target of section
// operations; Item is set for item operations.
type Operation[S comparable, I comparable] struct {
	Kind    OperationKind
	Section S
	Item    I
	Index   int
}

// InsertSection returns an OpInsertSection operation.
func InsertSection[S comparable, I comparable](section S, index int) Operation[S, I] {
	return Operation[S, I]{Kind: OpInsertSection, Section: section, Index: index}
}

// RemoveSection returns an OpRemoveSection operation.
func RemoveSection[S comparable, I comparable](section S) Operation[S, I] {
	return Operation[S, I]{Kind: OpRemoveSection, Section: section}
}

// MoveSection returns an OpMoveSection operation.
func MoveSection[S comparable, I comparable](section S, index int) Operation[S, I] {
	return Operation[S, I]{Kind: OpMoveSection, Section: section, Index: index}
}

// InsertItem returns an OpInsertItem operation.
func InsertItem[S comparable, I comparable](id I, section S, index int) Operation[S, I] {
	return Operation[S, I]{Kind: OpInsertItem, Section: section, Item: id, Index: index}
}

// RemoveItem returns an OpRemoveItem operation.
func RemoveItem[S comparable, I comparable](id I) Operation[S, I] {
	return Operation[S, I]{Kind: OpRemoveItem, Item: id}
}

// MoveItem returns an OpMoveItem operation.
func MoveItem[S comparable, I comparable](id I, section S, index int) Operation[S, I] {
	return Operation[S, I]{Kind: OpMoveItem, Section: section, Item: id, Index: index}
}

// ReloadItem returns an OpReloadItem operation.
func ReloadItem[S comparable, I comparable](id I) Operation[S, I] {
	return Operation[S, I]{Kind: OpReloadItem, Item: id}
}

// IsSection reports whether the operation targets a section.
func (op Operation[S, I]) IsSection() bool {
	switch op.Kind {
	case OpInsertSection, OpRemoveSection, OpMoveSection:
		return true
	default:
		return false
	}
}

func (op Operation[S, I]) String() string {
	switch op.Kind {
	case OpInsertSection, OpMoveSection:
		return fmt.Sprintf("%s(%v, %d)", op.Kind, op.Section, op.Index)
	case OpRemoveSection:
		return fmt.Sprintf("%s(%v)", op.Kind, op.Section)
	case OpInsertItem, OpMoveItem:
		return fmt.Sprintf("%s(%v, %v, %d)", op.Kind, op.Item, op.Section, op.Index)
	default:
		return fmt.Sprintf("%s(%v)", op.Kind, op.Item)
	}
}

// OperationList is an ordered sequence of operations.
type OperationList[S comparable, I comparable] []Operation[S, I]

// IsEmpty reports whether there is nothing to apply.
func (l OperationList[S, I]) IsEmpty() bool {
	return len(l) == 0
}

// Count returns how many operations have kind.
func (l OperationList[S, I]) Count(kind OperationKind) int {
	n := 0
	for _, op := range l {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the operations of kind, keeping their order.
func (l OperationList[S, I]) Filter(kind OperationKind) OperationList[S, I] {
	var out OperationList[S, I]
	for _, op := range l {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Counts tallies operations by kind.
func (l OperationList[S, I]) Counts() map[OperationKind]int {
	if len(l) == 0 {
		return nil
	}
	counts := make(map[OperationKind]int)
	for _, op := range l {
		counts[op.Kind]++
	}
	return counts
}

func (l OperationList[S, I]) String() string {
	parts := make([]string, len(l))
	for i, op := range l {
		parts[i] = op.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
