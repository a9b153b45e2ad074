package diffable

import (
	"fmt"
	"slices"
)

// Replay applies ops to base with the semantics described in the package
// documentation and returns the resulting snapshot (without reload marks). It
// serves headless renderers and checks that an operation list is well formed.
func Replay[S comparable, I comparable](base Snapshot[S, I], ops OperationList[S, I]) (Snapshot[S, I], error) {
	sections := slices.Clone(base.sections)
	lists := make(map[S][]I, len(base.sections))
	for _, section := range base.sections {
		lists[section] = slices.Clone(base.items[section])
	}
	detached := map[I]struct{}{}

	locate := func(id I) (S, int, bool) {
		for _, section := range sections {
			if i := slices.Index(lists[section], id); i >= 0 {
				return section, i, true
			}
		}
		var zero S
		return zero, -1, false
	}
	invalid := func(op Operation[S, I], reason string) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidOperation, op, reason)
	}

	for _, op := range ops {
		switch op.Kind {
		case OpInsertSection:
			if slices.Contains(sections, op.Section) {
				return Snapshot[S, I]{}, invalid(op, "section exists")
			}
			if op.Index < 0 || op.Index > len(sections) {
				return Snapshot[S, I]{}, invalid(op, "index out of range")
			}
			sections = slices.Insert(sections, op.Index, op.Section)
			lists[op.Section] = nil
		case OpRemoveSection:
			i := slices.Index(sections, op.Section)
			if i < 0 {
				return Snapshot[S, I]{}, invalid(op, "unknown section")
			}
			for _, id := range lists[op.Section] {
				detached[id] = struct{}{}
			}
			sections = slices.Delete(sections, i, i+1)
			delete(lists, op.Section)
		case OpMoveSection:
			i := slices.Index(sections, op.Section)
			if i < 0 {
				return Snapshot[S, I]{}, invalid(op, "unknown section")
			}
			sections = slices.Delete(sections, i, i+1)
			if op.Index < 0 || op.Index > len(sections) {
				return Snapshot[S, I]{}, invalid(op, "index out of range")
			}
			sections = slices.Insert(sections, op.Index, op.Section)
		case OpRemoveItem:
			if section, i, ok := locate(op.Item); ok {
				lists[section] = slices.Delete(lists[section], i, i+1)
				continue
			}
			if _, ok := detached[op.Item]; ok {
				delete(detached, op.Item)
				continue
			}
			return Snapshot[S, I]{}, invalid(op, "unknown item")
		case OpInsertItem, OpMoveItem:
			if !slices.Contains(sections, op.Section) {
				return Snapshot[S, I]{}, invalid(op, "unknown section")
			}
			section, i, attached := locate(op.Item)
			_, wasDetached := detached[op.Item]
			switch {
			case op.Kind == OpInsertItem && (attached || wasDetached):
				return Snapshot[S, I]{}, invalid(op, "item exists")
			case op.Kind == OpMoveItem && attached:
				lists[section] = slices.Delete(lists[section], i, i+1)
			case op.Kind == OpMoveItem && wasDetached:
				delete(detached, op.Item)
			case op.Kind == OpMoveItem:
				return Snapshot[S, I]{}, invalid(op, "unknown item")
			}
			if op.Index < 0 || op.Index > len(lists[op.Section]) {
				return Snapshot[S, I]{}, invalid(op, "index out of range")
			}
			lists[op.Section] = slices.Insert(lists[op.Section], op.Index, op.Item)
		case OpReloadItem:
			if _, _, ok := locate(op.Item); !ok {
				return Snapshot[S, I]{}, invalid(op, "unknown item")
			}
		default:
			return Snapshot[S, I]{}, invalid(op, "unknown kind")
		}
	}

	b := NewBuilder[S, I]().AppendSections(sections...)
	for _, section := range sections {
		b.AppendItems(section, lists[section]...)
	}
	return b.Snapshot(), nil
}

// SameContent reports whether a and b hold the same sections and items in the
// same order. Snapshot IDs and reload marks are ignored.
func SameContent[S comparable, I comparable](a, b Snapshot[S, I]) bool {
	if !slices.Equal(a.sections, b.sections) {
		return false
	}
	for _, section := range a.sections {
		if !slices.Equal(a.items[section], b.items[section]) {
			return false
		}
	}
	return true
}
