package diffable

import "slices"

// Diff returns the operations that turn a list rendered from applied into one
// rendered from target. Both snapshots are expected to be valid.
//
// Sections are handled first: removals in applied order, then one pass over
// the target order that inserts new sections and moves persisting ones into
// place. Items follow the same shape: removals in applied order, then one pass
// per target section that inserts new identifiers and moves persisting ones.
// An identifier that is already in place still gets a move when the persisting
// identifier before it changed, so renderers see every relative reorder.
// Reloads come last and only for marked identifiers present in both snapshots.
//
// Diffing a built snapshot against itself yields nothing: its reload marks
// were consumed by the first application.
func Diff[S comparable, I comparable](applied, target Snapshot[S, I]) OperationList[S, I] {
	if applied.id != "" && applied.id == target.id {
		return nil
	}

	var ops OperationList[S, I]

	targetSections := make(map[S]struct{}, len(target.sections))
	for _, section := range target.sections {
		targetSections[section] = struct{}{}
	}
	appliedSections := make(map[S]struct{}, len(applied.sections))
	for _, section := range applied.sections {
		appliedSections[section] = struct{}{}
	}

	sections := make([]S, 0, len(applied.sections))
	removedSections := map[S]struct{}{}
	for _, section := range applied.sections {
		if _, ok := targetSections[section]; !ok {
			removedSections[section] = struct{}{}
			ops = append(ops, RemoveSection[S, I](section))
			continue
		}
		sections = append(sections, section)
	}

	for k, section := range target.sections {
		if _, ok := appliedSections[section]; !ok {
			sections = slices.Insert(sections, k, section)
			ops = append(ops, InsertSection[S, I](section, k))
			continue
		}
		if k < len(sections) && sections[k] == section {
			continue
		}
		from := slices.Index(sections, section)
		sections = slices.Delete(sections, from, from+1)
		sections = slices.Insert(sections, k, section)
		ops = append(ops, MoveSection[S, I](section, k))
	}

	// lists mirrors what the renderer holds per section while operations are
	// emitted; owner tracks the section of every attached identifier.
	lists := make(map[S][]I, len(target.sections))
	owner := make(map[I]S, len(applied.index))
	for _, section := range applied.sections {
		if _, removed := removedSections[section]; removed {
			continue
		}
		kept := make([]I, 0, len(applied.items[section]))
		for _, id := range applied.items[section] {
			if _, ok := target.index[id]; !ok {
				ops = append(ops, RemoveItem[S, I](id))
				continue
			}
			kept = append(kept, id)
			owner[id] = section
		}
		lists[section] = kept
	}

	appliedPred := predecessors(applied, target.index)
	targetPred := predecessors(target, applied.index)

	for _, section := range target.sections {
		for k, id := range target.items[section] {
			if _, existed := applied.index[id]; !existed {
				lists[section] = slices.Insert(lists[section], k, id)
				owner[id] = section
				ops = append(ops, InsertItem(id, section, k))
				continue
			}
			current := lists[section]
			if k < len(current) && current[k] == id {
				if appliedPred[id] != targetPred[id] {
					ops = append(ops, MoveItem(id, section, k))
				}
				continue
			}
			if from, attached := owner[id]; attached {
				held := lists[from]
				i := slices.Index(held, id)
				lists[from] = slices.Delete(held, i, i+1)
			}
			lists[section] = slices.Insert(lists[section], k, id)
			owner[id] = section
			ops = append(ops, MoveItem(id, section, k))
		}
	}

	for _, section := range target.sections {
		for _, id := range target.items[section] {
			if _, marked := target.reload[id]; !marked {
				continue
			}
			if _, existed := applied.index[id]; !existed {
				continue
			}
			ops = append(ops, ReloadItem[S, I](id))
		}
	}

	return ops
}

type predecessor[I comparable] struct {
	id  I
	set bool
}

// predecessors maps every identifier of s that is also in other to the
// previous such identifier in the same section.
func predecessors[S comparable, I comparable](s Snapshot[S, I], other map[I]location[S]) map[I]predecessor[I] {
	out := make(map[I]predecessor[I], len(s.index))
	for _, section := range s.sections {
		var prev predecessor[I]
		for _, id := range s.items[section] {
			if _, ok := other[id]; !ok {
				continue
			}
			out[id] = prev
			prev = predecessor[I]{id: id, set: true}
		}
	}
	return out
}
