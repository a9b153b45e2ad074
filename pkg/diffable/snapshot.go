package diffable

import "slices"

// Snapshot is an immutable description of a sectioned list. The zero value is
// the empty snapshot. Build snapshots with a Builder.
type Snapshot[S comparable, I comparable] struct {
	id       string
	sections []S
	items    map[S][]I
	reload   map[I]struct{}
	index    map[I]location[S]
}

type location[S comparable] struct {
	section  S
	position int
}

// ID returns the identifier assigned when the snapshot was built. The empty
// snapshot has no ID.
func (s Snapshot[S, I]) ID() string {
	return s.id
}

// IsEmpty reports whether the snapshot has no sections.
func (s Snapshot[S, I]) IsEmpty() bool {
	return len(s.sections) == 0
}

// Sections returns the ordered section keys.
func (s Snapshot[S, I]) Sections() []S {
	return slices.Clone(s.sections)
}

// Items returns the ordered identifiers of section.
func (s Snapshot[S, I]) Items(section S) []I {
	return slices.Clone(s.items[section])
}

// AllItems returns every identifier in section order.
func (s Snapshot[S, I]) AllItems() []I {
	out := make([]I, 0, s.NumberOfItems())
	for _, section := range s.sections {
		out = append(out, s.items[section]...)
	}
	return out
}

// NumberOfItems counts identifiers across declared sections.
func (s Snapshot[S, I]) NumberOfItems() int {
	total := 0
	for _, section := range s.sections {
		total += len(s.items[section])
	}
	return total
}

// Contains reports whether id is part of the snapshot.
func (s Snapshot[S, I]) Contains(id I) bool {
	_, ok := s.index[id]
	return ok
}

// SectionOf returns the section holding id.
func (s Snapshot[S, I]) SectionOf(id I) (S, bool) {
	loc, ok := s.index[id]
	return loc.section, ok
}

// IndexOf returns the position of id within its section, or -1.
func (s Snapshot[S, I]) IndexOf(id I) int {
	loc, ok := s.index[id]
	if !ok {
		return -1
	}
	return loc.position
}

// ReloadSet returns the identifiers marked for reload, in item order. Marks for
// identifiers that are not part of the snapshot are left out.
func (s Snapshot[S, I]) ReloadSet() []I {
	if len(s.reload) == 0 {
		return nil
	}
	out := make([]I, 0, len(s.reload))
	for _, id := range s.AllItems() {
		if s.IsReloaded(id) {
			out = append(out, id)
		}
	}
	return out
}

// IsReloaded reports whether id carries a reload mark.
func (s Snapshot[S, I]) IsReloaded(id I) bool {
	_, ok := s.reload[id]
	return ok
}

// Builder returns a builder seeded with the sections and items of s. Reload
// marks are not carried over; they belong to one application.
func (s Snapshot[S, I]) Builder() *Builder[S, I] {
	b := NewBuilder[S, I]()
	b.sections = slices.Clone(s.sections)
	for section, items := range s.items {
		b.items[section] = slices.Clone(items)
	}
	return b
}

// Validate checks the structural invariants: distinct sections, items only in
// declared sections, and every identifier at most once in at most one section.
func (s Snapshot[S, I]) Validate() error {
	declared := make(map[S]struct{}, len(s.sections))
	for _, section := range s.sections {
		if _, dup := declared[section]; dup {
			return &SnapshotError{Kind: DuplicateSection, Section: section}
		}
		declared[section] = struct{}{}
	}
	for section := range s.items {
		if _, ok := declared[section]; !ok {
			return &SnapshotError{Kind: UndeclaredSection, Section: section}
		}
	}

	seen := make(map[I]S, s.NumberOfItems())
	for _, section := range s.sections {
		for _, id := range s.items[section] {
			owner, dup := seen[id]
			if !dup {
				seen[id] = section
				continue
			}
			if owner == section {
				return &SnapshotError{Kind: DuplicateItem, Section: section, Item: id}
			}
			return &SnapshotError{Kind: ItemInMultipleSections, Section: section, Item: id}
		}
	}
	return nil
}

func indexItems[S comparable, I comparable](sections []S, items map[S][]I) map[I]location[S] {
	index := make(map[I]location[S])
	for _, section := range sections {
		for position, id := range items[section] {
			if _, ok := index[id]; ok {
				continue
			}
			index[id] = location[S]{section: section, position: position}
		}
	}
	return index
}
