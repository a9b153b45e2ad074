package diffable

import (
	"slices"

	"github.com/google/uuid"
)

// Builder assembles a Snapshot. Methods record what they are given without
// failing; Build (or Reconciler.Apply) reports invariant violations.
type Builder[S comparable, I comparable] struct {
	sections []S
	items    map[S][]I
	reload   map[I]struct{}
}

// NewBuilder returns an empty builder.
func NewBuilder[S comparable, I comparable]() *Builder[S, I] {
	return &Builder[S, I]{
		items:  map[S][]I{},
		reload: map[I]struct{}{},
	}
}

// AppendSections adds sections after the existing ones.
func (b *Builder[S, I]) AppendSections(sections ...S) *Builder[S, I] {
	b.sections = append(b.sections, sections...)
	return b
}

// AppendItems adds items at the end of section.
func (b *Builder[S, I]) AppendItems(section S, items ...I) *Builder[S, I] {
	b.items[section] = append(b.items[section], items...)
	return b
}

// InsertItemsBefore places items directly ahead of before, in the section that
// holds it. Nothing is added when before is not in the builder.
func (b *Builder[S, I]) InsertItemsBefore(before I, items ...I) *Builder[S, I] {
	for section, ids := range b.items {
		if i := slices.Index(ids, before); i >= 0 {
			b.items[section] = slices.Insert(ids, i, items...)
			return b
		}
	}
	return b
}

// DeleteItems removes every occurrence of the given identifiers.
func (b *Builder[S, I]) DeleteItems(ids ...I) *Builder[S, I] {
	if len(ids) == 0 {
		return b
	}
	drop := make(map[I]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
		delete(b.reload, id)
	}
	for section, items := range b.items {
		b.items[section] = slices.DeleteFunc(items, func(id I) bool {
			_, ok := drop[id]
			return ok
		})
	}
	return b
}

// DeleteSections removes sections together with their items.
func (b *Builder[S, I]) DeleteSections(sections ...S) *Builder[S, I] {
	for _, section := range sections {
		b.sections = slices.DeleteFunc(b.sections, func(s S) bool { return s == section })
		for _, id := range b.items[section] {
			delete(b.reload, id)
		}
		delete(b.items, section)
	}
	return b
}

// ReloadItems marks identifiers whose content changed.
func (b *Builder[S, I]) ReloadItems(ids ...I) *Builder[S, I] {
	for _, id := range ids {
		b.reload[id] = struct{}{}
	}
	return b
}

// Snapshot returns the snapshot described so far without validating it.
func (b *Builder[S, I]) Snapshot() Snapshot[S, I] {
	sections := slices.Clone(b.sections)
	items := make(map[S][]I, len(b.items))
	for section, ids := range b.items {
		if len(ids) == 0 && !slices.Contains(sections, section) {
			continue
		}
		items[section] = slices.Clone(ids)
	}
	reload := make(map[I]struct{}, len(b.reload))
	for id := range b.reload {
		reload[id] = struct{}{}
	}
	return Snapshot[S, I]{
		id:       uuid.NewString(),
		sections: sections,
		items:    items,
		reload:   reload,
		index:    indexItems(sections, items),
	}
}

// Build returns the snapshot once it passes Validate.
func (b *Builder[S, I]) Build() (Snapshot[S, I], error) {
	snapshot := b.Snapshot()
	if err := snapshot.Validate(); err != nil {
		return Snapshot[S, I]{}, err
	}
	return snapshot, nil
}
