// Package diffable computes the ordered updates a list renderer needs to move
// from one snapshot of sectioned items to the next.
//
// A Snapshot is an immutable description of the desired list: ordered section
// keys, the ordered item identifiers of every section and a set of identifiers
// whose content changed while their identity did not (reload marks).
//
// Diff is a pure function from (applied, target) to an OperationList. The
// Reconciler wraps it with the applied state: Apply validates the target,
// diffs it against the last applied snapshot, swaps the applied state and hands
// the operations to an optional Sink in one step.
//
// Operation lists are applied in order. Indexes are positions in the
// destination at the moment the operation runs; for inserts and moves they are
// also the final positions because every earlier position is already final.
// RemoveSection detaches the items the section still holds, a later MoveItem
// can re-attach one of them, and detached items that are not re-attached are
// gone once the list has been applied. Replay implements these semantics and is
// the reference for renderers.
//
// Data flow:
//
//	Builder -> Snapshot -> Reconciler.Apply -> Diff -> Sink / OperationList
package diffable
