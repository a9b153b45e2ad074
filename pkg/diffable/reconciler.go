package diffable

import (
	"sync"
	"sync/atomic"
	"time"
)

// Sink receives every applied snapshot together with the operations that lead
// to it. Sinks are called while the reconciler holds its lock and must not call
// back into Apply.
type Sink[S comparable, I comparable] interface {
	ApplyOperations(snapshot Snapshot[S, I], ops OperationList[S, I])
}

// SinkFunc adapts a function to Sink.
type SinkFunc[S comparable, I comparable] func(snapshot Snapshot[S, I], ops OperationList[S, I])

// ApplyOperations implements Sink.
func (f SinkFunc[S, I]) ApplyOperations(snapshot Snapshot[S, I], ops OperationList[S, I]) {
	if f != nil {
		f(snapshot, ops)
	}
}

// Option configures a Reconciler.
type Option[S comparable, I comparable] func(*Reconciler[S, I])

// WithSink registers the renderer that receives operation lists.
func WithSink[S comparable, I comparable](sink Sink[S, I]) Option[S, I] {
	return func(r *Reconciler[S, I]) {
		r.sink = sink
	}
}

// WithLogger attaches a Logger. A nil logger disables logging.
func WithLogger[S comparable, I comparable](logger Logger) Option[S, I] {
	return func(r *Reconciler[S, I]) {
		if logger == nil {
			r.logger = noopLogger{}
			return
		}
		r.logger = logger
	}
}

// Reconciler holds the applied snapshot and turns new targets into operation
// lists. Apply calls are serialized; Current never observes a partially
// replaced state.
type Reconciler[S comparable, I comparable] struct {
	mu      sync.Mutex
	applied atomic.Pointer[Snapshot[S, I]]
	sink    Sink[S, I]
	logger  Logger
}

// NewReconciler returns a reconciler whose applied state is the empty snapshot.
func NewReconciler[S comparable, I comparable](opts ...Option[S, I]) *Reconciler[S, I] {
	r := &Reconciler[S, I]{logger: noopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Current returns the last applied snapshot.
func (r *Reconciler[S, I]) Current() Snapshot[S, I] {
	if current := r.applied.Load(); current != nil {
		return *current
	}
	return Snapshot[S, I]{}
}

// Apply validates target, diffs it against the applied snapshot, replaces the
// applied snapshot and forwards the operations to the sink. An invalid target
// leaves the applied state untouched.
func (r *Reconciler[S, I]) Apply(target Snapshot[S, I]) (OperationList[S, I], error) {
	start := time.Now()
	if err := target.Validate(); err != nil {
		r.logger.LogApply(ApplyLogEvent{
			SnapshotID: target.id,
			Sections:   len(target.sections),
			Duration:   time.Since(start),
			Err:        err,
		})
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ops := Diff(r.Current(), target)
	next := target
	r.applied.Store(&next)
	if r.sink != nil {
		r.sink.ApplyOperations(next, ops)
	}

	r.logger.LogApply(ApplyLogEvent{
		SnapshotID: target.id,
		Sections:   len(target.sections),
		Items:      target.NumberOfItems(),
		Operations: len(ops),
		Counts:     ops.Counts(),
		Duration:   time.Since(start),
	})
	return ops, nil
}

// Reset drops the applied state back to the empty snapshot without emitting
// operations. Renderers are expected to clear themselves.
func (r *Reconciler[S, I]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied.Store(nil)
}
