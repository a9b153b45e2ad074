package today

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-today/pkg/activity"
	"github.com/goliatone/go-today/pkg/diffable"
	"github.com/goliatone/go-today/pkg/store"
	"github.com/google/uuid"
)

// ListSection is the only section of the reminder list.
const ListSection = 0

// ReminderList owns the reminders and the snapshot a renderer shows for them.
//
// The store is the source of truth. Every mutation rebuilds the target
// snapshot and reconciles it; when that fails (a rule erroring on some
// reminder) the mutation stays in the store, the applied snapshot is left as
// it was and the error is returned.
type ReminderList struct {
	mu         sync.Mutex
	cfg        listConfig
	store      *store.Store[string, Reminder]
	reconciler *diffable.Reconciler[int, string]
	emitter    *activity.Emitter
	evaluator  Evaluator
	style      ListStyle
	filter     string
	rule       CompiledRule
}

// NewReminderList seeds a list with reminders. Nothing is reconciled until
// the first UpdateSnapshot.
func NewReminderList(reminders []Reminder, opts ...Option) (*ReminderList, error) {
	cfg := applyOptions(opts)
	records, err := store.New(reminderKey, reminders...)
	if err != nil {
		return nil, err
	}
	l := &ReminderList{
		cfg:   cfg,
		store: records,
		reconciler: diffable.NewReconciler(
			diffable.WithSink(cfg.sink),
			diffable.WithLogger[int, string](cfg.reconcilerLogger),
		),
		emitter:   activity.NewEmitter(cfg.activityHooks, cfg.activityConfig),
		evaluator: cfg.evaluatorOrDefault(),
		style:     cfg.style,
	}
	if cfg.filter != "" {
		rule, err := l.compile(cfg.filter)
		if err != nil {
			return nil, err
		}
		l.filter, l.rule = cfg.filter, rule
	}
	return l, nil
}

// UpdateSnapshot reconciles the visible reminders, marking reloading for
// content refresh.
func (l *ReminderList) UpdateSnapshot(ctx context.Context, reloading ...string) (diffable.OperationList[int, string], error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.updateSnapshot(ctx, reloading...)
}

func (l *ReminderList) updateSnapshot(ctx context.Context, reloading ...string) (diffable.OperationList[int, string], error) {
	ids, err := l.visibleIDs(l.cfg.clock())
	if err != nil {
		return nil, err
	}
	target := diffable.NewBuilder[int, string]().
		AppendSections(ListSection).
		AppendItems(ListSection, ids...).
		ReloadItems(reloading...).
		Snapshot()
	ops, err := l.reconciler.Apply(target)
	if err != nil {
		return nil, err
	}
	if !ops.IsEmpty() {
		counts := make(map[string]int)
		for kind, n := range ops.Counts() {
			counts[kind.String()] = n
		}
		l.emit(ctx, activity.BuildSnapshotAppliedEvent(activity.SnapshotEventInput{
			SnapshotID: target.ID(),
			ListStyle:  l.style.Name(),
			Items:      len(ids),
			Operations: counts,
			OccurredAt: l.cfg.clock(),
		}))
	}
	return ops, nil
}

func (l *ReminderList) visibleIDs(now time.Time) ([]string, error) {
	var ids []string
	engine := evaluatorEngineName(l.evaluator)
	for _, reminder := range l.store.All() {
		if !l.style.ShouldInclude(reminder.DueDate, now) {
			continue
		}
		if l.rule != nil {
			start := time.Now()
			matched, err := evaluateBool(l.rule, RuleContext{Reminder: reminder, Now: now})
			err = wrapEvaluationError(engine, l.filter, reminder.ID, err)
			l.cfg.evaluatorLogger.LogEvaluation(EvaluatorLogEvent{
				Engine:     engine,
				Expr:       l.filter,
				ReminderID: reminder.ID,
				Duration:   time.Since(start),
				Matched:    matched,
				Err:        err,
			})
			if err != nil {
				return nil, err
			}
			if !matched {
				continue
			}
		}
		ids = append(ids, reminder.ID)
	}
	return ids, nil
}

func (l *ReminderList) compile(expression string) (CompiledRule, error) {
	if l.evaluator == nil {
		return nil, ErrNoEvaluator
	}
	rule, err := l.evaluator.Compile(expression)
	if err != nil {
		return nil, wrapEvaluationError(evaluatorEngineName(l.evaluator), expression, "", err)
	}
	return rule, nil
}

// Reminder returns the reminder stored under id.
func (l *ReminderList) Reminder(id string) (Reminder, error) {
	return l.store.Find(id)
}

// Reminders returns every stored reminder, visible or not.
func (l *ReminderList) Reminders() []Reminder {
	return l.store.All()
}

// Add appends reminder, assigning an identifier when it has none.
func (l *ReminderList) Add(ctx context.Context, reminder Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.NewString()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Append(reminder); err != nil {
		return err
	}
	l.emit(ctx, activity.BuildReminderCreatedEvent(l.eventInput(reminder, nil)))
	_, err := l.updateSnapshot(ctx)
	return err
}

// Update replaces the stored reminder with the same identifier and reloads
// it.
func (l *ReminderList) Update(ctx context.Context, reminder Reminder) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	previous, err := l.store.Find(reminder.ID)
	if err != nil {
		return err
	}
	if err := l.store.Update(reminder); err != nil {
		return err
	}
	if changed := previous.changedFields(reminder); len(changed) > 0 {
		l.emit(ctx, activity.BuildReminderUpdatedEvent(l.eventInput(reminder, changed)))
	}
	_, err = l.updateSnapshot(ctx, reminder.ID)
	return err
}

// Delete removes the reminder stored under id.
func (l *ReminderList) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	reminder, err := l.store.Find(id)
	if err != nil {
		return err
	}
	if err := l.store.Remove(id); err != nil {
		return err
	}
	l.emit(ctx, activity.BuildReminderDeletedEvent(l.eventInput(reminder, nil)))
	_, err = l.updateSnapshot(ctx)
	return err
}

// ToggleComplete flips IsComplete of the reminder stored under id and
// reloads it.
func (l *ReminderList) ToggleComplete(ctx context.Context, id string) (Reminder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	reminder, err := l.store.Mutate(id, func(r *Reminder) error {
		r.IsComplete = !r.IsComplete
		return nil
	})
	if err != nil {
		return Reminder{}, err
	}
	l.emit(ctx, activity.BuildReminderCompletionEvent(l.eventInput(reminder, []string{"is_complete"}), reminder.IsComplete))
	_, err = l.updateSnapshot(ctx, id)
	return reminder, err
}

// SetListStyle switches the style and reconciles. A failed reconciliation
// restores the previous style.
func (l *ReminderList) SetListStyle(ctx context.Context, style ListStyle) (diffable.OperationList[int, string], error) {
	if style < ListStyleToday || style > ListStyleAll {
		return nil, fmt.Errorf("%w: %d", ErrUnknownListStyle, int(style))
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	previous := l.style
	l.style = style
	ops, err := l.updateSnapshot(ctx)
	if err != nil {
		l.style = previous
		return nil, err
	}
	return ops, nil
}

// SetFilter installs a rule every visible reminder must satisfy. An empty
// expression removes the filter. Compile or evaluation failures leave the
// previous filter in place.
func (l *ReminderList) SetFilter(ctx context.Context, expression string) (diffable.OperationList[int, string], error) {
	var rule CompiledRule
	if expression != "" {
		var err error
		if rule, err = l.compile(expression); err != nil {
			return nil, err
		}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	previousFilter, previousRule := l.filter, l.rule
	l.filter, l.rule = expression, rule
	ops, err := l.updateSnapshot(ctx)
	if err != nil {
		l.filter, l.rule = previousFilter, previousRule
		return nil, err
	}
	return ops, nil
}

// ListStyle returns the active style.
func (l *ReminderList) ListStyle() ListStyle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.style
}

// Filter returns the active rule expression.
func (l *ReminderList) Filter() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filter
}

// CurrentSnapshot returns the last reconciled snapshot.
func (l *ReminderList) CurrentSnapshot() diffable.Snapshot[int, string] {
	return l.reconciler.Current()
}

// Visible returns the reminders of the current snapshot in display order.
func (l *ReminderList) Visible() []Reminder {
	ids := l.reconciler.Current().Items(ListSection)
	out := make([]Reminder, 0, len(ids))
	for _, id := range ids {
		if reminder, err := l.store.Find(id); err == nil {
			out = append(out, reminder)
		}
	}
	return out
}

// Progress is the completed share of the visible reminders, between 0 and 1.
func (l *ReminderList) Progress() float64 {
	visible := l.Visible()
	if len(visible) == 0 {
		return 0
	}
	completed := 0
	for _, reminder := range visible {
		if reminder.IsComplete {
			completed++
		}
	}
	return float64(completed) / float64(len(visible))
}

// Editor opens the detail editor of the reminder stored under id. Finished
// edits are written back with Update.
func (l *ReminderList) Editor(id string, opts ...EditorOption) (*Editor, error) {
	reminder, err := l.store.Find(id)
	if err != nil {
		return nil, err
	}
	opts = append([]EditorOption{WithEditorClock(l.cfg.clock)}, opts...)
	return NewEditor(reminder, ReminderSinkFunc(l.Update), opts...), nil
}

// NewReminderEditor opens an editor for a blank reminder due now. Finishing
// the edit adds it to the list; cancelling discards it.
func (l *ReminderList) NewReminderEditor(opts ...EditorOption) *Editor {
	reminder := NewReminder("", l.cfg.clock())
	opts = append([]EditorOption{WithEditorClock(l.cfg.clock), AsNewReminder()}, opts...)
	return NewEditor(reminder, ReminderSinkFunc(l.Add), opts...)
}

func (l *ReminderList) eventInput(reminder Reminder, changed []string) activity.ReminderEventInput {
	return activity.ReminderEventInput{
		ReminderID: reminder.ID,
		Title:      reminder.Title,
		Changed:    changed,
		OccurredAt: l.cfg.clock(),
	}
}

func (l *ReminderList) emit(ctx context.Context, event activity.Event) {
	if err := l.emitter.Emit(ctx, event); err != nil {
		l.cfg.logger.WarnContext(ctx, "today: activity hook failed",
			"verb", event.Verb,
			"object_id", event.ObjectID,
			"error", err,
		)
	}
}
