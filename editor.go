package today

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-today/internal/hydrate"
	"github.com/goliatone/go-today/pkg/diffable"
)

// ReminderSink receives the reminder an editor finished editing.
type ReminderSink interface {
	SaveReminder(ctx context.Context, reminder Reminder) error
}

// ReminderSinkFunc adapts a function to ReminderSink.
type ReminderSinkFunc func(ctx context.Context, reminder Reminder) error

// SaveReminder implements ReminderSink.
func (f ReminderSinkFunc) SaveReminder(ctx context.Context, reminder Reminder) error {
	if f == nil {
		return nil
	}
	return f(ctx, reminder)
}

// ReminderPatch holds the fields an edit payload sets. Nil fields are left
// alone.
type ReminderPatch struct {
	Title   *string    `json:"title,omitempty"`
	DueDate *time.Time `json:"due_date,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
}

func (p ReminderPatch) apply(r *Reminder) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.DueDate != nil {
		r.DueDate = *p.DueDate
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithEditorClock replaces time.Now for day text.
func WithEditorClock(clock func() time.Time) EditorOption {
	return func(e *Editor) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// AsNewReminder opens the editor in edit mode for a reminder that is not in
// any list yet. Finishing the edit always publishes it.
func AsNewReminder() EditorOption {
	return func(e *Editor) {
		e.adding = true
	}
}

// WithRowSink forwards the editor's row operations to a renderer.
func WithRowSink(sink diffable.Sink[Section, Row]) EditorOption {
	return func(e *Editor) {
		e.rowSink = sink
	}
}

// WithRowLogger records the editor's snapshot applications.
func WithRowLogger(logger diffable.Logger) EditorOption {
	return func(e *Editor) {
		e.rowLogger = logger
	}
}

// Editor is the detail view model of one reminder. It shows the reminder in a
// view section and, while editing, a working copy split over title, date and
// notes sections.
type Editor struct {
	mu         sync.Mutex
	reminder   Reminder
	working    Reminder
	editing    bool
	adding     bool
	sink       ReminderSink
	clock      func() time.Time
	rowSink    diffable.Sink[Section, Row]
	rowLogger  diffable.Logger
	reconciler *diffable.Reconciler[Section, Row]
	decoder    *hydrate.Decoder[ReminderPatch]
}

// NewEditor returns an editor for reminder that publishes finished edits to
// sink. Call Open to reconcile the first snapshot.
func NewEditor(reminder Reminder, sink ReminderSink, opts ...EditorOption) *Editor {
	e := &Editor{
		reminder: reminder,
		working:  reminder,
		sink:     sink,
		clock:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.editing = e.adding
	e.reconciler = diffable.NewReconciler(
		diffable.WithSink(e.rowSink),
		diffable.WithLogger[Section, Row](e.rowLogger),
	)
	e.decoder = newPatchDecoder()
	return e
}

// Title is the navigation title of the editor.
func (e *Editor) Title() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.adding {
		return "Add Reminder"
	}
	return "Reminder"
}

// Reminder returns the published reminder.
func (e *Editor) Reminder() Reminder {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reminder
}

// Working returns the copy being edited.
func (e *Editor) Working() Reminder {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.working
}

// IsEditing reports whether the editor shows the editing sections.
func (e *Editor) IsEditing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.editing
}

// CurrentSnapshot returns the last reconciled row snapshot.
func (e *Editor) CurrentSnapshot() diffable.Snapshot[Section, Row] {
	return e.reconciler.Current()
}

// Open reconciles the snapshot of the current mode.
func (e *Editor) Open() (diffable.OperationList[Section, Row], error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.apply()
}

// SetEditing enters or leaves edit mode. Entering starts a working copy of
// the reminder. Leaving publishes the working copy through the sink when it
// changed, or always for a new reminder; a sink error keeps the editor in
// edit mode.
func (e *Editor) SetEditing(ctx context.Context, editing bool) (diffable.OperationList[Section, Row], error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case editing && !e.editing:
		e.working = e.reminder
	case !editing && e.editing:
		if e.adding || len(e.reminder.changedFields(e.working)) > 0 {
			if e.sink != nil {
				if err := e.sink.SaveReminder(ctx, e.working); err != nil {
					return nil, err
				}
			}
			e.reminder = e.working
			e.adding = false
		}
	}
	e.editing = editing
	return e.apply()
}

// Cancel leaves edit mode and drops the working copy.
func (e *Editor) Cancel() (diffable.OperationList[Section, Row], error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.working = e.reminder
	e.editing = false
	return e.apply()
}

// ApplyChanges decodes an edit payload keyed by the Field constants and
// applies it to the working copy. Rows are not reconciled until the mode
// changes, matching how inputs keep focus while typing.
func (e *Editor) ApplyChanges(payload map[string]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.editing {
		return ErrNotEditing
	}
	mode := "edit"
	if e.adding {
		mode = "add"
	}
	patch, err := e.decoder.Decode(hydrate.Context{ReminderID: e.reminder.ID, Mode: mode}, payload)
	if err != nil {
		return err
	}
	patch.apply(&e.working)
	return nil
}

// ContentConfiguration describes how the renderer should draw row within
// section. Rows of the view section read from the published reminder;
// editable rows carry their own value.
func (e *Editor) ContentConfiguration(section Section, row Row) (Content, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case section == SectionView:
		return DefaultContent{
			Text:      e.text(row),
			ImageName: row.ImageName(),
			TextStyle: row.TextStyle(),
		}, nil
	case row.Kind == RowHeader:
		return DefaultContent{Text: row.Text}, nil
	case section == SectionTitle && row.Kind == RowEditableText:
		return TextFieldContent{Field: FieldTitle, Text: row.Text}, nil
	case section == SectionDate && row.Kind == RowEditableDate:
		return DatePickerContent{Field: FieldDueDate, Date: row.Date}, nil
	case section == SectionNotes && row.Kind == RowEditableText:
		return TextViewContent{Field: FieldNotes, Text: row.Text}, nil
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrUnexpectedRow, section, row)
}

func (e *Editor) text(row Row) string {
	switch row.Kind {
	case RowTitle:
		return e.reminder.Title
	case RowDate:
		return DayText(e.reminder.DueDate, e.clock())
	case RowTime:
		return TimeText(e.reminder.DueDate)
	case RowNotes:
		return e.reminder.Notes
	default:
		return ""
	}
}

func (e *Editor) apply() (diffable.OperationList[Section, Row], error) {
	builder := diffable.NewBuilder[Section, Row]()
	if e.editing {
		builder.
			AppendSections(SectionTitle, SectionDate, SectionNotes).
			AppendItems(SectionTitle, HeaderRow(SectionTitle.Name()), EditableTextRow(SectionTitle, e.working.Title)).
			AppendItems(SectionDate, HeaderRow(SectionDate.Name()), EditableDateRow(e.working.DueDate)).
			AppendItems(SectionNotes, HeaderRow(SectionNotes.Name()), EditableTextRow(SectionNotes, e.working.Notes))
	} else {
		builder.
			AppendSections(SectionView).
			AppendItems(SectionView, TitleRow(), DateRow(), TimeRow(), NotesRow())
	}
	return e.reconciler.Apply(builder.Snapshot())
}

func newPatchDecoder() *hydrate.Decoder[ReminderPatch] {
	return hydrate.NewDecoder(
		hydrate.WithPreHook[ReminderPatch](normalizePatchPayload),
		hydrate.WithDisallowUnknownFields[ReminderPatch](),
		hydrate.WithPostHook[ReminderPatch](trimPatchTitle),
	)
}

// normalizePatchPayload accepts camelCase keys and unix seconds for dates.
func normalizePatchPayload(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	for from, to := range map[string]string{"dueDate": FieldDueDate, "date": FieldDueDate} {
		if value, ok := payload[from]; ok {
			delete(payload, from)
			payload[to] = value
		}
	}
	if seconds, ok := unixSeconds(payload[FieldDueDate]); ok {
		payload[FieldDueDate] = time.Unix(seconds, 0).UTC().Format(time.RFC3339)
	}
	return payload, nil
}

func unixSeconds(value any) (int64, bool) {
	switch v := value.(type) {
	case float64:
		return int64(v), true
	case float32:
		return int64(v), true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint32:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func trimPatchTitle(_ hydrate.Context, patch *ReminderPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}
	return nil
}
