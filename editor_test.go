package today

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/goliatone/go-today/internal/hydrate"
	"github.com/goliatone/go-today/pkg/diffable"
)

type savedReminders struct {
	saved []Reminder
	err   error
}

func (s *savedReminders) SaveReminder(_ context.Context, reminder Reminder) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, reminder)
	return nil
}

func editorFixture() Reminder {
	return Reminder{
		ID:      "a",
		Title:   "Submit reimbursement report",
		DueDate: fixedNow.Add(2 * time.Hour),
		Notes:   "Don't forget about taxi receipts",
	}
}

func newTestEditor(t *testing.T, sink ReminderSink, opts ...EditorOption) *Editor {
	t.Helper()
	editor := NewEditor(editorFixture(), sink, append([]EditorOption{WithEditorClock(fixedClock)}, opts...)...)
	if _, err := editor.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	return editor
}

func TestEditorOpenShowsViewRows(t *testing.T) {
	var rendered diffable.OperationList[Section, Row]
	editor := newTestEditor(t, nil, WithRowSink(diffable.SinkFunc[Section, Row](
		func(_ diffable.Snapshot[Section, Row], ops diffable.OperationList[Section, Row]) {
			rendered = ops
		},
	)))

	want := "[insertSection(View, 0) insertItem(title, View, 0) insertItem(date, View, 1) insertItem(time, View, 2) insertItem(notes, View, 3)]"
	if got := rendered.String(); got != want {
		t.Fatalf("unexpected open operations\n got %s\nwant %s", got, want)
	}
	if editor.IsEditing() || editor.Title() != "Reminder" {
		t.Fatalf("expected view mode with Reminder title")
	}
}

func TestEditorEnterEditMode(t *testing.T) {
	editor := newTestEditor(t, nil)

	ops, err := editor.SetEditing(context.Background(), true)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if ops.Count(diffable.OpRemoveSection) != 1 || ops.Count(diffable.OpInsertSection) != 3 || ops.Count(diffable.OpInsertItem) != 6 {
		t.Fatalf("unexpected edit operations %s", ops)
	}
	if ops.Count(diffable.OpRemoveItem) != 0 {
		t.Fatalf("view rows should leave with their section, got %s", ops)
	}
	snapshot := editor.CurrentSnapshot()
	if got := snapshot.Items(SectionTitle); len(got) != 2 || got[1] != EditableTextRow(SectionTitle, "Submit reimbursement report") {
		t.Fatalf("unexpected title rows %v", got)
	}
	if got := snapshot.Items(SectionDate); got[1] != EditableDateRow(fixedNow.Add(2*time.Hour)) {
		t.Fatalf("unexpected date rows %v", got)
	}
}

func TestEditorIdenticalTitleAndNotes(t *testing.T) {
	reminder := editorFixture()
	reminder.Notes = reminder.Title
	editor := NewEditor(reminder, nil, WithEditorClock(fixedClock))
	if _, err := editor.SetEditing(context.Background(), true); err != nil {
		t.Fatalf("expected same text in two sections to be valid, got %v", err)
	}
	if editor.CurrentSnapshot().NumberOfItems() != 6 {
		t.Fatalf("expected six editing rows")
	}
}

func TestEditorContentConfiguration(t *testing.T) {
	editor := newTestEditor(t, nil)
	due := fixedNow.Add(2 * time.Hour)

	cases := []struct {
		name    string
		section Section
		row     Row
		want    Content
	}{
		{"title", SectionView, TitleRow(), DefaultContent{Text: "Submit reimbursement report", TextStyle: "headline"}},
		{"date", SectionView, DateRow(), DefaultContent{Text: "Today", ImageName: "calendar.circle", TextStyle: "subheadline"}},
		{"time", SectionView, TimeRow(), DefaultContent{Text: "12:00 PM", ImageName: "clock", TextStyle: "subheadline"}},
		{"notes", SectionView, NotesRow(), DefaultContent{Text: "Don't forget about taxi receipts", ImageName: "square.and.pencil", TextStyle: "subheadline"}},
		{"header", SectionNotes, HeaderRow("Notes"), DefaultContent{Text: "Notes"}},
		{"title field", SectionTitle, EditableTextRow(SectionTitle, "x"), TextFieldContent{Field: FieldTitle, Text: "x"}},
		{"date picker", SectionDate, EditableDateRow(due), DatePickerContent{Field: FieldDueDate, Date: due}},
		{"notes view", SectionNotes, EditableTextRow(SectionNotes, "y"), TextViewContent{Field: FieldNotes, Text: "y"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := editor.ContentConfiguration(tc.section, tc.row)
			if err != nil {
				t.Fatalf("content: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}

	if _, err := editor.ContentConfiguration(SectionTitle, NotesRow()); !errors.Is(err, ErrUnexpectedRow) {
		t.Fatalf("expected ErrUnexpectedRow, got %v", err)
	}
}

type contentKinds struct {
	seen []string
}

func (c *contentKinds) VisitDefault(DefaultContent)       { c.seen = append(c.seen, "default") }
func (c *contentKinds) VisitTextField(TextFieldContent)   { c.seen = append(c.seen, "textField") }
func (c *contentKinds) VisitTextView(TextViewContent)     { c.seen = append(c.seen, "textView") }
func (c *contentKinds) VisitDatePicker(DatePickerContent) { c.seen = append(c.seen, "datePicker") }

func TestEditorContentVisitor(t *testing.T) {
	editor := newTestEditor(t, nil)
	if _, err := editor.SetEditing(context.Background(), true); err != nil {
		t.Fatalf("edit: %v", err)
	}
	snapshot := editor.CurrentSnapshot()
	visitor := &contentKinds{}
	for _, section := range snapshot.Sections() {
		for _, row := range snapshot.Items(section) {
			content, err := editor.ContentConfiguration(section, row)
			if err != nil {
				t.Fatalf("content for %s/%s: %v", section, row, err)
			}
			content.Accept(visitor)
		}
	}
	want := []string{"default", "textField", "default", "datePicker", "default", "textView"}
	if len(visitor.seen) != len(want) {
		t.Fatalf("expected %v, got %v", want, visitor.seen)
	}
	for i := range want {
		if visitor.seen[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, visitor.seen)
		}
	}
}

func TestEditorApplyChanges(t *testing.T) {
	sink := &savedReminders{}
	editor := newTestEditor(t, sink)
	ctx := context.Background()

	if err := editor.ApplyChanges(map[string]any{"title": "x"}); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}
	if _, err := editor.SetEditing(ctx, true); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := editor.ApplyChanges(map[string]any{"priority": 1}); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}

	tomorrow := fixedNow.AddDate(0, 0, 1)
	if err := editor.ApplyChanges(map[string]any{
		"title":   "  Submit expenses ",
		"dueDate": float64(tomorrow.Unix()),
	}); err != nil {
		t.Fatalf("apply changes: %v", err)
	}
	working := editor.Working()
	if working.Title != "Submit expenses" || !working.DueDate.Equal(tomorrow) {
		t.Fatalf("unexpected working copy %+v", working)
	}
	if working.Notes != editorFixture().Notes {
		t.Fatalf("notes should be untouched, got %q", working.Notes)
	}
	if editor.Reminder().Title != editorFixture().Title {
		t.Fatalf("published reminder changed before leaving edit mode")
	}

	if _, err := editor.SetEditing(ctx, false); err != nil {
		t.Fatalf("done: %v", err)
	}
	if len(sink.saved) != 1 || sink.saved[0].Title != "Submit expenses" {
		t.Fatalf("expected one saved reminder, got %+v", sink.saved)
	}
	content, _ := editor.ContentConfiguration(SectionView, DateRow())
	if content.(DefaultContent).Text != "Thursday, May 2" {
		t.Fatalf("expected view to show the new day, got %#v", content)
	}
}

func TestEditorUnchangedEditDoesNotSave(t *testing.T) {
	sink := &savedReminders{}
	editor := newTestEditor(t, sink)
	ctx := context.Background()

	if _, err := editor.SetEditing(ctx, true); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := editor.ApplyChanges(map[string]any{"notes": editorFixture().Notes}); err != nil {
		t.Fatalf("apply changes: %v", err)
	}
	if _, err := editor.SetEditing(ctx, false); err != nil {
		t.Fatalf("done: %v", err)
	}
	if len(sink.saved) != 0 {
		t.Fatalf("expected nothing saved, got %+v", sink.saved)
	}
}

func TestEditorCancel(t *testing.T) {
	sink := &savedReminders{}
	editor := newTestEditor(t, sink)

	if _, err := editor.SetEditing(context.Background(), true); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := editor.ApplyChanges(map[string]any{"title": "Discarded"}); err != nil {
		t.Fatalf("apply changes: %v", err)
	}
	ops, err := editor.Cancel()
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if ops.Count(diffable.OpInsertSection) != 1 || ops.Count(diffable.OpRemoveSection) != 3 {
		t.Fatalf("expected return to view section, got %s", ops)
	}
	if len(sink.saved) != 0 || editor.Working().Title != editorFixture().Title {
		t.Fatalf("cancel should drop the working copy")
	}
}

func TestEditorSinkErrorKeepsEditing(t *testing.T) {
	sink := &savedReminders{err: errors.New("disk full")}
	editor := newTestEditor(t, sink)
	ctx := context.Background()

	if _, err := editor.SetEditing(ctx, true); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := editor.ApplyChanges(map[string]any{"title": "Changed"}); err != nil {
		t.Fatalf("apply changes: %v", err)
	}
	if _, err := editor.SetEditing(ctx, false); err == nil {
		t.Fatalf("expected sink error")
	}
	if !editor.IsEditing() || editor.Working().Title != "Changed" {
		t.Fatalf("expected edit mode and working copy to survive a failed save")
	}
	if editor.Reminder().Title != editorFixture().Title {
		t.Fatalf("published reminder should not change on failure")
	}
}

func TestEditorNewReminder(t *testing.T) {
	sink := &savedReminders{}
	editor := NewEditor(NewReminder("", fixedNow), sink, WithEditorClock(fixedClock), AsNewReminder())
	ctx := context.Background()

	if !editor.IsEditing() || editor.Title() != "Add Reminder" {
		t.Fatalf("expected add editor in edit mode")
	}
	if _, err := editor.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	if got := editor.CurrentSnapshot().Sections(); len(got) != 3 {
		t.Fatalf("expected editing sections, got %v", got)
	}
	if _, err := editor.SetEditing(ctx, false); err != nil {
		t.Fatalf("done: %v", err)
	}
	if len(sink.saved) != 1 {
		t.Fatalf("expected a new reminder to be saved even without edits")
	}
	if editor.Title() != "Reminder" {
		t.Fatalf("expected editor to switch to the saved reminder")
	}
}

func TestNormalizePatchPayloadAcceptsIntegerSeconds(t *testing.T) {
	want := fixedNow.Format(time.RFC3339)
	for _, value := range []any{
		float64(fixedNow.Unix()),
		int(fixedNow.Unix()),
		fixedNow.Unix(),
		json.Number(strconv.FormatInt(fixedNow.Unix(), 10)),
	} {
		payload, err := normalizePatchPayload(hydrate.Context{}, map[string]any{"dueDate": value})
		if err != nil {
			t.Fatalf("normalize %T: %v", value, err)
		}
		if payload[FieldDueDate] != want {
			t.Fatalf("expected %s for %T, got %v", want, value, payload[FieldDueDate])
		}
	}
}

func TestEditorApplyChangesIntegerDueDate(t *testing.T) {
	editor := newTestEditor(t, nil)
	if _, err := editor.SetEditing(context.Background(), true); err != nil {
		t.Fatalf("edit: %v", err)
	}
	tomorrow := fixedNow.AddDate(0, 0, 1)
	if err := editor.ApplyChanges(map[string]any{"dueDate": tomorrow.Unix()}); err != nil {
		t.Fatalf("apply changes: %v", err)
	}
	if got := editor.Working().DueDate; !got.Equal(tomorrow) {
		t.Fatalf("expected %s, got %s", tomorrow, got)
	}
}
