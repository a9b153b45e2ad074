package today

import (
	"fmt"
	"time"
)

// Section groups the rows of the detail editor. View is used while reading;
// Title, Date and Notes while editing.
type Section int

const (
	SectionView Section = iota
	SectionTitle
	SectionDate
	SectionNotes
)

// Name is the header text of the section. The view section has none.
func (s Section) Name() string {
	switch s {
	case SectionTitle:
		return "Title"
	case SectionDate:
		return "Date"
	case SectionNotes:
		return "Notes"
	default:
		return ""
	}
}

func (s Section) String() string {
	if s == SectionView {
		return "View"
	}
	if name := s.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("Section(%d)", int(s))
}

// RowKind tells the editor rows apart.
type RowKind int

const (
	RowHeader RowKind = iota
	RowTitle
	RowDate
	RowTime
	RowNotes
	RowEditableText
	RowEditableDate
)

// Row identifies one line of the detail editor. Rows carrying a payload
// (header text, edited text or date) are distinct identities per payload, so
// a renderer sees a changed value as a new row.
type Row struct {
	Kind    RowKind
	Section Section
	Text    string
	Date    time.Time
}

// HeaderRow labels an editing section.
func HeaderRow(text string) Row { return Row{Kind: RowHeader, Text: text} }

// TitleRow shows the reminder title.
func TitleRow() Row { return Row{Kind: RowTitle} }

// DateRow shows the due day.
func DateRow() Row { return Row{Kind: RowDate} }

// TimeRow shows the due time.
func TimeRow() Row { return Row{Kind: RowTime} }

// NotesRow shows the notes.
func NotesRow() Row { return Row{Kind: RowNotes} }

// EditableTextRow edits text within section.
func EditableTextRow(section Section, text string) Row {
	return Row{Kind: RowEditableText, Section: section, Text: text}
}

// EditableDateRow edits the due date.
func EditableDateRow(date time.Time) Row {
	return Row{Kind: RowEditableDate, Section: SectionDate, Date: date.Round(0)}
}

// ImageName is the symbol shown next to view rows.
func (r Row) ImageName() string {
	switch r.Kind {
	case RowDate:
		return "calendar.circle"
	case RowNotes:
		return "square.and.pencil"
	case RowTime:
		return "clock"
	default:
		return ""
	}
}

// TextStyle is the font style of the row text.
func (r Row) TextStyle() string {
	if r.Kind == RowTitle {
		return "headline"
	}
	return "subheadline"
}

func (r Row) String() string {
	switch r.Kind {
	case RowHeader:
		return fmt.Sprintf("header(%s)", r.Text)
	case RowTitle:
		return "title"
	case RowDate:
		return "date"
	case RowTime:
		return "time"
	case RowNotes:
		return "notes"
	case RowEditableText:
		return fmt.Sprintf("editableText(%s, %q)", r.Section, r.Text)
	case RowEditableDate:
		return fmt.Sprintf("editableDate(%s)", r.Date.Format(time.RFC3339))
	default:
		return fmt.Sprintf("row(%d)", int(r.Kind))
	}
}
