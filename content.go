package today

import "time"

// Field names used by editable contents and accepted by Editor.ApplyChanges.
const (
	FieldTitle   = "title"
	FieldDueDate = "due_date"
	FieldNotes   = "notes"
)

// Content is the configuration a renderer needs for one editor row. The set
// of variants is closed; use a ContentVisitor or a type switch.
type Content interface {
	Accept(v ContentVisitor)
	content()
}

// ContentVisitor handles every Content variant.
type ContentVisitor interface {
	VisitDefault(DefaultContent)
	VisitTextField(TextFieldContent)
	VisitTextView(TextViewContent)
	VisitDatePicker(DatePickerContent)
}

// DefaultContent is a read-only text row, optionally with an image.
type DefaultContent struct {
	Text      string
	ImageName string
	TextStyle string
}

// TextFieldContent is a single line text input.
type TextFieldContent struct {
	Field string
	Text  string
}

// TextViewContent is a multi-line text input.
type TextViewContent struct {
	Field string
	Text  string
}

// DatePickerContent is a date and time input.
type DatePickerContent struct {
	Field string
	Date  time.Time
}

func (c DefaultContent) Accept(v ContentVisitor)    { v.VisitDefault(c) }
func (c TextFieldContent) Accept(v ContentVisitor)  { v.VisitTextField(c) }
func (c TextViewContent) Accept(v ContentVisitor)   { v.VisitTextView(c) }
func (c DatePickerContent) Accept(v ContentVisitor) { v.VisitDatePicker(c) }

func (DefaultContent) content()    {}
func (TextFieldContent) content()  {}
func (TextViewContent) content()   {}
func (DatePickerContent) content() {}
