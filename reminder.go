package today

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a single entry of the list.
type Reminder struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	DueDate    time.Time `json:"due_date"`
	Notes      string    `json:"notes,omitempty"`
	IsComplete bool      `json:"is_complete"`
}

// NewReminder returns an incomplete reminder with a fresh identifier.
func NewReminder(title string, due time.Time) Reminder {
	return Reminder{
		ID:      uuid.NewString(),
		Title:   title,
		DueDate: due,
	}
}

func reminderKey(r Reminder) string { return r.ID }

// changedFields names the fields that differ between r and next.
func (r Reminder) changedFields(next Reminder) []string {
	var changed []string
	if r.Title != next.Title {
		changed = append(changed, "title")
	}
	if !r.DueDate.Equal(next.DueDate) {
		changed = append(changed, "due_date")
	}
	if r.Notes != next.Notes {
		changed = append(changed, "notes")
	}
	if r.IsComplete != next.IsComplete {
		changed = append(changed, "is_complete")
	}
	return changed
}

func (r Reminder) binding() map[string]any {
	return map[string]any{
		"id":       r.ID,
		"title":    r.Title,
		"notes":    r.Notes,
		"due":      r.DueDate,
		"complete": r.IsComplete,
	}
}

var sampleReminders = []struct {
	title    string
	offset   time.Duration
	notes    string
	complete bool
}{
	{"Submit reimbursement report", 800 * time.Second, "Don't forget about taxi receipts", false},
	{"Code review", 14000 * time.Second, "Check tech specs in shared folder", true},
	{"Pick up new contacts", 24000 * time.Second, "Optometrist closes at 6:00PM", false},
	{"Add notes to retrospective", 3200 * time.Second, "Collaborate with project manager", true},
	{"Interview new project manager candidate", 60000 * time.Second, "Review portfolio", false},
	{"Mock up onboarding experience", 72000 * time.Second, "Think different", false},
	{"Review usage analytics", 83000 * time.Second, "Discuss trends with management", false},
	{"Confirm group reservation", 92500 * time.Second, "Ask about space heaters", false},
	{"Add beta testers to TestFlight", 101000 * time.Second, "v0.9 out on Friday", false},
}

// SampleReminders returns demo data due shortly after now.
func SampleReminders(now time.Time) []Reminder {
	out := make([]Reminder, 0, len(sampleReminders))
	for _, s := range sampleReminders {
		r := NewReminder(s.title, now.Add(s.offset))
		r.Notes = s.notes
		r.IsComplete = s.complete
		out = append(out, r)
	}
	return out
}
