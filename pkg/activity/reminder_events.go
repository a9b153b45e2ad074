package activity

import (
	"strings"
	"time"
)

// Verbs emitted by the reminder list.
const (
	VerbReminderCreated   = "reminder.created"
	VerbReminderUpdated   = "reminder.updated"
	VerbReminderDeleted   = "reminder.deleted"
	VerbReminderCompleted = "reminder.completed"
	VerbReminderReopened  = "reminder.reopened"
	VerbSnapshotApplied   = "snapshot.applied"
)

// Object types carried by reminder events.
const (
	ObjectReminder = "reminder"
	ObjectSnapshot = "snapshot"
)

// ReminderEventInput holds the fields shared by reminder lifecycle events.
type ReminderEventInput struct {
	ActorID    string
	UserID     string
	TenantID   string
	ReminderID string
	Title      string
	Channel    string
	// Changed lists the fields an update touched.
	Changed    []string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildReminderCreatedEvent describes a newly added reminder.
func BuildReminderCreatedEvent(input ReminderEventInput) Event {
	return buildReminderEvent(VerbReminderCreated, input)
}

// BuildReminderUpdatedEvent describes an edited reminder.
func BuildReminderUpdatedEvent(input ReminderEventInput) Event {
	return buildReminderEvent(VerbReminderUpdated, input)
}

// BuildReminderDeletedEvent describes a removed reminder.
func BuildReminderDeletedEvent(input ReminderEventInput) Event {
	return buildReminderEvent(VerbReminderDeleted, input)
}

// BuildReminderCompletionEvent describes a completion toggle. The verb follows
// the new state.
func BuildReminderCompletionEvent(input ReminderEventInput, complete bool) Event {
	if complete {
		return buildReminderEvent(VerbReminderCompleted, input)
	}
	return buildReminderEvent(VerbReminderReopened, input)
}

func buildReminderEvent(verb string, input ReminderEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if title := strings.TrimSpace(input.Title); title != "" {
		metadata = ensureMetadata(metadata)
		metadata["title"] = title
	}
	if len(input.Changed) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["changed"] = append([]string{}, input.Changed...)
	}
	return Event{
		Verb:       verb,
		ActorID:    strings.TrimSpace(input.ActorID),
		UserID:     strings.TrimSpace(input.UserID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectReminder,
		ObjectID:   strings.TrimSpace(input.ReminderID),
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

// SnapshotEventInput describes a snapshot applied to the visible list.
type SnapshotEventInput struct {
	ActorID    string
	SnapshotID string
	ListStyle  string
	Items      int
	// Operations counts emitted operations by kind name.
	Operations map[string]int
	Channel    string
	OccurredAt time.Time
}

// BuildSnapshotAppliedEvent describes a reconciled snapshot. Events for
// snapshots without an ID fall back to the list style as object ID.
func BuildSnapshotAppliedEvent(input SnapshotEventInput) Event {
	metadata := map[string]any{"items": input.Items}
	if input.ListStyle != "" {
		metadata["list_style"] = input.ListStyle
	}
	total := 0
	for kind, n := range input.Operations {
		metadata["ops_"+kind] = n
		total += n
	}
	metadata["operations"] = total

	objectID := strings.TrimSpace(input.SnapshotID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.ListStyle)
	}
	if objectID == "" {
		objectID = ObjectSnapshot
	}
	return Event{
		Verb:       VerbSnapshotApplied,
		ActorID:    strings.TrimSpace(input.ActorID),
		ObjectType: ObjectSnapshot,
		ObjectID:   objectID,
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
