package usersink_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-today/pkg/activity"
	"github.com/goliatone/go-today/pkg/activity/usersink"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []usertypes.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsReminderEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	tenantID := uuid.New()
	reminderID := uuid.NewString()

	event := activity.BuildReminderUpdatedEvent(activity.ReminderEventInput{
		ActorID:    actorID.String(),
		TenantID:   tenantID.String(),
		ReminderID: reminderID,
		Title:      "Code review",
		Channel:    "reminders",
		Changed:    []string{"notes"},
		OccurredAt: now,
	})

	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.ActorID != actorID || record.TenantID != tenantID {
		t.Fatalf("unexpected identity: %+v", record)
	}
	if record.UserID != uuid.Nil {
		t.Fatalf("expected nil user for missing id, got %s", record.UserID)
	}
	if record.Verb != activity.VerbReminderUpdated || record.ObjectType != activity.ObjectReminder || record.ObjectID != reminderID {
		t.Fatalf("unexpected record payload: %+v", record)
	}
	if record.Channel != "reminders" || !record.OccurredAt.Equal(now) {
		t.Fatalf("unexpected channel/time: %+v", record)
	}
	if record.Data["title"] != "Code review" {
		t.Fatalf("expected metadata passthrough, got %v", record.Data)
	}
}

func TestHookNotifyUsesDefaultTenant(t *testing.T) {
	sink := &recordingSink{}
	tenant := uuid.New()
	hook := usersink.Hook{Sink: sink, Tenant: tenant}

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       activity.VerbReminderCreated,
		ObjectType: activity.ObjectReminder,
		ObjectID:   "r-1",
		TenantID:   "not-a-uuid",
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if sink.records[0].TenantID != tenant {
		t.Fatalf("expected default tenant, got %s", sink.records[0].TenantID)
	}
	if sink.records[0].OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be defaulted")
	}
}

func TestHookNotifySkipsIncompleteEvents(t *testing.T) {
	sink := &recordingSink{}
	hook := usersink.Hook{Sink: sink}

	_ = hook.Notify(context.Background(), activity.Event{})
	if len(sink.records) != 0 {
		t.Fatalf("expected no records for empty event, got %d", len(sink.records))
	}
	if err := (usersink.Hook{}).Notify(context.Background(), activity.Event{Verb: "x", ObjectType: "y", ObjectID: "z"}); err != nil {
		t.Fatalf("expected nil sink to be a no-op, got %v", err)
	}
}

func TestHookNotifyReturnsSinkError(t *testing.T) {
	boom := errors.New("boom")
	hook := usersink.Hook{Sink: &recordingSink{err: boom}}
	err := hook.Notify(context.Background(), activity.Event{
		Verb:       activity.VerbReminderDeleted,
		ObjectType: activity.ObjectReminder,
		ObjectID:   "r-1",
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
}

func TestHookSatisfiesActivityHook(t *testing.T) {
	var _ activity.ActivityHook = usersink.Hook{}
}
