package usersink

import (
	"context"
	"maps"
	"strings"
	"time"

	"github.com/goliatone/go-today/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook records reminder activity through a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink
	// Tenant is used when an event carries no tenant of its own.
	Tenant uuid.UUID
}

// Notify converts event into an ActivityRecord and logs it. Events without a
// verb or object are ignored.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	normalized := activity.NormalizeEvent(event)
	if !normalized.Valid() {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return h.Sink.Log(ctx, h.record(normalized))
}

func (h Hook) record(event activity.Event) usertypes.ActivityRecord {
	record := usertypes.ActivityRecord{
		ActorID:    parseUUID(event.ActorID),
		UserID:     parseUUID(event.UserID),
		TenantID:   parseUUID(event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		OccurredAt: event.OccurredAt,
	}
	if record.TenantID == uuid.Nil {
		record.TenantID = h.Tenant
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now()
	}
	if len(event.Metadata) > 0 {
		record.Data = maps.Clone(event.Metadata)
	}
	return record
}

func parseUUID(input string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(input))
	if err != nil {
		return uuid.Nil
	}
	return id
}
