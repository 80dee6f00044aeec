package usersink

import (
	"context"
	"time"

	"github.com/goliatone/go-delivery-notes/pkg/activity"
	"github.com/goliatone/go-delivery-notes/pkg/interfaces/logger"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts activity events into go-users ActivitySink records.
type Hook struct {
	Sink   types.ActivitySink
	Logger logger.Logger
}

// Notify maps the activity event into a types.ActivityRecord and forwards it.
// Sink failures are logged and never reach the storefront response.
func (h Hook) Notify(ctx context.Context, evt activity.Event) {
	if h.Sink == nil {
		return
	}
	record := types.ActivityRecord{
		ID:         uuid.New(),
		UserID:     parseUUID(evt.UserID),
		ActorID:    parseUUID(evt.ActorID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		Data:       buildData(evt),
		OccurredAt: evt.OccurredAt,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now().UTC()
	}
	if err := h.Sink.Log(ctx, record); err != nil && h.Logger != nil {
		h.Logger.Warn("activity sink rejected record",
			logger.Field{Key: "verb", Value: evt.Verb},
			logger.Field{Key: "object_id", Value: evt.ObjectID},
			logger.Err(err),
		)
	}
}

func buildData(evt activity.Event) map[string]any {
	data := activity.CloneMetadata(evt.Metadata)
	if data == nil {
		data = make(map[string]any)
	}
	// Customer ids that are not UUIDs are kept verbatim in the payload.
	if evt.ActorID != "" && parseUUID(evt.ActorID) == uuid.Nil {
		data["actor_ref"] = evt.ActorID
	}
	return data
}

func parseUUID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
