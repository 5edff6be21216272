package ingest

import (
	"context"
	"time"

	"punchdeck.com/punchdeck/model"
	"punchdeck.com/punchdeck/store"
	"punchdeck.com/punchdeck/utils"
)

// EventStore is the storage collaborator the ingest pipeline writes
// through. *store.PunchStore is the production implementation.
type EventStore interface {
	FindEventByExternalID(ctx context.Context, externalID string) (*model.PunchEvent, error)
	InsertEvent(ctx context.Context, event model.PunchEvent) (*model.PunchEvent, error)
	UpdateEvent(ctx context.Context, externalID string, fields store.EventUpdate) (*model.PunchEvent, error)
	DeleteEvent(ctx context.Context, externalID string) (*model.PunchEvent, error)
}

// Message is one inbound chat message, already attributed with its
// idempotency key and original send time.
type Message struct {
	UserID     string
	ExternalID string
	Text       string
	Timestamp  time.Time
}

// RecordMessage stores a new punch if the message text reads as one.
// Returns the recorded kind, or ok=false when the message carried no
// punch semantics. Re-delivery of the same external id is a no-op at
// the storage layer.
func RecordMessage(ctx context.Context, st EventStore, msg Message) (model.EventType, bool, error) {
	kind, ok := ParsePunchKind(msg.Text)
	if !ok {
		return "", false, nil
	}

	_, err := st.InsertEvent(ctx, model.PunchEvent{
		UserID:     msg.UserID,
		EventType:  kind,
		Timestamp:  msg.Timestamp,
		ExternalID: msg.ExternalID,
		RawText:    msg.Text,
	})
	if err != nil {
		return "", false, err
	}
	return kind, true, nil
}

// ApplyMessageEdit reconciles stored state with an edited source
// message. Punch text updates the stored event in place, keeping the
// original message timestamp; an edit that first introduces punch
// semantics inserts a new event at the original message time; an edit
// that removes punch semantics deletes the stored event. Replaying the
// same edit converges to the same state.
func ApplyMessageEdit(ctx context.Context, st EventStore, msg Message) error {
	kind, ok := ParsePunchKind(msg.Text)
	if !ok {
		// punch keyword removed, drop the event if one was stored
		_, err := st.DeleteEvent(ctx, msg.ExternalID)
		return err
	}

	existing, err := st.FindEventByExternalID(ctx, msg.ExternalID)
	if err != nil {
		return err
	}

	if existing == nil {
		_, err := st.InsertEvent(ctx, model.PunchEvent{
			UserID:     msg.UserID,
			EventType:  kind,
			Timestamp:  msg.Timestamp,
			ExternalID: msg.ExternalID,
			RawText:    msg.Text,
		})
		return err
	}

	_, err = st.UpdateEvent(ctx, msg.ExternalID, store.EventUpdate{
		EventType: utils.Ptr(kind),
		RawText:   utils.Ptr(msg.Text),
	})
	return err
}

// ApplyMessageDelete removes the stored event for a deleted source
// message. Unknown external ids are a benign no-op.
func ApplyMessageDelete(ctx context.Context, st EventStore, externalID string) error {
	_, err := st.DeleteEvent(ctx, externalID)
	return err
}
