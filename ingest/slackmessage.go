package ingest

import (
	"context"

	"github.com/slack-go/slack/slackevents"

	"punchdeck.com/punchdeck/model"
)

// HandleMessageEvent routes a channel message lifecycle event into the
// store. Punches are keyed on the message ts: unlike client_msg_id, the
// ts is carried by the original message, its edits (on the nested
// message), and its deletion (deleted_ts), so all three events resolve
// to the same stored row. Returns the recorded kind for new punches.
func HandleMessageEvent(ctx context.Context, st EventStore, msg *slackevents.MessageEvent) (model.EventType, bool, error) {
	switch msg.SubType {
	case "":
		ts, err := ParseSlackTimestamp(msg.TimeStamp)
		if err != nil {
			return "", false, err
		}
		return RecordMessage(ctx, st, Message{
			UserID:     msg.User,
			ExternalID: msg.TimeStamp,
			Text:       msg.Text,
			Timestamp:  ts,
		})

	case "message_changed":
		if msg.Message == nil {
			return "", false, nil
		}
		edited := msg.Message
		ts, err := ParseSlackTimestamp(edited.Timestamp)
		if err != nil {
			return "", false, err
		}
		return "", false, ApplyMessageEdit(ctx, st, Message{
			UserID:     edited.User,
			ExternalID: edited.Timestamp,
			Text:       edited.Text,
			Timestamp:  ts,
		})

	case "message_deleted":
		return "", false, ApplyMessageDelete(ctx, st, msg.DeletedTimeStamp)
	}

	return "", false, nil
}
