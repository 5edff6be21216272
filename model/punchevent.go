package model

import "time"

type EventType string

const (
	EventIn  EventType = "IN"
	EventOut EventType = "OUT"
)

// PunchEvent is the raw record of a single clock action. ExternalID is
// the idempotency key from the event source (Slack client_msg_id, or a
// manual_<uuid> for punches entered through the API).
type PunchEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"column:user_id;type:varchar(64);not null" json:"userId"`
	EventType  EventType `gorm:"column:event_type;type:varchar(8);not null" json:"eventType"`
	Timestamp  time.Time `gorm:"column:timestamp;type:timestamp;not null;index" json:"timestamp"`
	ExternalID string    `gorm:"column:external_id;type:varchar(128);not null;uniqueIndex" json:"externalId"`
	RawText    string    `gorm:"column:raw_text;type:varchar(512)" json:"rawText"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"-"`
}

func (PunchEvent) TableName() string {
	return "punch_events"
}
