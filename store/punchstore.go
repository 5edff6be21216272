package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"punchdeck.com/punchdeck/core"
	"punchdeck.com/punchdeck/model"
)

// EventUpdate carries the mutable fields of a punch event. Nil fields
// are left untouched.
type EventUpdate struct {
	EventType *model.EventType
	Timestamp *time.Time
	RawText   *string
}

// PunchStore is the storage collaborator for punch events. All lookups
// for edit and delete go through the external id, which carries a
// unique index so re-delivered events cannot duplicate.
type PunchStore struct {
	Dm *core.DatabaseManager
}

func NewPunchStore(dm *core.DatabaseManager) *PunchStore {
	return &PunchStore{Dm: dm}
}

// FetchEventsInRange returns events with timestamp in [start, end],
// ordered ascending.
func (s *PunchStore) FetchEventsInRange(ctx context.Context, start, end time.Time) ([]model.PunchEvent, error) {
	var events []model.PunchEvent
	err := s.Dm.Exec(ctx, func(db *gorm.DB) error {
		return db.
			Where("timestamp >= ? AND timestamp <= ?", start, end).
			Order("timestamp ASC").
			Find(&events).Error
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// FindEventByExternalID returns nil without error when no event exists.
func (s *PunchStore) FindEventByExternalID(ctx context.Context, externalID string) (*model.PunchEvent, error) {
	var event model.PunchEvent
	err := s.Dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Where("external_id = ?", externalID).First(&event).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// InsertEvent creates the event. A conflict on external id is a no-op,
// making webhook re-delivery idempotent.
func (s *PunchStore) InsertEvent(ctx context.Context, event model.PunchEvent) (*model.PunchEvent, error) {
	err := s.Dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).Create(&event).Error
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent applies the non-nil fields to the event with the given
// external id. Returns nil when no such event exists.
func (s *PunchStore) UpdateEvent(ctx context.Context, externalID string, fields EventUpdate) (*model.PunchEvent, error) {
	updates := map[string]interface{}{}
	if fields.EventType != nil {
		updates["event_type"] = *fields.EventType
	}
	if fields.Timestamp != nil {
		updates["timestamp"] = *fields.Timestamp
	}
	if fields.RawText != nil {
		updates["raw_text"] = *fields.RawText
	}

	var event *model.PunchEvent
	err := s.Dm.Exec(ctx, func(db *gorm.DB) error {
		if len(updates) > 0 {
			result := db.Model(&model.PunchEvent{}).
				Where("external_id = ?", externalID).
				Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return nil
			}
		}
		var found model.PunchEvent
		if err := db.Where("external_id = ?", externalID).First(&found).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		event = &found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes the event with the given external id, returning
// the deleted row, or nil when nothing was stored for that id.
func (s *PunchStore) DeleteEvent(ctx context.Context, externalID string) (*model.PunchEvent, error) {
	var event *model.PunchEvent
	err := s.Dm.Exec(ctx, func(db *gorm.DB) error {
		var found model.PunchEvent
		if err := db.Where("external_id = ?", externalID).First(&found).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := db.Where("external_id = ?", externalID).Delete(&model.PunchEvent{}).Error; err != nil {
			return err
		}
		event = &found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// FetchMostRecentEvent returns the newest event by id, or nil when the
// table is empty. Used by the presentation layer for change polling.
func (s *PunchStore) FetchMostRecentEvent(ctx context.Context) (*model.PunchEvent, error) {
	var event model.PunchEvent
	err := s.Dm.Exec(ctx, func(db *gorm.DB) error {
		return db.Order("id DESC").First(&event).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}
