package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchdeck.com/punchdeck/model"
)

func punch(id uint, kind model.EventType, ts time.Time) model.PunchEvent {
	return model.PunchEvent{
		ID:         id,
		UserID:     "U123",
		EventType:  kind,
		Timestamp:  ts,
		ExternalID: "ext-" + string(rune('0'+id)),
		RawText:    string(kind),
	}
}

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func TestReconcileSimplePair(t *testing.T) {
	sessions := Reconcile([]model.PunchEvent{
		punch(1, model.EventIn, at(9, 0)),
		punch(2, model.EventOut, at(17, 0)),
	})

	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.Equal(t, 480, s.DurationMinutes)
	assert.Nil(t, s.Notes)
	require.NotNil(t, s.PunchIn)
	require.NotNil(t, s.PunchOut)
	assert.Equal(t, at(9, 0), *s.PunchIn)
	assert.Equal(t, at(17, 0), *s.PunchOut)
	assert.Equal(t, uint(1), *s.PunchInID)
	assert.Equal(t, uint(2), *s.PunchOutID)
}

func TestReconcileDuplicateInSuppressed(t *testing.T) {
	sessions := Reconcile([]model.PunchEvent{
		punch(1, model.EventIn, at(9, 0)),
		punch(2, model.EventIn, at(9, 3)),
		punch(3, model.EventOut, at(17, 0)),
	})

	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.Equal(t, at(9, 0), *s.PunchIn)
	assert.Equal(t, 480, s.DurationMinutes)
	assert.Nil(t, s.Notes)
}

func TestReconcileMissingOut(t *testing.T) {
	sessions := Reconcile([]model.PunchEvent{
		punch(1, model.EventIn, at(9, 0)),
		punch(2, model.EventIn, at(13, 0)),
	})

	require.Len(t, sessions, 2)

	first := sessions[0]
	assert.Equal(t, at(9, 0), *first.PunchIn)
	assert.Nil(t, first.PunchOut)
	assert.Equal(t, 0, first.DurationMinutes)
	require.NotNil(t, first.Notes)
	assert.Equal(t, NoteMissingOut, *first.Notes)

	second := sessions[1]
	assert.Equal(t, at(13, 0), *second.PunchIn)
	require.NotNil(t, second.Notes)
	assert.Equal(t, NoteOpenSession, *second.Notes)
}

func TestReconcileOrphanOut(t *testing.T) {
	sessions := Reconcile([]model.PunchEvent{
		punch(1, model.EventOut, at(17, 0)),
	})
	assert.Empty(t, sessions)
}

func TestReconcileOrderIndependent(t *testing.T) {
	events := []model.PunchEvent{
		punch(1, model.EventIn, at(9, 0)),
		punch(2, model.EventOut, at(12, 0)),
		punch(3, model.EventIn, at(13, 0)),
		punch(4, model.EventOut, at(17, 30)),
	}
	shuffled := []model.PunchEvent{events[3], events[1], events[2], events[0]}

	assert.Equal(t, Reconcile(events), Reconcile(shuffled))

	sessions := Reconcile(events)
	require.Len(t, sessions, 2)
	assert.Equal(t, 180, sessions[0].DurationMinutes)
	assert.Equal(t, 270, sessions[1].DurationMinutes)
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	events := []model.PunchEvent{
		punch(2, model.EventOut, at(17, 0)),
		punch(1, model.EventIn, at(9, 0)),
	}
	_ = Reconcile(events)
	assert.Equal(t, model.EventOut, events[0].EventType)
	assert.Equal(t, model.EventIn, events[1].EventType)
}

func TestReconcileFloorsDuration(t *testing.T) {
	sessions := Reconcile([]model.PunchEvent{
		punch(1, model.EventIn, at(9, 0)),
		punch(2, model.EventOut, at(9, 59).Add(59*time.Second)),
	})

	require.Len(t, sessions, 1)
	assert.Equal(t, 59, sessions[0].DurationMinutes)
}

func TestReconcileTimestampTieIsStable(t *testing.T) {
	// same instant: original order decides, IN first pairs with the OUT
	sessions := Reconcile([]model.PunchEvent{
		punch(1, model.EventIn, at(9, 0)),
		punch(2, model.EventOut, at(9, 0)),
	})

	require.Len(t, sessions, 1)
	assert.Equal(t, 0, sessions[0].DurationMinutes)
	assert.Nil(t, sessions[0].Notes)
}

func TestReconcileSessionsChronological(t *testing.T) {
	sessions := Reconcile([]model.PunchEvent{
		punch(5, model.EventIn, at(13, 0)),
		punch(6, model.EventOut, at(17, 0)),
		punch(3, model.EventIn, at(8, 0)),
		punch(4, model.EventOut, at(12, 0)),
	})

	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].PunchIn.Before(*sessions[1].PunchIn))
}

func TestReconcileEmpty(t *testing.T) {
	assert.Empty(t, Reconcile(nil))
	assert.Empty(t, Reconcile([]model.PunchEvent{}))
}
