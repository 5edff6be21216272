package timesheet

import (
	"sort"
	"time"

	"punchdeck.com/punchdeck/model"
	"punchdeck.com/punchdeck/utils"
)

// DuplicateInWindow is how close a second IN punch has to be to the
// pending one before it is treated as webhook noise and discarded.
const DuplicateInWindow = 5 * time.Minute

const (
	NoteMissingOut  = "Missing OUT punch"
	NoteOpenSession = "Open session"
)

// Session is one reconciled span of work: an IN/OUT pair, or an
// unpaired IN flagged through Notes. Derived on every read, never
// persisted.
type Session struct {
	Date            time.Time  `json:"date"`
	PunchIn         *time.Time `json:"punchIn"`
	PunchInID       *uint      `json:"punchInId"`
	PunchOut        *time.Time `json:"punchOut"`
	PunchOutID      *uint      `json:"punchOutId"`
	DurationMinutes int        `json:"durationMinutes"`
	Notes           *string    `json:"notes"`
}

// Reconcile converts an unordered list of punch events into sessions in
// chronological order. It keeps at most one pending IN at a time:
// an IN within DuplicateInWindow of the pending one is dropped, an IN
// beyond it flushes the pending IN as a missing-OUT session, an OUT
// closes the pending IN, an OUT with nothing pending is an orphan and
// produces no session. A pending IN left at the end becomes an open
// session. Total for every well-formed input; never returns an error.
func Reconcile(events []model.PunchEvent) []Session {
	sorted := make([]model.PunchEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var sessions []Session
	var pending *model.PunchEvent

	for i := range sorted {
		ev := &sorted[i]
		switch ev.EventType {
		case model.EventIn:
			if pending == nil {
				pending = ev
				continue
			}
			if ev.Timestamp.Sub(pending.Timestamp) < DuplicateInWindow {
				// rapid-fire duplicate, keep the original pending IN
				continue
			}
			sessions = append(sessions, openSession(pending, NoteMissingOut))
			pending = ev
		case model.EventOut:
			if pending == nil {
				// orphan OUT
				continue
			}
			sessions = append(sessions, closedSession(pending, ev))
			pending = nil
		}
	}

	if pending != nil {
		sessions = append(sessions, openSession(pending, NoteOpenSession))
	}

	return sessions
}

func closedSession(in, out *model.PunchEvent) Session {
	minutes := int(out.Timestamp.Sub(in.Timestamp).Minutes())
	if minutes < 0 {
		// cannot happen after the sort; guard the invariant anyway
		minutes = 0
	}
	return Session{
		Date:            in.Timestamp,
		PunchIn:         utils.Ptr(in.Timestamp),
		PunchInID:       utils.Ptr(in.ID),
		PunchOut:        utils.Ptr(out.Timestamp),
		PunchOutID:      utils.Ptr(out.ID),
		DurationMinutes: minutes,
	}
}

func openSession(in *model.PunchEvent, note string) Session {
	return Session{
		Date:      in.Timestamp,
		PunchIn:   utils.Ptr(in.Timestamp),
		PunchInID: utils.Ptr(in.ID),
		Notes:     utils.Ptr(note),
	}
}
