package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"punchdeck.com/punchdeck/model"
)

// ParsePunchKind reads a chat message and reports whether it is a punch
// command. Messages starting with "in" or "out" (any case) count;
// anything else carries no punch semantics.
func ParsePunchKind(text string) (model.EventType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(normalized, string(model.EventOut)):
		return model.EventOut, true
	case strings.HasPrefix(normalized, string(model.EventIn)):
		return model.EventIn, true
	}
	return "", false
}

// ParseSlackTimestamp converts a Slack ts value like "1612345678.000200"
// into a UTC instant.
func ParseSlackTimestamp(ts string) (time.Time, error) {
	secPart, fracPart, _ := strings.Cut(ts, ".")

	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slack timestamp %q: %w", ts, err)
	}

	var nsec int64
	if fracPart != "" {
		// pad/truncate the fraction to nanosecond digits
		const digits = 9
		if len(fracPart) > digits {
			fracPart = fracPart[:digits]
		}
		frac, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid slack timestamp %q: %w", ts, err)
		}
		for i := len(fracPart); i < digits; i++ {
			frac *= 10
		}
		nsec = frac
	}

	return time.Unix(sec, nsec).UTC(), nil
}
