// Package datetime handles the canonical date-time form messages are stored
// and compared in. Expiration checks compare canonical strings, not typed
// timestamps: the layout is lexicographically chronological, so string
// ordering and time ordering agree everywhere the same form is used.
package datetime

import (
	"fmt"
	"time"
)

// CanonicalLayout is the normalized date-time representation used for both
// storage and comparison, e.g. "2090-06-06 11:00:00.0".
const CanonicalLayout = "2006-01-02 15:04:05.0"

// layouts are the accepted input forms, tried in order.
var layouts = []string{
	CanonicalLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Parse accepts any of the supported date-time layouts.
func Parse(s string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date/time format: %q", s)
}

// Format renders t in the canonical form, always in UTC. Zoned inputs must
// not leak their offset into the canonical string or string ordering stops
// agreeing with time ordering.
func Format(t time.Time) string {
	return t.UTC().Format(CanonicalLayout)
}

// Canonical parses s and re-renders it in the canonical form.
func Canonical(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}

// NowCanonical is the current UTC instant in canonical form.
func NowCanonical() string {
	return Format(time.Now().UTC())
}
