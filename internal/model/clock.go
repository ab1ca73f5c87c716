package model

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used on the wire and in the
// database. Dates carry no timezone; the server clock is authoritative.
const DateLayout = "2006-01-02"

// ParseClock converts a wall-clock "HH:MM" string into minutes since
// midnight. It rejects anything that is not a zero-padded 24-hour
// clock value, including "24:00".
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight back to "HH:MM".
func FormatClock(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// ParseDate validates a calendar date string and returns its
// midnight time in the server's local zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// Window is a half-open [Start,End) interval of minutes since
// midnight on a single day. Start < End for any valid window; a
// zero-length window is never valid.
type Window struct {
	Start int // inclusive, minutes since midnight
	End   int // exclusive, minutes since midnight
}

// ParseWindow builds a Window from two "HH:MM" strings without
// checking ordering; callers that admit reservations must validate
// Start < End themselves so they can report the violation precisely.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// Overlaps reports whether two half-open windows intersect:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1. Back-to-back
// windows sharing an endpoint do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && o.Start < w.End
}

// Valid reports whether the window is well-formed (strictly positive
// length within one day).
func (w Window) Valid() bool {
	return w.Start >= 0 && w.End <= 24*60 && w.Start < w.End
}

// String renders the window as "HH:MM-HH:MM" for error messages and
// event payloads.
func (w Window) String() string {
	return FormatClock(w.Start) + "-" + FormatClock(w.End)
}
