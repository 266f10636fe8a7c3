package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var errMalformedClock = errors.New("malformed clock time")

// parseClock accepts "3:04 PM" and "15:04" wall-clock forms and returns
// minutes since midnight.
func parseClock(value string) (int, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"3:04 PM", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", errMalformedClock, value)
}

// formatClock renders minutes since midnight in the stored 12-hour form,
// e.g. 420 -> "07:00 AM".
func formatClock(minutes int) string {
	t := time.Date(2000, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC)
	return t.Format("03:04 PM")
}

// formatInterval renders the stored time range, e.g. "07:00 AM - 08:00 AM".
func formatInterval(startMin, endMin int) string {
	return formatClock(startMin) + " - " + formatClock(endMin)
}

// parseInterval splits a stored "07:00 AM - 08:00 AM" range into minute
// bounds. Either side may also be in 24-hour form.
func parseInterval(stored string) (startMin, endMin int, err error) {
	parts := strings.SplitN(stored, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", errMalformedClock, stored)
	}
	startMin, err = parseClock(parts[0])
	if err != nil {
		return 0, 0, err
	}
	endMin, err = parseClock(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return startMin, endMin, nil
}

// overlaps reports whether two half-open intervals [s1,e1) and [s2,e2)
// intersect. Back-to-back slots sharing a boundary do not overlap.
func overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}
