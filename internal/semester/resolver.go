// Package semester derives semester codes from calendar dates and maps
// event dates onto academic weeks.
//
// A semester code has the form "{year}-{term}" where term is 1 or 2 and
// year is the starting year of the academic year, e.g. "2025-1" for
// A.Y. 2025-2026 first semester.
package semester

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeeksPerSemester is the fixed number of weekly buckets in a semester.
// Weeks beyond this are silently truncated.
const WeeksPerSemester = 18

// Resolve derives the semester code for the given date:
//
//	Aug-Dec -> term 1 of the current calendar year
//	Jan-May -> term 2 of the previous calendar year
//	Jun-Jul -> inter-session, treated as a continuation of term 2
func Resolve(now time.Time) string {
	year := now.Year()
	term := 1

	switch m := now.Month(); {
	case m >= time.August:
		// 1st semester of the academic year that starts this August
	case m <= time.May:
		term = 2
		year--
	default:
		// June/July carry the previous academic year's 2nd semester
		term = 2
		year--
	}

	return fmt.Sprintf("%d-%d", year, term)
}

// StartDate returns the institutional start date of a semester:
// term 1 starts August 11 of year, term 2 starts January 12 of year+1.
// The academic calendar is fixed; changing it is a code change.
func StartDate(year, term int) time.Time {
	if term == 1 {
		return time.Date(year, time.August, 11, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year+1, time.January, 12, 0, 0, 0, 0, time.UTC)
}

// WeekIndex maps an event date onto its 1-based academic week relative to
// the semester start. Dates before the start return (0, false); callers
// retain only indices in [1, WeeksPerSemester].
func WeekIndex(eventDate, start time.Time) (int, bool) {
	diff := dayNumber(eventDate) - dayNumber(start)
	if diff < 0 {
		return 0, false
	}
	return diff/7 + 1, true
}

// dayNumber counts whole days since the Unix epoch for the date's
// wall-clock calendar day, ignoring the time-of-day and zone offset.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// Parse splits a semester code into its year and term. It rejects codes
// without exactly two hyphen-separated numeric segments.
func Parse(code string) (year, term int, err error) {
	parts := strings.Split(code, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed semester code %q", code)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed semester year in %q", code)
	}
	term, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed semester term in %q", code)
	}
	return year, term, nil
}

// Label formats a semester code for display, e.g. "2025-1" becomes
// "SY.2025 1st Semester". Unknown terms degrade to "Sem {t}" and a
// malformed code is returned unchanged; Label never fails.
func Label(code string) string {
	parts := strings.Split(code, "-")
	if len(parts) != 2 {
		return code
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return code
	}

	var termLabel string
	switch parts[1] {
	case "1":
		termLabel = "1st Semester"
	case "2":
		termLabel = "2nd Semester"
	default:
		termLabel = "Sem " + parts[1]
	}

	return fmt.Sprintf("SY.%d %s", year, termLabel)
}
