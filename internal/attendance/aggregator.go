// Package attendance aggregates raw attendance records into report rows
// and per-week status strips, and owns the attendance CRUD service.
package attendance

import (
	"sort"
	"strings"
	"time"

	"attendance-monitor/internal/semester"
	"attendance-monitor/internal/shared"
)

// EmptyWeek marks an academic week with no attendance record.
const EmptyWeek = "-"

// SummaryRow is one student's aggregated attendance for a report. Rate is
// present / (present+absent+late) * 100, or 0 when the student has no
// records at all.
type SummaryRow struct {
	StudentNumber string  `json:"student_number"`
	Name          string  `json:"name"`
	Present       int     `json:"present"`
	Absent        int     `json:"absent"`
	Late          int     `json:"late"`
	Rate          float64 `json:"rate"`
}

// Summarize aggregates events per student over the full roster, sorted by
// display name ascending. Students with no events still appear with zero
// counts; the summary is total over the roster, not over the event set.
func Summarize(students []shared.Student, events []shared.AttendanceRecord) []SummaryRow {
	type counts struct{ present, absent, late int }
	byStudent := make(map[string]*counts, len(students))
	for _, ev := range events {
		key := ev.StudentID.Hex()
		c := byStudent[key]
		if c == nil {
			c = &counts{}
			byStudent[key] = c
		}
		switch ev.Status {
		case shared.StatusPresent:
			c.present++
		case shared.StatusAbsent:
			c.absent++
		case shared.StatusLate:
			c.late++
		}
	}

	rows := make([]SummaryRow, 0, len(students))
	for i := range students {
		s := &students[i]
		row := SummaryRow{
			StudentNumber: s.StudentNumber,
			Name:          s.DisplayName(),
		}
		if c := byStudent[s.ID.Hex()]; c != nil {
			row.Present = c.present
			row.Absent = c.absent
			row.Late = c.late
			if total := c.present + c.absent + c.late; total > 0 {
				row.Rate = float64(c.present) / float64(total) * 100.0
			}
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].StudentNumber < rows[j].StudentNumber
	})

	return rows
}

// BuildWeekVector distributes events (already filtered to one student
// identity, subject and semester) over the semester's fixed weekly buckets.
// Unrecorded weeks stay EmptyWeek, as do weeks whose events carry an empty
// status. Events are replayed in createdAt order so that the most recently
// recorded event deterministically wins a duplicated week.
//
// Event timestamps tagged UTC are converted to loc wall-clock time before
// the calendar date is extracted, so a record stored for the night of day D
// in UTC still lands on day D locally. Timestamps already carrying a local
// zone pass through unchanged.
func BuildWeekVector(events []shared.AttendanceRecord, start time.Time, loc *time.Location) []string {
	weeks := make([]string, semester.WeeksPerSemester)
	for i := range weeks {
		weeks[i] = EmptyWeek
	}

	if loc == nil {
		loc = time.Local
	}

	ordered := make([]shared.AttendanceRecord, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	for _, ev := range ordered {
		date := ev.Date
		if date.Location() == time.UTC {
			date = date.In(loc)
		}

		idx, ok := semester.WeekIndex(date, start)
		if !ok || idx < 1 || idx > semester.WeeksPerSemester {
			continue
		}

		status := strings.TrimSpace(ev.Status)
		if status == "" {
			continue
		}
		weeks[idx-1] = status
	}

	return weeks
}
