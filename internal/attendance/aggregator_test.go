package attendance

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"attendance-monitor/internal/semester"
	"attendance-monitor/internal/shared"
)

func newStudent(number, first, last string) shared.Student {
	return shared.Student{
		ID:            primitive.NewObjectID(),
		StudentNumber: number,
		FirstName:     first,
		LastName:      last,
		Section:       "BSIT-2A",
	}
}

func event(studentID primitive.ObjectID, date time.Time, status string, createdAt time.Time) shared.AttendanceRecord {
	return shared.AttendanceRecord{
		ID:        primitive.NewObjectID(),
		StudentID: studentID,
		Section:   "BSIT-2A",
		Subject:   "IPT102",
		Semester:  "2025-1",
		Date:      date,
		Status:    status,
		CreatedAt: createdAt,
	}
}

func TestSummarize(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, time.August, 11+d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("No events yields zero counts and zero rate", func(t *testing.T) {
		s := newStudent("2025-00001", "Ana", "Cruz")
		rows := Summarize([]shared.Student{s}, nil)
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		r := rows[0]
		if r.Present != 0 || r.Absent != 0 || r.Late != 0 || r.Rate != 0 {
			t.Errorf("expected all-zero row, got %+v", r)
		}
	})

	t.Run("Three present one absent is 75 percent", func(t *testing.T) {
		s := newStudent("2025-00002", "Ben", "Reyes")
		events := []shared.AttendanceRecord{
			event(s.ID, day(0), shared.StatusPresent, day(0)),
			event(s.ID, day(1), shared.StatusPresent, day(1)),
			event(s.ID, day(2), shared.StatusPresent, day(2)),
			event(s.ID, day(3), shared.StatusAbsent, day(3)),
		}
		rows := Summarize([]shared.Student{s}, events)
		r := rows[0]
		if r.Present != 3 || r.Absent != 1 || r.Late != 0 {
			t.Fatalf("counts = %d/%d/%d, want 3/1/0", r.Present, r.Absent, r.Late)
		}
		if r.Rate != 75.0 {
			t.Errorf("rate = %v, want 75.0", r.Rate)
		}
	})

	t.Run("Rows sorted by display name", func(t *testing.T) {
		a := newStudent("2025-00003", "Zed", "Alonzo")
		b := newStudent("2025-00004", "Abe", "Santos")
		rows := Summarize([]shared.Student{b, a}, nil)
		if rows[0].Name != "Abe Santos" || rows[1].Name != "Zed Alonzo" {
			t.Errorf("rows out of order: %q, %q", rows[0].Name, rows[1].Name)
		}
	})

	t.Run("Events for unknown students are ignored", func(t *testing.T) {
		s := newStudent("2025-00005", "Cara", "Lim")
		stray := event(primitive.NewObjectID(), day(0), shared.StatusPresent, day(0))
		rows := Summarize([]shared.Student{s}, []shared.AttendanceRecord{stray})
		if len(rows) != 1 || rows[0].Present != 0 {
			t.Errorf("stray event leaked into summary: %+v", rows)
		}
	})

	t.Run("Empty status counts toward no bucket", func(t *testing.T) {
		s := newStudent("2025-00006", "Dan", "Ong")
		events := []shared.AttendanceRecord{
			event(s.ID, day(0), "", day(0)),
			event(s.ID, day(1), shared.StatusPresent, day(1)),
		}
		r := Summarize([]shared.Student{s}, events)[0]
		if r.Present != 1 || r.Absent != 0 || r.Late != 0 {
			t.Errorf("counts = %d/%d/%d, want 1/0/0", r.Present, r.Absent, r.Late)
		}
		if r.Rate != 100.0 {
			t.Errorf("rate = %v, want 100.0", r.Rate)
		}
	})
}

func TestBuildWeekVector(t *testing.T) {
	start := semester.StartDate(2025, 1) // Aug 11, 2025
	studentID := primitive.NewObjectID()

	t.Run("Empty event set yields all dashes", func(t *testing.T) {
		weeks := BuildWeekVector(nil, start, time.UTC)
		if len(weeks) != semester.WeeksPerSemester {
			t.Fatalf("len = %d, want %d", len(weeks), semester.WeeksPerSemester)
		}
		for i, w := range weeks {
			if w != EmptyWeek {
				t.Errorf("week %d = %q, want %q", i+1, w, EmptyWeek)
			}
		}
	})

	t.Run("Start plus ten days lands in week 2", func(t *testing.T) {
		ev := event(studentID, start.AddDate(0, 0, 10), shared.StatusLate, start)
		weeks := BuildWeekVector([]shared.AttendanceRecord{ev}, start, time.UTC)
		for i, w := range weeks {
			if i == 1 {
				if w != shared.StatusLate {
					t.Errorf("week 2 = %q, want %q", w, shared.StatusLate)
				}
			} else if w != EmptyWeek {
				t.Errorf("week %d = %q, want %q", i+1, w, EmptyWeek)
			}
		}
	})

	t.Run("Event before semester start is excluded", func(t *testing.T) {
		ev := event(studentID, start.AddDate(0, 0, -1), shared.StatusPresent, start)
		weeks := BuildWeekVector([]shared.AttendanceRecord{ev}, start, time.UTC)
		for i, w := range weeks {
			if w != EmptyWeek {
				t.Errorf("week %d = %q, want %q", i+1, w, EmptyWeek)
			}
		}
	})

	t.Run("Week beyond capacity is truncated", func(t *testing.T) {
		ev := event(studentID, start.AddDate(0, 0, 7*semester.WeeksPerSemester), shared.StatusPresent, start)
		weeks := BuildWeekVector([]shared.AttendanceRecord{ev}, start, time.UTC)
		for i, w := range weeks {
			if w != EmptyWeek {
				t.Errorf("week %d = %q, want %q", i+1, w, EmptyWeek)
			}
		}
	})

	t.Run("Empty status does not overwrite an existing slot", func(t *testing.T) {
		day := start.AddDate(0, 0, 2)
		events := []shared.AttendanceRecord{
			event(studentID, day, shared.StatusPresent, start),
			event(studentID, day, "", start.Add(time.Hour)),
		}
		weeks := BuildWeekVector(events, start, time.UTC)
		if weeks[0] != shared.StatusPresent {
			t.Errorf("week 1 = %q, want %q", weeks[0], shared.StatusPresent)
		}
	})

	t.Run("Latest created event wins a duplicated week", func(t *testing.T) {
		day := start.AddDate(0, 0, 3)
		events := []shared.AttendanceRecord{
			// Supplied newest-first to prove ordering comes from createdAt,
			// not from slice position.
			event(studentID, day, shared.StatusLate, start.Add(2*time.Hour)),
			event(studentID, day, shared.StatusAbsent, start.Add(time.Hour)),
		}
		weeks := BuildWeekVector(events, start, time.UTC)
		if weeks[0] != shared.StatusLate {
			t.Errorf("week 1 = %q, want %q (latest createdAt)", weeks[0], shared.StatusLate)
		}
	})

	t.Run("UTC timestamp crossing local midnight maps to the local day", func(t *testing.T) {
		manila := time.FixedZone("PHT", 8*3600)
		// Aug 10 16:00 UTC is Aug 11 00:00 in Manila: on the semester's
		// first day locally, the day before it in UTC.
		ev := event(studentID, time.Date(2025, time.August, 10, 16, 0, 0, 0, time.UTC), shared.StatusPresent, start)
		weeks := BuildWeekVector([]shared.AttendanceRecord{ev}, start, manila)
		if weeks[0] != shared.StatusPresent {
			t.Errorf("week 1 = %q, want %q after zone conversion", weeks[0], shared.StatusPresent)
		}
	})

	t.Run("Local timestamps pass through unchanged", func(t *testing.T) {
		manila := time.FixedZone("PHT", 8*3600)
		ev := event(studentID, time.Date(2025, time.August, 11, 23, 0, 0, 0, manila), shared.StatusPresent, start)
		weeks := BuildWeekVector([]shared.AttendanceRecord{ev}, start, manila)
		if weeks[0] != shared.StatusPresent {
			t.Errorf("week 1 = %q, want %q", weeks[0], shared.StatusPresent)
		}
	})
}
