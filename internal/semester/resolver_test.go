package semester

import (
	"testing"
	"time"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		month time.Month
		want  string
	}{
		{time.January, "2024-2"},
		{time.February, "2024-2"},
		{time.March, "2024-2"},
		{time.April, "2024-2"},
		{time.May, "2024-2"},
		{time.June, "2024-2"},
		{time.July, "2024-2"},
		{time.August, "2025-1"},
		{time.September, "2025-1"},
		{time.October, "2025-1"},
		{time.November, "2025-1"},
		{time.December, "2025-1"},
	}

	for _, c := range cases {
		t.Run(c.month.String(), func(t *testing.T) {
			now := time.Date(2025, c.month, 15, 10, 0, 0, 0, time.UTC)
			if got := Resolve(now); got != c.want {
				t.Errorf("Resolve(%s 2025) = %q, want %q", c.month, got, c.want)
			}
		})
	}
}

func TestStartDate(t *testing.T) {
	t.Run("Term 1", func(t *testing.T) {
		got := StartDate(2025, 1)
		want := time.Date(2025, time.August, 11, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("StartDate(2025,1) = %v, want %v", got, want)
		}
	})

	t.Run("Term 2 starts in the following January", func(t *testing.T) {
		got := StartDate(2024, 2)
		want := time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("StartDate(2024,2) = %v, want %v", got, want)
		}
	})
}

func TestWeekIndex(t *testing.T) {
	start := StartDate(2025, 1)

	t.Run("Semester start is week 1", func(t *testing.T) {
		idx, ok := WeekIndex(start, start)
		if !ok || idx != 1 {
			t.Errorf("WeekIndex(start, start) = (%d, %t), want (1, true)", idx, ok)
		}
	})

	t.Run("Day before start is excluded", func(t *testing.T) {
		if _, ok := WeekIndex(start.AddDate(0, 0, -1), start); ok {
			t.Error("date before semester start should return ok=false")
		}
	})

	t.Run("Seven days in is week 2", func(t *testing.T) {
		idx, ok := WeekIndex(start.AddDate(0, 0, 7), start)
		if !ok || idx != 2 {
			t.Errorf("WeekIndex(start+7d) = (%d, %t), want (2, true)", idx, ok)
		}
	})

	t.Run("Monotonic non-decreasing", func(t *testing.T) {
		prev := 0
		for d := 0; d < 140; d++ {
			idx, ok := WeekIndex(start.AddDate(0, 0, d), start)
			if !ok {
				t.Fatalf("day %d unexpectedly excluded", d)
			}
			if idx < prev {
				t.Fatalf("week index decreased at day %d: %d -> %d", d, prev, idx)
			}
			prev = idx
		}
	})

	t.Run("Time of day does not matter", func(t *testing.T) {
		lateNight := time.Date(2025, time.August, 11, 23, 59, 0, 0, time.UTC)
		idx, ok := WeekIndex(lateNight, start)
		if !ok || idx != 1 {
			t.Errorf("WeekIndex(23:59 on start day) = (%d, %t), want (1, true)", idx, ok)
		}
	})
}

func TestParse(t *testing.T) {
	year, term, err := Parse("2025-1")
	if err != nil || year != 2025 || term != 1 {
		t.Errorf("Parse(2025-1) = (%d, %d, %v)", year, term, err)
	}

	for _, bad := range []string{"garbage", "2025", "2025-1-2", "abcd-1", "2025-x"} {
		if _, _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) should fail", bad)
		}
	}
}

func TestLabel(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"2025-1", "SY.2025 1st Semester"},
		{"2024-2", "SY.2024 2nd Semester"},
		{"2025-9", "SY.2025 Sem 9"},
		{"garbage", "garbage"},
		{"abcd-1", "abcd-1"},
		{"2025-1-extra", "2025-1-extra"},
	}

	for _, c := range cases {
		if got := Label(c.code); got != c.want {
			t.Errorf("Label(%q) = %q, want %q", c.code, got, c.want)
		}
	}
}
