package schedule

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"twelve hour morning", "7:00 AM", 7 * 60, false},
		{"twelve hour padded", "07:00 AM", 7 * 60, false},
		{"twelve hour afternoon", "1:30 PM", 13*60 + 30, false},
		{"twenty four hour", "15:04", 15*60 + 4, false},
		{"midnight", "12:00 AM", 0, false},
		{"noon", "12:00 PM", 12 * 60, false},
		{"surrounding whitespace", "  8:15 AM  ", 8*60 + 15, false},
		{"garbage", "whenever", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseClock(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseClock(%q) expected error, got %d", tt.value, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseClock(%q) unexpected error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("parseClock(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatInterval(t *testing.T) {
	got := formatInterval(7*60, 8*60)
	want := "07:00 AM - 08:00 AM"
	if got != want {
		t.Errorf("formatInterval = %q, want %q", got, want)
	}

	got = formatInterval(13*60+30, 15*60)
	want = "01:30 PM - 03:00 PM"
	if got != want {
		t.Errorf("formatInterval = %q, want %q", got, want)
	}
}

func TestParseInterval(t *testing.T) {
	start, end, err := parseInterval("07:00 AM - 08:30 AM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != 7*60 || end != 8*60+30 {
		t.Errorf("parseInterval = (%d, %d), want (420, 510)", start, end)
	}

	for _, malformed := range []string{"", "07:00 AM", "x - y", "07:00 AM to 08:00 AM"} {
		if _, _, err := parseInterval(malformed); err == nil {
			t.Errorf("parseInterval(%q) expected error", malformed)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{"back to back slots do not conflict", 7 * 60, 8 * 60, 8 * 60, 9 * 60, false},
		{"partial overlap conflicts", 7 * 60, 8*60 + 30, 8 * 60, 9 * 60, true},
		{"containment conflicts", 7 * 60, 10 * 60, 8 * 60, 9 * 60, true},
		{"identical slots conflict", 7 * 60, 8 * 60, 7 * 60, 8 * 60, true},
		{"disjoint slots do not conflict", 7 * 60, 8 * 60, 10 * 60, 11 * 60, false},
		{"order independent", 8 * 60, 9 * 60, 7 * 60, 8*60 + 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("overlaps(%d,%d,%d,%d) = %v, want %v", tt.s1, tt.e1, tt.s2, tt.e2, got, tt.want)
			}
		})
	}
}
