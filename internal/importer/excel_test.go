package importer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows (header included) into an in-memory workbook.
func buildWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("building cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cellName, value); err != nil {
				t.Fatalf("setting cell value: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("writing workbook: %v", err)
	}
	return &buf
}

func TestParseRoster(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Student No.", "Last Name", "First Name", "Middle Name"},
		{"2021-00001", "Dela Cruz", "Juan", "Reyes"},
		{"2021-00002", "Santos", "Maria", ""},
		{" 2021-00003 ", " Garcia ", " Pedro ", " Lopez "},
	})

	roster, err := ParseRoster(buf)
	if err != nil {
		t.Fatalf("ParseRoster failed: %v", err)
	}
	if len(roster) != 3 {
		t.Fatalf("got %d rows, want 3", len(roster))
	}

	first := roster[0]
	if first.StudentNumber != "2021-00001" || first.LastName != "Dela Cruz" ||
		first.FirstName != "Juan" || first.MiddleName != "Reyes" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if roster[1].MiddleName != "" {
		t.Errorf("middle name should be optional, got %q", roster[1].MiddleName)
	}
	if roster[2].StudentNumber != "2021-00003" || roster[2].LastName != "Garcia" {
		t.Errorf("cells should be trimmed, got %+v", roster[2])
	}
}

func TestParseRosterSkipsIncompleteRows(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Student No.", "Last Name", "First Name", "Middle Name"},
		{"", "Dela Cruz", "Juan", ""},
		{"2021-00002", "", "Maria", ""},
		{"2021-00003", "Garcia", "", ""},
		{"2021-00004", "Reyes", "Ana", ""},
	})

	roster, err := ParseRoster(buf)
	if err != nil {
		t.Fatalf("ParseRoster failed: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("got %d rows, want 1", len(roster))
	}
	if roster[0].StudentNumber != "2021-00004" {
		t.Errorf("kept wrong row: %+v", roster[0])
	}
}

func TestParseRosterEmptyWorkbook(t *testing.T) {
	buf := buildWorkbook(t, [][]string{
		{"Student No.", "Last Name", "First Name", "Middle Name"},
	})

	if _, err := ParseRoster(buf); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestParseRosterGarbageInput(t *testing.T) {
	if _, err := ParseRoster(bytes.NewBufferString("not an excel file")); err == nil {
		t.Error("expected an error for malformed input")
	}
}
