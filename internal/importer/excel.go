// ============================================================================
// internal/importer/excel.go
// Roster bulk import from Excel workbooks
// ============================================================================

package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoData means the workbook contained no usable roster rows.
var ErrNoData = errors.New("workbook contains no roster rows")

// RosterRow is one student parsed from an uploaded workbook.
type RosterRow struct {
	StudentNumber string
	LastName      string
	FirstName     string
	MiddleName    string
}

// ParseRoster reads roster rows from the first sheet of an Excel workbook.
// Row 1 is treated as a header; the expected column order is student
// number, last name, first name, middle name. Rows missing the student
// number, last name or first name are skipped; middle name is optional.
func ParseRoster(r io.Reader) ([]RosterRow, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoData
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}

	var roster []RosterRow
	for i, cells := range rows {
		if i == 0 {
			continue // header row
		}
		row := RosterRow{
			StudentNumber: cell(cells, 0),
			LastName:      cell(cells, 1),
			FirstName:     cell(cells, 2),
			MiddleName:    cell(cells, 3),
		}
		if row.StudentNumber == "" || row.LastName == "" || row.FirstName == "" {
			continue
		}
		roster = append(roster, row)
	}

	if len(roster) == 0 {
		return nil, ErrNoData
	}
	return roster, nil
}

func cell(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}
