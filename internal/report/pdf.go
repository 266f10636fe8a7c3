// ============================================================================
// internal/report/pdf.go
// Attendance summary reports rendered as PDF
// ============================================================================

package report

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"attendance-monitor/internal/attendance"
	"attendance-monitor/internal/semester"
)

// Service renders section attendance reports.
type Service struct {
	attendance *attendance.Service
	semesters  *semester.Service
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates a report Service.
func NewService(att *attendance.Service, semesters *semester.Service, logger *zap.Logger) *Service {
	return &Service{
		attendance: att,
		semesters:  semesters,
		logger:     logger.Named("report"),
		now:        time.Now,
	}
}

// SectionReport builds the per-student attendance summary for a section as
// a PDF. An empty semesterCode defaults to the current semester. The
// returned filename carries the section and semester.
func (s *Service) SectionReport(ctx context.Context, section, semesterCode string) ([]byte, string, error) {
	if semesterCode == "" {
		semesterCode = s.semesters.Current(ctx)
	}

	rows, err := s.attendance.ForReport(ctx, section, semesterCode)
	if err != nil {
		return nil, "", err
	}

	pdf, err := Render(section, semesterCode, rows, s.now())
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("AttendanceReport_%s_%s.pdf",
		strings.ReplaceAll(section, " ", "_"), semesterCode)

	s.logger.Info("section report generated",
		zap.String("section", section),
		zap.String("semester", semesterCode),
		zap.Int("students", len(rows)))

	return pdf, filename, nil
}

// Render draws the summary table. Kept free of I/O so it can be tested
// without a database.
func Render(section, semesterCode string, rows []attendance.SummaryRow, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Attendance Summary", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Attendance Report - %s - %s", section, semesterCode), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, semester.Label(semesterCode), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{30, 70, 18, 18, 18, 22}
	headers := []string{"Student No.", "Name", "Present", "Absent", "Late", "Rate"}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	if len(rows) == 0 {
		pdf.CellFormat(sum(widths), 8, "No students enrolled in this section.", "1", 1, "C", false, 0, "")
	}
	for _, row := range rows {
		pdf.CellFormat(widths[0], 8, row.StudentNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 8, fmt.Sprintf("%d", row.Present), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 8, fmt.Sprintf("%d", row.Absent), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 8, fmt.Sprintf("%d", row.Late), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 8, fmt.Sprintf("%.1f%%", row.Rate), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated on %s", generatedAt.Format("January 2, 2006 3:04 PM")), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sum(widths []float64) float64 {
	var total float64
	for _, w := range widths {
		total += w
	}
	return total
}
