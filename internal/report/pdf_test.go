package report

import (
	"bytes"
	"testing"
	"time"

	"attendance-monitor/internal/attendance"
)

func TestRender(t *testing.T) {
	rows := []attendance.SummaryRow{
		{StudentNumber: "2021-00001", Name: "Juan Dela Cruz", Present: 12, Absent: 2, Late: 1, Rate: 80.0},
		{StudentNumber: "2021-00002", Name: "Maria Santos", Present: 15, Absent: 0, Late: 0, Rate: 100.0},
	}
	generatedAt := time.Date(2025, time.September, 15, 10, 30, 0, 0, time.UTC)

	pdf, err := Render("BSIT-2A", "2025-1", rows, generatedAt)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header: %q", pdf[:min(8, len(pdf))])
	}
	if len(pdf) < 1000 {
		t.Errorf("rendered PDF suspiciously small: %d bytes", len(pdf))
	}
}

func TestRenderEmptySection(t *testing.T) {
	pdf, err := Render("BSIT-9Z", "2025-1", nil, time.Now())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}
