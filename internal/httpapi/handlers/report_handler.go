package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"attendance-monitor/internal/httpapi/util"
	"attendance-monitor/internal/report"
)

// ReportHandler exposes PDF attendance report generation.
type ReportHandler struct {
	Reports *report.Service
}

// Section handles GET /reports/section?section=&semester= and streams the
// PDF as an attachment.
func (h *ReportHandler) Section(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	section := q.Get("section")
	if section == "" {
		util.WriteJSONError(w, http.StatusBadRequest, "section query parameter is required")
		return
	}

	pdf, filename, err := h.Reports.SectionReport(r.Context(), section, q.Get("semester"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		// Headers are already out; nothing left to report to the client.
		return
	}
}
