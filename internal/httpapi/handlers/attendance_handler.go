package handlers

import (
	"net/http"

	"attendance-monitor/internal/attendance"
	"attendance-monitor/internal/httpapi/util"
)

// AttendanceHandler exposes attendance sheet retrieval and recording.
type AttendanceHandler struct {
	Attendance *attendance.Service
}

// RESTSaveAttendanceRequest mirrors the expected JSON input for POST /attendance
type RESTSaveAttendanceRequest struct {
	Section string                 `json:"section" validate:"required"`
	Subject string                 `json:"subject" validate:"required"`
	Date    string                 `json:"date"`
	Entries []attendance.SaveEntry `json:"entries" validate:"required,dive"`
}

// RESTMarkPresentRequest mirrors the expected JSON input for POST /attendance/mark-present
type RESTMarkPresentRequest struct {
	Section       string `json:"section" validate:"required"`
	StudentNumber string `json:"student_number" validate:"required"`
	Subject       string `json:"subject"`
	Date          string `json:"date"`
}

// GetSheet handles GET /attendance?section=&subject=&date=.
func (h *AttendanceHandler) GetSheet(w http.ResponseWriter, r *http.Request) {
	claims, ok := util.ClaimsFromContext(r.Context())
	if !ok {
		util.WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	q := r.URL.Query()
	section := q.Get("section")
	if section == "" {
		util.WriteJSONError(w, http.StatusBadRequest, "section query parameter is required")
		return
	}

	sheet, err := h.Attendance.GetSheet(r.Context(), claims.Username, section, q.Get("subject"), q.Get("date"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, sheet)
}

// Save handles POST /attendance: the full sheet for one day is replaced.
func (h *AttendanceHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req RESTSaveAttendanceRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	if err := h.Attendance.Save(r.Context(), req.Section, req.Subject, req.Date, req.Entries); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Attendance saved"})
}

// MarkPresent handles POST /attendance/mark-present for quick roll call.
func (h *AttendanceHandler) MarkPresent(w http.ResponseWriter, r *http.Request) {
	claims, ok := util.ClaimsFromContext(r.Context())
	if !ok {
		util.WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req RESTMarkPresentRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	student, err := h.Attendance.MarkPresent(r.Context(), claims.Username, req.Section, req.StudentNumber, req.Subject, req.Date)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Marked present",
		"student": student,
	})
}

// MyWeeks handles GET /me/attendance?subject= for students.
func (h *AttendanceHandler) MyWeeks(w http.ResponseWriter, r *http.Request) {
	claims, ok := util.ClaimsFromContext(r.Context())
	if !ok {
		util.WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	strip, err := h.Attendance.StudentWeeks(r.Context(), claims.UserID, r.URL.Query().Get("subject"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, strip)
}
