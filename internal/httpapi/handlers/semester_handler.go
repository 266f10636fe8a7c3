package handlers

import (
	"net/http"

	"attendance-monitor/internal/httpapi/util"
	"attendance-monitor/internal/semester"
)

// SemesterHandler exposes the current-semester setting.
type SemesterHandler struct {
	Semesters *semester.Service
}

// RESTSetSemesterRequest mirrors the expected JSON input for PUT /semester
type RESTSetSemesterRequest struct {
	Semester string `json:"semester" validate:"required"`
}

// Current handles GET /semester.
func (h *SemesterHandler) Current(w http.ResponseWriter, r *http.Request) {
	code := h.Semesters.Current(r.Context())
	util.WriteJSON(w, http.StatusOK, map[string]string{
		"semester": code,
		"label":    semester.Label(code),
	})
}

// Set handles PUT /semester: pins the semester code as an override.
func (h *SemesterHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req RESTSetSemesterRequest
	if err := util.DecodeJSON(r, &req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		util.HandleServiceError(w, err)
		return
	}
	if _, _, err := semester.Parse(req.Semester); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Semester must use the YEAR-TERM form, e.g. 2025-1")
		return
	}

	if err := h.Semesters.SetCurrent(r.Context(), req.Semester); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]string{
		"semester": req.Semester,
		"label":    semester.Label(req.Semester),
	})
}

// ClearOverride handles DELETE /semester: drops the pin so the semester
// follows the calendar again.
func (h *SemesterHandler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	if err := h.Semesters.ClearOverride(r.Context()); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	code := h.Semesters.Current(r.Context())
	util.WriteJSON(w, http.StatusOK, map[string]string{
		"semester": code,
		"label":    semester.Label(code),
	})
}
