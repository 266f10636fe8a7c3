package handlers

import (
	"net/http"

	"attendance-monitor/internal/httpapi/util"
	"attendance-monitor/internal/importer"
	"attendance-monitor/internal/student"
)

// maxUploadBytes bounds roster workbook uploads.
const maxUploadBytes = 10 << 20 // 10 MiB

// StudentHandler exposes roster management for professors.
type StudentHandler struct {
	Students *student.Service
}

// Add handles POST /students.
func (h *StudentHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req student.AddInput
	if err := util.DecodeJSON(r, &req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	created, err := h.Students.Add(r.Context(), req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, created)
}

// List handles GET /students?section=.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	section := r.URL.Query().Get("section")
	if section == "" {
		util.WriteJSONError(w, http.StatusBadRequest, "section query parameter is required")
		return
	}

	students, err := h.Students.ListBySection(r.Context(), section)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, students)
}

// Import handles POST /students/import: a multipart form with a `file`
// workbook and a `section` field.
func (h *StudentHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	section := r.FormValue("section")
	if section == "" {
		util.WriteJSONError(w, http.StatusBadRequest, "section form field is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, "file form field is required")
		return
	}
	defer file.Close()

	rows, err := importer.ParseRoster(file)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	imported, err := h.Students.ImportRoster(r.Context(), section, rows)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Roster imported",
		"imported": imported,
	})
}
