package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"attendance-monitor/internal/httpapi/util"
	"attendance-monitor/internal/schedule"
)

// ScheduleHandler exposes weekly schedule management for professors.
type ScheduleHandler struct {
	Schedules *schedule.Service
}

// List handles GET /schedules?day=Monday.
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := util.ClaimsFromContext(r.Context())
	if !ok {
		util.WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	schedules, err := h.Schedules.ListByDay(r.Context(), claims.Username, r.URL.Query().Get("day"))
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, schedules)
}

// Add handles POST /schedules.
func (h *ScheduleHandler) Add(w http.ResponseWriter, r *http.Request) {
	claims, ok := util.ClaimsFromContext(r.Context())
	if !ok {
		util.WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req schedule.AddInput
	if err := util.DecodeJSON(r, &req); err != nil {
		util.WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	created, err := h.Schedules.Add(r.Context(), claims.Username, req)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /schedules/{id}.
func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := util.ClaimsFromContext(r.Context())
	if !ok {
		util.WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.Schedules.Delete(r.Context(), claims.Username, chi.URLParam(r, "id")); err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, map[string]string{"message": "Schedule deleted"})
}

// Sections handles GET /sections.
func (h *ScheduleHandler) Sections(w http.ResponseWriter, r *http.Request) {
	claims, ok := util.ClaimsFromContext(r.Context())
	if !ok {
		util.WriteJSONError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	sections, err := h.Schedules.Sections(r.Context(), claims.Username)
	if err != nil {
		util.HandleServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, sections)
}
