package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jaajung-kjs/digital-sub000/internal/api"
	"github.com/jaajung-kjs/digital-sub000/internal/export"
)

// Handler exposes the plan service over HTTP. notify, when set, is called
// after every successful save so live listeners hear about the new version.
type Handler struct {
	service *Service
	notify  func(planID string, version int)
}

func NewHandler(service *Service, notify func(planID string, version int)) *Handler {
	return &Handler{service: service, notify: notify}
}

type createPlanRequest struct {
	Name string `json:"name"`
}

type updatePlanRequest struct {
	api.PlanDTO
	DeletedElementIDs []string `json:"deletedElementIds"`
	DeletedRackIDs    []string `json:"deletedRackIds"`
}

// GetFloorPlan handles GET /api/v1/floors/{floorId}/plan.
func (h *Handler) GetFloorPlan(w http.ResponseWriter, r *http.Request) {
	floorID := mux.Vars(r)["floorId"]
	dto, err := h.service.GetByFloor(r.Context(), floorID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

// CreateFloorPlan handles POST /api/v1/floors/{floorId}/plan.
func (h *Handler) CreateFloorPlan(w http.ResponseWriter, r *http.Request) {
	floorID := mux.Vars(r)["floorId"]

	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	dto, err := h.service.Create(r.Context(), floorID, req.Name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

// UpdatePlan handles PUT /api/v1/plans/{planId}. The body is the full plan
// state plus the ids the client deleted since its last save.
func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]

	var req updatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	dto, err := h.service.Update(r.Context(), planID, UpdateRequest{
		Plan:              req.PlanDTO,
		DeletedElementIDs: req.DeletedElementIDs,
		DeletedRackIDs:    req.DeletedRackIDs,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	if h.notify != nil {
		h.notify(dto.ID, dto.Version)
	}
	writeJSON(w, http.StatusOK, dto)
}

// DeletePlan handles DELETE /api/v1/plans/{planId}.
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]
	if err := h.service.Delete(r.Context(), planID); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportSVG handles GET /api/v1/plans/{planId}/export/svg. Pass ?grid=true
// to draw the snapping grid behind the elements.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	planID := mux.Vars(r)["planId"]
	dto, err := h.service.GetByID(r.Context(), planID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	plan, err := api.DecodePlan(dto)
	if err != nil {
		slog.Error("decode plan for export", "planId", planID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	grid, _ := strconv.ParseBool(r.URL.Query().Get("grid"))
	svg := export.Render(plan, export.Options{Grid: grid})

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(plan.Name)))
	w.WriteHeader(http.StatusOK)
	w.Write(svg)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
	case errors.Is(err, ErrPlanExists):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "floor already has a plan"})
	case errors.Is(err, ErrDuplicateRackName):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		slog.Error("plan request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
