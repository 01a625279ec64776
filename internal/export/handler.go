package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jaajung-kjs/digital-sub000/internal/api"
)

const maxPlanSize = 10 << 20 // 10MB

// Handler renders plans POSTed by the client. The endpoint is stateless: the
// body is a full plan document, so unsaved work exports the same as saved.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ExportSVG handles POST /export/svg. The body is a plan DTO; ?grid=true
// draws the snapping grid behind the elements.
func (h *Handler) ExportSVG(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPlanSize)

	var dto api.PlanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "invalid plan body", http.StatusBadRequest)
		return
	}

	plan, err := api.DecodePlan(dto)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid plan: %v", err), http.StatusBadRequest)
		return
	}

	grid, _ := strconv.ParseBool(r.URL.Query().Get("grid"))
	svg := Render(plan, Options{Grid: grid})

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", Filename(plan.Name)))
	w.Header().Set("Content-Length", strconv.Itoa(len(svg)))
	w.Write(svg)

	slog.Info("plan exported", "plan", dto.ID, "elements", len(plan.Elements), "racks", len(plan.Racks), "size", len(svg))
}
