package handlers

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"courierdispatch/internal/api/dto"
	"courierdispatch/internal/domain"
	"courierdispatch/internal/planner"
	"courierdispatch/internal/ports"
)

type PlanHandler struct {
	Router Router
	Repo   ports.DeliveryRepository
}

// Plan handles POST /plan: optimizes a delivery order and emits a
// turn-by-turn plan for the depot round trip. Deliveries may be given
// inline or as the name of a previously saved batch.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.PlanRequest
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	depot, err := req.Depot.Parse()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid depot coordinate")
		return
	}

	deliveries, status, msg := h.resolveDeliveries(r.Context(), req)
	if msg != "" {
		writeError(w, r, status, msg)
		return
	}

	rng := rand.New(rand.NewSource(seedFrom(req.Seed)))

	commands, total, err := planner.Plan(r.Context(), h.Router, depot, deliveries, rng)
	if err != nil {
		status, msg := routeErrorStatus(err)
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromDomainCommands(commands, total))
}

func (h *PlanHandler) resolveDeliveries(ctx context.Context, req dto.PlanRequest) ([]domain.Delivery, int, string) {
	batch := strings.TrimSpace(req.Batch)
	if batch != "" {
		if h.Repo == nil {
			return nil, http.StatusBadRequest, "saved batches are not configured"
		}
		rows, err := h.Repo.LoadBatch(ctx, batch)
		if err != nil {
			return nil, http.StatusInternalServerError, "internal server error"
		}
		if len(rows) == 0 {
			return nil, http.StatusNotFound, "batch not found"
		}

		deliveries := make([]domain.Delivery, 0, len(rows))
		for _, row := range rows {
			loc, err := domain.ParseCoord(row.LatText, row.LonText)
			if err != nil {
				return nil, http.StatusInternalServerError, "stored batch contains an invalid coordinate"
			}
			deliveries = append(deliveries, domain.Delivery{Item: row.Item, Location: loc})
		}
		return deliveries, 0, ""
	}

	deliveries := make([]domain.Delivery, 0, len(req.Deliveries))
	for _, d := range req.Deliveries {
		loc, err := d.Location.Parse()
		if err != nil {
			return nil, http.StatusBadRequest, "invalid delivery coordinate"
		}
		deliveries = append(deliveries, domain.Delivery{Item: d.Item, Location: loc})
	}
	return deliveries, 0, ""
}

func seedFrom(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}
