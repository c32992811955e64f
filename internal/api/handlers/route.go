package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"courierdispatch/internal/api/dto"
	"courierdispatch/internal/domain"
)

// Router is the subset of router.Router's/router.CachedRouter's contract
// this handler needs.
type Router interface {
	Route(ctx context.Context, start, end domain.Coord) (domain.Route, float64, error)
}

type RouteHandler struct {
	Router Router
}

// Route handles POST /route: a single point-to-point A* query.
func (h *RouteHandler) Route(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest
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

	start, err := req.Start.Parse()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid start coordinate")
		return
	}
	end, err := req.End.Parse()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid end coordinate")
		return
	}

	route, miles, err := h.Router.Route(r.Context(), start, end)
	if err != nil {
		status, msg := routeErrorStatus(err)
		writeError(w, r, status, msg)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromDomainRoute(route, miles))
}
