package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"courierdispatch/internal/domain"
	"courierdispatch/internal/streetmap"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// routeErrorStatus maps the core's sentinel routing errors to an HTTP
// status: bad_coord is a client error (422), no_route is a conflict
// between a valid request and the graph's connectivity (409), and a
// street-map ParseError is a malformed-input 400. Anything else is a 500.
func routeErrorStatus(err error) (int, string) {
	var parseErr *streetmap.ParseError
	switch {
	case errors.Is(err, domain.ErrBadCoord):
		return http.StatusUnprocessableEntity, "bad coord: endpoint not present in street graph"
	case errors.Is(err, domain.ErrNoRoute):
		return http.StatusConflict, "no route: destination unreachable from start"
	case errors.As(err, &parseErr):
		return http.StatusBadRequest, parseErr.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
