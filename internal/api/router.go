// Package api wires HTTP handlers to their dependencies. Handlers stay
// unaware of concrete adapters, depending only on the narrow interfaces
// declared alongside them.
package api

import (
	"net/http"

	"courierdispatch/internal/api/handlers"
	"courierdispatch/internal/middleware"
	"courierdispatch/internal/ports"
)

// NewRouter is the API composition root: it returns an http.Handler
// wrapping request-ID assignment, request logging, and per-IP rate
// limiting around the core operations' handlers.
func NewRouter(router handlers.Router, graph handlers.GraphStats, repo ports.DeliveryRepository, limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Router: router}
	planHandler := &handlers.PlanHandler{Router: router, Repo: repo}
	graphHandler := &handlers.GraphHandler{Graph: graph}
	wsPlanHandler := &handlers.WSPlanHandler{Router: router}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/route", routeHandler.Route)
	mux.HandleFunc("/plan", planHandler.Plan)
	mux.HandleFunc("/graph/stats", graphHandler.Stats)
	mux.HandleFunc("/ws/plan", wsPlanHandler.ServePlan)

	var h http.Handler = mux
	if limiter != nil {
		h = limiter.Middleware(h)
	}
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)

	return h
}
