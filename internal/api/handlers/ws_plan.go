package handlers

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"

	"courierdispatch/internal/api/dto"
	"courierdispatch/internal/domain"
	"courierdispatch/internal/optimizer"
	"courierdispatch/internal/planner"
)

// WSPlanHandler streams optimizer progress over a WebSocket for a request
// shaped like POST /plan's, sent as the connection's first text frame.
// Only inline deliveries are read; a saved batch name is not looked up.
// The core planner/optimizer stay synchronous and single-threaded; this
// handler only decorates that call with progress events, a transport-level
// addition with no effect on the planning result itself.
type WSPlanHandler struct {
	Router Router
}

func (h *WSPlanHandler) ServePlan(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: []string{"*"}})
	if err != nil {
		log.Printf("ws plan: accept failed: %v", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	ctx := r.Context()

	_, data, err := conn.Read(ctx)
	if err != nil {
		log.Printf("ws plan: read request frame: %v", err)
		return
	}

	var req dto.PlanRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.writeEvent(ctx, conn, dto.PlanProgressEvent{Type: "error"})
		conn.Close(websocket.StatusUnsupportedData, "invalid json")
		return
	}

	depot, err := req.Depot.Parse()
	if err != nil {
		h.sendErr(ctx, conn, "invalid depot coordinate")
		return
	}

	deliveries := make([]domain.Delivery, 0, len(req.Deliveries))
	for _, d := range req.Deliveries {
		loc, err := d.Location.Parse()
		if err != nil {
			h.sendErr(ctx, conn, "invalid delivery coordinate")
			return
		}
		deliveries = append(deliveries, domain.Delivery{Item: d.Item, Location: loc})
	}

	rng := rand.New(rand.NewSource(seedFrom(req.Seed)))

	onIteration := func(noImprove int, bestCost float64) {
		h.writeEvent(ctx, conn, dto.PlanProgressEvent{
			Type:      "progress",
			NoImprove: noImprove,
			BestCost:  bestCost,
		})
	}

	commands, total, err := planner.PlanWithProgress(ctx, h.Router, depot, deliveries, rng, optimizer.ProgressFunc(onIteration))
	if err != nil {
		h.sendErr(ctx, conn, err.Error())
		return
	}

	resp := dto.FromDomainCommands(commands, total)
	h.writeEvent(ctx, conn, dto.PlanProgressEvent{
		Type:       "result",
		Commands:   resp.Commands,
		TotalMiles: resp.TotalMiles,
	})

	conn.Close(websocket.StatusNormalClosure, "")
}

func (h *WSPlanHandler) sendErr(ctx context.Context, conn *websocket.Conn, msg string) {
	h.writeEvent(ctx, conn, dto.PlanProgressEvent{Type: "error"})
	log.Printf("ws plan: %s", msg)
	conn.Close(websocket.StatusUnsupportedData, msg)
}

func (h *WSPlanHandler) writeEvent(ctx context.Context, conn *websocket.Conn, event dto.PlanProgressEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := conn.Write(writeCtx, websocket.MessageText, data); err != nil {
		log.Printf("ws plan: write event: %v", err)
	}
}
