package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"courierdispatch/internal/domain"
	"courierdispatch/internal/ports"
)

type fakeDeliveryRepo struct {
	batches map[string][]ports.DeliveryBatch
}

func (f *fakeDeliveryRepo) SaveBatch(ctx context.Context, batchName string, items []ports.DeliveryBatch) error {
	if f.batches == nil {
		f.batches = map[string][]ports.DeliveryBatch{}
	}
	f.batches[batchName] = items
	return nil
}

func (f *fakeDeliveryRepo) LoadBatch(ctx context.Context, batchName string) ([]ports.DeliveryBatch, error) {
	return f.batches[batchName], nil
}

func (f *fakeDeliveryRepo) ListBatches(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(f.batches))
	for name := range f.batches {
		names = append(names, name)
	}
	return names, nil
}

// straightLineRouter routes every leg as a single direct segment named
// "Test St", for exercising the planner without a real street graph.
type straightLineRouter struct{}

func (straightLineRouter) Route(ctx context.Context, start, end domain.Coord) (domain.Route, float64, error) {
	if start == end {
		return domain.Route{}, 0, nil
	}
	return domain.Route{{Start: start, End: end, Name: "Test St"}}, domain.HaversineMiles(start, end), nil
}

func TestPlanHandlerInlineDeliveries(t *testing.T) {
	h := &PlanHandler{Router: straightLineRouter{}}

	body := `{
		"depot": {"lat": "0.0", "lon": "0.0"},
		"deliveries": [
			{"item": "parcel-1", "location": {"lat": "1.0", "lon": "0.0"}}
		]
	}`
	rr := postJSON(t, h.Plan, "/plan", body)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Commands   []map[string]any `json:"commands"`
		TotalMiles float64          `json:"total_miles"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalMiles <= 0 {
		t.Errorf("total_miles = %f, want > 0", resp.TotalMiles)
	}
	if len(resp.Commands) == 0 {
		t.Errorf("commands = empty, want at least one")
	}
}

func TestPlanHandlerBatchLookup(t *testing.T) {
	repo := &fakeDeliveryRepo{batches: map[string][]ports.DeliveryBatch{
		"morning-run": {{Item: "parcel-1", LatText: "1.0", LonText: "0.0"}},
	}}
	h := &PlanHandler{Router: straightLineRouter{}, Repo: repo}

	body := `{"depot": {"lat": "0.0", "lon": "0.0"}, "batch": "morning-run"}`
	rr := postJSON(t, h.Plan, "/plan", body)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rr.Code, rr.Body.String())
	}
}

func TestPlanHandlerUnknownBatch(t *testing.T) {
	repo := &fakeDeliveryRepo{}
	h := &PlanHandler{Router: straightLineRouter{}, Repo: repo}

	body := `{"depot": {"lat": "0.0", "lon": "0.0"}, "batch": "does-not-exist"}`
	rr := postJSON(t, h.Plan, "/plan", body)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestPlanHandlerBadDepotCoord(t *testing.T) {
	h := &PlanHandler{Router: straightLineRouter{}}

	body := `{"depot": {"lat": "not-a-number", "lon": "0.0"}}`
	rr := postJSON(t, h.Plan, "/plan", body)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}
