package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeGraphStats struct {
	vertices, segments int
}

func (f fakeGraphStats) VertexCount() int  { return f.vertices }
func (f fakeGraphStats) SegmentCount() int { return f.segments }

func TestGraphHandlerStats(t *testing.T) {
	h := &GraphHandler{Graph: fakeGraphStats{vertices: 4, segments: 8}}

	req := httptest.NewRequest(http.MethodGet, "/graph/stats", nil)
	rr := httptest.NewRecorder()
	h.Stats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got := rr.Body.String(); got != `{"vertices":4,"segments":8}`+"\n" {
		t.Errorf("body = %q", got)
	}
}

func TestGraphHandlerWrongMethod(t *testing.T) {
	h := &GraphHandler{Graph: fakeGraphStats{}}

	req := httptest.NewRequest(http.MethodPost, "/graph/stats", nil)
	rr := httptest.NewRecorder()
	h.Stats(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}
