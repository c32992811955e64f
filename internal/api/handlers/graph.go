package handlers

import "net/http"

// GraphStats is satisfied by *streetmap.StreetMap.
type GraphStats interface {
	VertexCount() int
	SegmentCount() int
}

type GraphHandler struct {
	Graph GraphStats
}

type graphStatsResponse struct {
	Vertices int `json:"vertices"`
	Segments int `json:"segments"`
}

// Stats reports the loaded street graph's size, for operational
// visibility into what map was loaded.
func (h *GraphHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, graphStatsResponse{
		Vertices: h.Graph.VertexCount(),
		Segments: h.Graph.SegmentCount(),
	})
}
