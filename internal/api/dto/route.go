package dto

import "courierdispatch/internal/domain"

type RouteRequest struct {
	Start Coord `json:"start"`
	End   Coord `json:"end"`
}

type SegmentResponse struct {
	Start Coord   `json:"start"`
	End   Coord   `json:"end"`
	Name  string  `json:"name"`
	Miles float64 `json:"miles"`
}

type RouteResponse struct {
	Segments []SegmentResponse `json:"segments"`
	Miles    float64           `json:"miles"`
}

func FromDomainRoute(route domain.Route, miles float64) RouteResponse {
	segments := make([]SegmentResponse, 0, len(route))
	for _, s := range route {
		segments = append(segments, SegmentResponse{
			Start: FromDomainCoord(s.Start),
			End:   FromDomainCoord(s.End),
			Name:  s.Name,
			Miles: s.Length(),
		})
	}
	return RouteResponse{Segments: segments, Miles: miles}
}
