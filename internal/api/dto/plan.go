package dto

import "courierdispatch/internal/domain"

type DeliveryRequest struct {
	Item     string `json:"item"`
	Location Coord  `json:"location"`
}

type PlanRequest struct {
	Depot      Coord             `json:"depot"`
	Deliveries []DeliveryRequest `json:"deliveries,omitempty"`
	Batch      string            `json:"batch,omitempty"`
	Seed       *int64            `json:"seed,omitempty"`
}

type CommandResponse struct {
	Kind       string  `json:"kind"`
	Direction  string  `json:"direction,omitempty"`
	StreetName string  `json:"street_name,omitempty"`
	Item       string  `json:"item,omitempty"`
	Miles      float64 `json:"miles,omitempty"`
}

type PlanResponse struct {
	Commands   []CommandResponse `json:"commands"`
	TotalMiles float64           `json:"total_miles"`
}

func FromDomainCommand(c domain.Command) CommandResponse {
	resp := CommandResponse{Direction: c.Direction, StreetName: c.StreetName, Item: c.Item, Miles: c.Miles}
	switch c.Kind {
	case domain.Proceed:
		resp.Kind = "proceed"
	case domain.Turn:
		resp.Kind = "turn"
	case domain.Deliver:
		resp.Kind = "deliver"
	default:
		resp.Kind = "unknown"
	}
	return resp
}

func FromDomainCommands(commands []domain.Command, totalMiles float64) PlanResponse {
	out := make([]CommandResponse, 0, len(commands))
	for _, c := range commands {
		out = append(out, FromDomainCommand(c))
	}
	return PlanResponse{Commands: out, TotalMiles: totalMiles}
}

// PlanProgressEvent is one frame of the WebSocket plan stream, sent once
// per non-improving optimizer iteration before the final result frame.
type PlanProgressEvent struct {
	Type       string  `json:"type"`
	NoImprove  int     `json:"no_improve,omitempty"`
	BestCost   float64 `json:"best_cost,omitempty"`
	Commands   []CommandResponse `json:"commands,omitempty"`
	TotalMiles float64 `json:"total_miles,omitempty"`
}
