package dto

import (
	"fmt"

	"courierdispatch/internal/domain"
)

// Coord is a wire-format lat/lon pair, given as decimal-degree text so
// the parsed value matches domain.ParseCoord byte-for-byte.
type Coord struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c Coord) Parse() (domain.Coord, error) {
	coord, err := domain.ParseCoord(c.Lat, c.Lon)
	if err != nil {
		return domain.Coord{}, fmt.Errorf("parse coord: %w", err)
	}
	return coord, nil
}

func FromDomainCoord(c domain.Coord) Coord {
	return Coord{Lat: c.LatText, Lon: c.LonText}
}
