package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"courierdispatch/internal/domain"
	"courierdispatch/internal/streetmap"
)

// grid builds a simple 2x2 street grid:
//
//	A --- B
//	|     |
//	C --- D
//
// with AB, CD, AC, BD each one segment long (roughly), so that the
// shortest path from A to D must choose between A-B-D and A-C-D.
const gridMap = `Top
1
0.0 0.0 0.0 1.0
Bottom
1
1.0 0.0 1.0 1.0
Left
1
0.0 0.0 1.0 0.0
Right
1
0.0 1.0 1.0 1.0
`

func loadGrid(t *testing.T) *streetmap.StreetMap {
	t.Helper()
	sm, err := streetmap.Load(strings.NewReader(gridMap))
	if err != nil {
		t.Fatalf("streetmap.Load: %v", err)
	}
	return sm
}

func coord(t *testing.T, lat, lon string) domain.Coord {
	t.Helper()
	c, err := domain.ParseCoord(lat, lon)
	if err != nil {
		t.Fatalf("ParseCoord: %v", err)
	}
	return c
}

func TestRouteFindsShortestPath(t *testing.T) {
	sm := loadGrid(t)
	r := New(sm)
	ctx := context.Background()

	a := coord(t, "0.0", "0.0")
	d := coord(t, "1.0", "1.0")

	route, miles, err := r.Route(ctx, a, d)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(route) != 2 {
		t.Fatalf("Route() len = %d, want 2", len(route))
	}
	if route[0].Start != a {
		t.Errorf("route[0].Start = %v, want %v", route[0].Start, a)
	}
	if route[len(route)-1].End != d {
		t.Errorf("route[last].End = %v, want %v", route[len(route)-1].End, d)
	}
	for i := 1; i < len(route); i++ {
		if route[i-1].End != route[i].Start {
			t.Errorf("route not contiguous at %d: %v -> %v", i, route[i-1], route[i])
		}
	}
	if miles <= 0 {
		t.Errorf("miles = %f, want > 0", miles)
	}
}

func TestRouteZeroLength(t *testing.T) {
	sm := loadGrid(t)
	r := New(sm)
	ctx := context.Background()

	a := coord(t, "0.0", "0.0")
	route, miles, err := r.Route(ctx, a, a)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if len(route) != 0 {
		t.Errorf("route = %v, want empty", route)
	}
	if miles != 0 {
		t.Errorf("miles = %f, want 0", miles)
	}
}

func TestRouteBadCoord(t *testing.T) {
	sm := loadGrid(t)
	r := New(sm)
	ctx := context.Background()

	a := coord(t, "0.0", "0.0")
	bogus := coord(t, "99.0", "99.0")

	if _, _, err := r.Route(ctx, bogus, a); !errors.Is(err, domain.ErrBadCoord) {
		t.Fatalf("Route(bogus, a) err = %v, want ErrBadCoord", err)
	}
	if _, _, err := r.Route(ctx, a, bogus); !errors.Is(err, domain.ErrBadCoord) {
		t.Fatalf("Route(a, bogus) err = %v, want ErrBadCoord", err)
	}
}

func TestRouteNoPath(t *testing.T) {
	// Two disjoint segments: no path between them exists.
	src := "Island One\n1\n0.0 0.0 0.0 1.0\nIsland Two\n1\n10.0 10.0 10.0 11.0\n"
	sm, err := streetmap.Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("streetmap.Load: %v", err)
	}
	r := New(sm)
	ctx := context.Background()

	a := coord(t, "0.0", "0.0")
	b := coord(t, "10.0", "10.0")

	if _, _, err := r.Route(ctx, a, b); !errors.Is(err, domain.ErrNoRoute) {
		t.Fatalf("Route(a, b) err = %v, want ErrNoRoute", err)
	}
}
