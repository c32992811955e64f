// Package router computes least-distance routes over a street graph with
// A*, using great-circle distance to the destination as the heuristic.
package router

import (
	"container/heap"
	"context"
	"fmt"

	"courierdispatch/internal/domain"
)

// neighborFunc has the signature of (*streetmap.StreetMap).Neighbors;
// holding that method value instead of the concrete type keeps this
// package free of a direct streetmap import and trivially testable
// against fakes.
type neighborFunc func(c domain.Coord) ([]domain.Segment, bool)

// Router finds shortest paths over a street graph.
type Router struct {
	neighbors neighborFunc
}

// Graph is the subset of streetmap.StreetMap's contract the router needs.
type Graph interface {
	Neighbors(c domain.Coord) ([]domain.Segment, bool)
}

// New builds a Router over g.
func New(g Graph) *Router {
	return &Router{neighbors: g.Neighbors}
}

// Route finds the least-distance path from start to end using A* with a
// haversine-to-goal heuristic (admissible and consistent, since it never
// overestimates great-circle distance and the graph's edge costs are
// themselves great-circle distances). It returns domain.ErrBadCoord if
// either endpoint is not a vertex of the graph, and domain.ErrNoRoute if
// the graph has no path between them. A zero-length route (start == end)
// succeeds with an empty Route and zero cost.
//
// ctx carries no cancellation into the in-memory search itself (the
// graph traversal never blocks); it exists so Route's signature matches
// callers that wrap it with I/O, such as a cache-backed decorator.
func (r *Router) Route(ctx context.Context, start, end domain.Coord) (domain.Route, float64, error) {
	if _, ok := r.neighbors(start); !ok {
		return nil, 0, fmt.Errorf("router: start %s: %w", start, domain.ErrBadCoord)
	}
	if _, ok := r.neighbors(end); !ok {
		return nil, 0, fmt.Errorf("router: end %s: %w", end, domain.ErrBadCoord)
	}

	if start == end {
		return domain.Route{}, 0, nil
	}

	gCosts := map[domain.Coord]float64{start: 0}
	cameFrom := map[domain.Coord]domain.Coord{}

	pq := &priorityQueue{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, &queueItem{coord: start, gCost: 0, fCost: domain.HaversineMiles(start, end), seq: seq})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*queueItem)
		current := item.coord

		currentG, ok := gCosts[current]
		if !ok || item.gCost > currentG {
			// Stale entry: a cheaper path to current was already found and
			// popped, or superseded since this item was pushed. Skip it
			// rather than support decrease-key in the heap.
			continue
		}

		if current == end {
			return reconstructRoute(r.neighbors, cameFrom, start, end)
		}

		segs, _ := r.neighbors(current)
		for _, seg := range segs {
			newG := currentG + seg.Length()
			if existing, ok := gCosts[seg.End]; ok && newG >= existing {
				continue
			}
			gCosts[seg.End] = newG
			cameFrom[seg.End] = current
			seq++
			heap.Push(pq, &queueItem{
				coord: seg.End,
				gCost: newG,
				fCost: newG + domain.HaversineMiles(seg.End, end),
				seq:   seq,
			})
		}
	}

	return nil, 0, fmt.Errorf("router: %s to %s: %w", start, end, domain.ErrNoRoute)
}

// reconstructRoute walks cameFrom backward from end to start, looking up
// the actual traversed segment at each step (rather than synthesizing a
// straight line) by searching the predecessor's outgoing segments for the
// one ending at the successor, then reverses the result into start->end
// order.
func reconstructRoute(neighbors neighborFunc, cameFrom map[domain.Coord]domain.Coord, start, end domain.Coord) (domain.Route, float64, error) {
	route := make(domain.Route, 0)
	total := 0.0

	current := end
	for current != start {
		prev, ok := cameFrom[current]
		if !ok {
			return nil, 0, fmt.Errorf("router: %s to %s: %w", start, end, domain.ErrNoRoute)
		}

		segs, _ := neighbors(prev)
		var found domain.Segment
		ok = false
		for _, seg := range segs {
			if seg.End == current {
				found = seg
				ok = true
				break
			}
		}
		if !ok {
			return nil, 0, fmt.Errorf("router: %s to %s: %w", start, end, domain.ErrNoRoute)
		}

		route = append(route, found)
		total += found.Length()
		current = prev
	}

	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}

	return route, total, nil
}
