// Package planner turns an optimized delivery order into a turn-by-turn
// navigation plan: per-leg routes stitched together, same-street segments
// collapsed into single Proceed commands, turns labeled, and Deliver
// commands interleaved at each delivery.
package planner

import (
	"context"
	"fmt"
	"math/rand"

	"courierdispatch/internal/domain"
	"courierdispatch/internal/optimizer"
)

// Router is the subset of router.Router's contract the planner needs.
type Router interface {
	Route(ctx context.Context, start, end domain.Coord) (domain.Route, float64, error)
}

// Plan optimizes a copy of deliveries for a shorter round trip, routes
// every consecutive leg of depot -> deliveries... -> depot, and emits the
// resulting navigation commands. The input deliveries slice is never
// mutated; the order visible in the returned Deliver commands reflects
// the optimizer's reordering of the internal copy.
//
// Returns domain.ErrBadCoord or domain.ErrNoRoute, wrapped with the
// failing leg's endpoints, if any leg cannot be routed.
func Plan(ctx context.Context, rtr Router, depot domain.Coord, deliveries []domain.Delivery, rng *rand.Rand) ([]domain.Command, float64, error) {
	return PlanWithProgress(ctx, rtr, depot, deliveries, rng, nil)
}

// PlanWithProgress is Plan with an optional optimizer progress callback,
// invoked as the reordering search runs, before any leg is routed. Pass a
// nil onIteration to get Plan's behavior exactly.
func PlanWithProgress(ctx context.Context, rtr Router, depot domain.Coord, deliveries []domain.Delivery, rng *rand.Rand, onIteration optimizer.ProgressFunc) ([]domain.Command, float64, error) {
	ordered := make([]domain.Delivery, len(deliveries))
	copy(ordered, deliveries)
	optimizer.OptimizeWithProgress(depot, ordered, rng, onIteration)

	waypoints := make([]domain.Coord, 0, len(ordered)+2)
	waypoints = append(waypoints, depot)
	for _, d := range ordered {
		waypoints = append(waypoints, d.Location)
	}
	waypoints = append(waypoints, depot)

	var commands []domain.Command
	total := 0.0

	for i := 0; i < len(waypoints)-1; i++ {
		route, miles, err := rtr.Route(ctx, waypoints[i], waypoints[i+1])
		if err != nil {
			return nil, 0, fmt.Errorf("planner: leg %s to %s: %w", waypoints[i], waypoints[i+1], err)
		}
		total += miles
		commands = append(commands, emitLeg(route)...)

		if i < len(ordered) {
			commands = append(commands, domain.NewDeliver(ordered[i].Item))
		}
	}

	return commands, total, nil
}

// emitLeg walks a single leg's segments in order, accumulating a pending
// Proceed command across consecutive same-street segments and emitting a
// Turn whenever the street changes with a non-straight turn angle.
func emitLeg(route domain.Route) []domain.Command {
	if len(route) == 0 {
		return nil
	}

	var commands []domain.Command

	first := route[0]
	cur := domain.NewProceed(compassOfBearing(domain.BearingDegrees(first)), first.Name, first.Length())
	last := first

	for _, seg := range route[1:] {
		if seg.Name == last.Name {
			cur.Miles += seg.Length()
			last = seg
			continue
		}

		commands = append(commands, cur)

		angle := domain.TurnAngleDegrees(last, seg)
		if !isStraight(angle) {
			commands = append(commands, domain.NewTurn(turnDirection(angle), seg.Name))
		}

		cur = domain.NewProceed(compassOfBearing(domain.BearingDegrees(seg)), seg.Name, seg.Length())
		last = seg
	}

	commands = append(commands, cur)
	return commands
}
