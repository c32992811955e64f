// Package optimizer reorders a depot round trip's deliveries to shrink
// its crow-flight length via a swap-based simulated-annealing-flavored
// local search.
package optimizer

import (
	"math/rand"

	"courierdispatch/internal/domain"
)

// ProgressFunc is called after each non-improving iteration of
// OptimizeWithProgress with the current streak length and best cost found
// so far, letting a caller (e.g. a WebSocket handler) stream progress
// without the core search itself knowing about transport.
type ProgressFunc func(noImprove int, bestCost float64)

// Optimize reorders deliveries in place to reduce the crow-flight length
// of the round trip depot -> deliveries -> depot, and returns the
// round-trip length before and after. Empty and single-element inputs are
// no-ops; both returned distances are then equal (0 for empty).
//
// The search is a 2-swap local search with simulated-annealing-flavored
// acceptance of worse moves: starting from acceptance probability 0.90,
// every non-improving move (whether accepted or not) decays it by a
// factor of 0.9, so the walk contracts toward a pure greedy hill-climb
// the longer it goes without finding a new best. It stops once
// min(2*len(deliveries), 15) non-improving moves have been made since the
// last new best; a move that improves the current tour without beating the
// best does not count toward that limit.
func Optimize(depot domain.Coord, deliveries []domain.Delivery, rng *rand.Rand) (oldCrow, newCrow float64) {
	return OptimizeWithProgress(depot, deliveries, rng, nil)
}

// OptimizeWithProgress is Optimize with an optional per-iteration
// progress callback; pass a nil onIteration to get Optimize's behavior
// exactly.
func OptimizeWithProgress(depot domain.Coord, deliveries []domain.Delivery, rng *rand.Rand, onIteration ProgressFunc) (oldCrow, newCrow float64) {
	oldCrow = crow(depot, deliveries)

	if len(deliveries) < 2 {
		return oldCrow, oldCrow
	}

	best := make([]domain.Delivery, len(deliveries))
	copy(best, deliveries)
	bestCost := oldCrow

	current := make([]domain.Delivery, len(deliveries))
	copy(current, deliveries)
	currentCost := oldCrow

	limit := 2 * len(deliveries)
	if limit > 15 {
		limit = 15
	}

	acceptance := 0.90
	noImprove := 0

	for noImprove < limit {
		i, j := distinctPositions(rng, len(current))
		current[i], current[j] = current[j], current[i]
		candidateCost := crow(depot, current)

		if candidateCost < currentCost {
			currentCost = candidateCost
			if candidateCost < bestCost {
				bestCost = candidateCost
				copy(best, current)
				noImprove = 0
			}
			continue
		}

		if rng.Float64() < acceptance {
			currentCost = candidateCost
		} else {
			current[i], current[j] = current[j], current[i]
		}
		noImprove++
		acceptance *= 0.9
		if onIteration != nil {
			onIteration(noImprove, bestCost)
		}
	}

	copy(deliveries, best)
	return oldCrow, bestCost
}

// crow is the round-trip crow-flight length of depot -> deliveries -> depot.
func crow(depot domain.Coord, deliveries []domain.Delivery) float64 {
	total := 0.0
	current := depot
	for _, d := range deliveries {
		total += domain.HaversineMiles(current, d.Location)
		current = d.Location
	}
	total += domain.HaversineMiles(current, depot)
	return total
}

func distinctPositions(rng *rand.Rand, n int) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n)
	for j == i {
		j = rng.Intn(n)
	}
	return i, j
}
