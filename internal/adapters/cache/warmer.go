package cache

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"courierdispatch/internal/domain"
)

// RouteComputer is satisfied by *router.Router and *router.CachedRouter:
// anything able to answer one route query. Warmer depends on this
// narrow interface rather than a concrete router so it can warm any
// cache-backed router without importing the adapters that back it.
type RouteComputer interface {
	Route(ctx context.Context, start, end domain.Coord) (domain.Route, float64, error)
}

// Warmer pre-populates a cache-backed RouteComputer by computing the
// route for every ordered pair drawn from a set of coordinates (depot
// plus known delivery locations), bounding in-flight requests with a
// weighted semaphore instead of fanning out one goroutine per pair
// unbounded.
type Warmer struct {
	computer    RouteComputer
	concurrency int64
}

func NewWarmer(computer RouteComputer, concurrency int) *Warmer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Warmer{computer: computer, concurrency: int64(concurrency)}
}

// Warm computes the route for every distinct ordered pair of coords. A
// computer backed by a RouteCache (via router.CachedRouter) ends up with
// every pair's result cached as a side effect. Errors are logged and
// counted, not fatal to the overall warm — one bad pair should not abort
// warming the rest.
func (w *Warmer) Warm(ctx context.Context, coords []domain.Coord) error {
	start := time.Now()

	sem := semaphore.NewWeighted(w.concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures int
	var attempted int

	for _, origin := range coords {
		for _, dest := range coords {
			if origin == dest {
				continue
			}

			if err := sem.Acquire(ctx, 1); err != nil {
				return fmt.Errorf("warm route cache: acquire semaphore: %w", err)
			}

			wg.Add(1)
			attempted++
			go func(origin, dest domain.Coord) {
				defer wg.Done()
				defer sem.Release(1)

				if _, _, err := w.computer.Route(ctx, origin, dest); err != nil {
					log.Printf("cache warmer: route %s -> %s: %v", origin, dest, err)
					mu.Lock()
					failures++
					mu.Unlock()
				}
			}(origin, dest)
		}
	}

	wg.Wait()

	log.Printf("cache warmer: warmed %d/%d pairs, %d failed, dur=%dms",
		attempted-failures, attempted, failures, time.Since(start).Milliseconds())

	return nil
}
