package router

import (
	"context"
	"log"

	"courierdispatch/internal/domain"
)

// Cache is the subset of ports.RouteCache the cached router needs. It is
// declared here, rather than imported from ports, so this package stays
// free of a dependency on the adapters tree; any concrete RouteCache
// satisfies it structurally.
type Cache interface {
	Get(ctx context.Context, originKey, destKey string) (domain.Route, float64, bool, error)
	Put(ctx context.Context, originKey, destKey string, route domain.Route, miles float64) error
}

// CachedRouter decorates a Router with a read-through cache keyed on the
// textual form of each endpoint. Cache errors never fail a route: they
// are logged and treated as a miss, since a cache is an optimization,
// not a source of truth.
type CachedRouter struct {
	inner *Router
	cache Cache
}

// NewCached wraps r with cache.
func NewCached(r *Router, cache Cache) *CachedRouter {
	return &CachedRouter{inner: r, cache: cache}
}

func (c *CachedRouter) Route(ctx context.Context, start, end domain.Coord) (domain.Route, float64, error) {
	originKey, destKey := start.String(), end.String()

	if route, miles, ok, err := c.cache.Get(ctx, originKey, destKey); err != nil {
		log.Printf("router: cache get origin=%s dest=%s: %v", originKey, destKey, err)
	} else if ok {
		return route, miles, nil
	}

	route, miles, err := c.inner.Route(ctx, start, end)
	if err != nil {
		return nil, 0, err
	}

	if err := c.cache.Put(ctx, originKey, destKey, route, miles); err != nil {
		log.Printf("router: cache put origin=%s dest=%s: %v", originKey, destKey, err)
	}

	return route, miles, nil
}
