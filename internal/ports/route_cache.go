package ports

import (
	"context"

	"courierdispatch/internal/domain"
)

// RouteCache stores previously computed routes keyed by the textual form
// of their origin and destination coordinates, so that repeat legs
// across many delivery plans sharing a depot skip re-running A*.
type RouteCache interface {
	Get(ctx context.Context, originKey, destKey string) (domain.Route, float64, bool, error)
	Put(ctx context.Context, originKey, destKey string, route domain.Route, miles float64) error
}
