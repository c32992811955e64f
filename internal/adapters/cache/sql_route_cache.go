package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"courierdispatch/internal/domain"
	"courierdispatch/internal/platform/obs"
)

// SQLRouteCache is a Postgres-backed ports.RouteCache, storing each route
// as its JSON-encoded segment list alongside the reported mile cost.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

func (s *SQLRouteCache) Get(ctx context.Context, originKey, destKey string) (_ domain.Route, _ float64, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return nil, 0, false, errors.New("route cache: db is nil")
	}

	const q = `
	SELECT route_json, miles
    FROM route_cache
    WHERE origin_key = $1 AND dest_key = $2;
	`

	var routeJSON string
	var miles float64
	err = s.DB.QueryRowContext(ctx, q, originKey, destKey).Scan(&routeJSON, &miles)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	var route domain.Route
	if err := json.Unmarshal([]byte(routeJSON), &route); err != nil {
		return nil, 0, false, fmt.Errorf("get route cache: decode route json: %w", err)
	}

	return route, miles, true, nil
}

func (s *SQLRouteCache) Put(ctx context.Context, originKey, destKey string, route domain.Route, miles float64) (err error) {
	defer obs.Time(ctx, "route.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	routeJSON, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("put route cache: encode route json: %w", err)
	}

	const q = `
	INSERT INTO route_cache (origin_key, dest_key, route_json, miles)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin_key, dest_key) DO UPDATE
	SET route_json = EXCLUDED.route_json,
		miles = EXCLUDED.miles;
	`

	if _, err := s.DB.ExecContext(ctx, q, originKey, destKey, string(routeJSON), miles); err != nil {
		return fmt.Errorf("put route cache: exec insert: %w", err)
	}

	return nil
}
