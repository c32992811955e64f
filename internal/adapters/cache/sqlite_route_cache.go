package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"courierdispatch/internal/domain"
)

// SqliteRouteCache is a SQLite-backed ports.RouteCache, the default
// local-development store for route results.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

func (s *SqliteRouteCache) Get(ctx context.Context, originKey, destKey string) (domain.Route, float64, bool, error) {
	if s.DB == nil {
		return nil, 0, false, errors.New("route cache: db is nil")
	}

	const q = `
	SELECT route_json, miles
    FROM route_cache
    WHERE origin_key = ? AND dest_key = ?;
	`

	var routeJSON string
	var miles float64
	err := s.DB.QueryRowContext(ctx, q, originKey, destKey).Scan(&routeJSON, &miles)
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

func (s *SqliteRouteCache) Put(ctx context.Context, originKey, destKey string, route domain.Route, miles float64) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	routeJSON, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("put route cache: encode route json: %w", err)
	}

	const q = `
	INSERT OR REPLACE INTO route_cache (origin_key, dest_key, route_json, miles)
    VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, originKey, destKey, string(routeJSON), miles); err != nil {
		return fmt.Errorf("put route cache: exec insert: %w", err)
	}

	return nil
}
