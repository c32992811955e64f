package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"courierdispatch/internal/adapters/cache"
	"courierdispatch/internal/adapters/repositories"
	"courierdispatch/internal/api"
	"courierdispatch/internal/api/handlers"
	"courierdispatch/internal/domain"
	"courierdispatch/internal/middleware"
	"courierdispatch/internal/platform/config"
	"courierdispatch/internal/platform/db"
	"courierdispatch/internal/ports"
	"courierdispatch/internal/router"
	"courierdispatch/internal/streetmap"
)

// main is the application composition root: it loads the street map,
// opens whichever cache and delivery-batch stores are configured, and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	graph, err := loadStreetMap(cfg.MapFile)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("street map loaded: vertices=%d segments=%d", graph.VertexCount(), graph.SegmentCount())

	sqliteDB, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		log.Fatalf("open sqlite database %q: %v", cfg.SQLitePath, err)
	}
	defer sqliteDB.Close()
	if err := repositories.InitSchema(sqliteDB); err != nil {
		log.Fatalf("init sqlite schema: %v", err)
	}

	repo := buildDeliveryRepository(cfg, sqliteDB)

	httpRouter := buildRouter(cfg, graph, sqliteDB)
	if cfg.WarmOnStart {
		warmCacheOnStart(cfg, httpRouter, repo)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerWindow, cfg.RateLimitWindow)
	mux := api.NewRouter(httpRouter, graph, repo, limiter)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("server listening addr=%s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}

func loadStreetMap(path string) (*streetmap.StreetMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return streetmap.Load(f)
}

// buildDeliveryRepository uses Postgres when DATABASE_URL is set,
// otherwise the SQLite database the server already opened for local
// development and tests.
func buildDeliveryRepository(cfg *config.Config, sqliteDB *sql.DB) ports.DeliveryRepository {
	if cfg.DatabaseURL == "" {
		return repositories.NewSqliteDeliveryRepository(sqliteDB)
	}

	pgDB, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open postgres database: %v", err)
	}
	if err := repositories.InitPostgresSchema(context.Background(), pgDB); err != nil {
		log.Fatalf("init postgres schema: %v", err)
	}
	return repositories.NewSQLDeliveryRepository(pgDB)
}

// buildRouter wraps the in-memory A* router with a read-through cache:
// Redis when enabled, else Postgres when DATABASE_URL is set, else the
// local SQLite database.
func buildRouter(cfg *config.Config, graph *streetmap.StreetMap, sqliteDB *sql.DB) handlers.Router {
	baseRouter := router.New(graph)

	switch {
	case cfg.RedisEnabled:
		redisCache, err := cache.NewRedisRouteCache(cfg.RedisAddr, cfg.RedisDB, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("connect redis route cache: %v", err)
		}
		return router.NewCached(baseRouter, redisCache)

	case cfg.DatabaseURL != "":
		pgDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("open postgres database: %v", err)
		}
		return router.NewCached(baseRouter, cache.NewSQLRouteCache(pgDB))

	default:
		return router.NewCached(baseRouter, cache.NewSqliteRouteCache(sqliteDB))
	}
}

// warmCacheOnStart pre-computes routes between the depot and every
// delivery location across every saved batch, so the first POST /plan
// against a warmed batch hits a populated cache instead of computing
// every leg cold.
func warmCacheOnStart(cfg *config.Config, computer cache.RouteComputer, repo ports.DeliveryRepository) {
	ctx := context.Background()

	batches, err := repo.ListBatches(ctx)
	if err != nil {
		log.Printf("cache warm: list batches: %v", err)
		return
	}

	depot, err := domain.ParseCoord(cfg.HubLat, cfg.HubLon)
	if err != nil {
		log.Printf("cache warm: invalid hub coordinate: %v", err)
		return
	}

	warmer := cache.NewWarmer(computer, cfg.WarmConcurrent)

	for _, batchName := range batches {
		items, err := repo.LoadBatch(ctx, batchName)
		if err != nil {
			log.Printf("cache warm: load batch %q: %v", batchName, err)
			continue
		}

		coords := make([]domain.Coord, 0, len(items)+1)
		coords = append(coords, depot)
		for _, item := range items {
			loc, err := domain.ParseCoord(item.LatText, item.LonText)
			if err != nil {
				continue
			}
			coords = append(coords, loc)
		}

		if err := warmer.Warm(ctx, coords); err != nil {
			log.Printf("cache warm: batch %q: %v", batchName, err)
		}
	}
}
