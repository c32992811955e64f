package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"courierdispatch/internal/platform/obs"
	"courierdispatch/internal/ports"
)

// SQLDeliveryRepository is a Postgres-backed ports.DeliveryRepository,
// storing each batch as one row per item keyed by batch name.
type SQLDeliveryRepository struct{ DB *sql.DB }

func NewSQLDeliveryRepository(db *sql.DB) *SQLDeliveryRepository {
	return &SQLDeliveryRepository{DB: db}
}

func (s *SQLDeliveryRepository) SaveBatch(ctx context.Context, batchName string, items []ports.DeliveryBatch) (err error) {
	defer obs.Time(ctx, "delivery.repository.SaveBatch")(&err)

	if s.DB == nil {
		return errors.New("sql delivery repository: DB is nil")
	}
	if batchName == "" {
		return errors.New("sql delivery repository: batch name cannot be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save batch: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM delivery_batches WHERE batch_name = $1;`, batchName); err != nil {
		return fmt.Errorf("save batch: clear existing batch %q: %w", batchName, err)
	}

	const insertQuery = `
	INSERT INTO delivery_batches (batch_name, item, lat_text, lon_text)
	VALUES ($1, $2, $3, $4);
	`
	for _, item := range items {
		if _, err := tx.ExecContext(ctx, insertQuery, batchName, item.Item, item.LatText, item.LonText); err != nil {
			return fmt.Errorf("save batch: insert item=%q: %w", item.Item, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save batch: commit tx: %w", err)
	}

	return nil
}

func (s *SQLDeliveryRepository) LoadBatch(ctx context.Context, batchName string) (_ []ports.DeliveryBatch, err error) {
	defer obs.Time(ctx, "delivery.repository.LoadBatch")(&err)

	if s.DB == nil {
		return nil, errors.New("sql delivery repository: DB is nil")
	}

	const q = `
	SELECT item, lat_text, lon_text
	FROM delivery_batches
	WHERE batch_name = $1
	ORDER BY item;
	`
	rows, err := s.DB.QueryContext(ctx, q, batchName)
	if err != nil {
		return nil, fmt.Errorf("load batch: query delivery_batches table: %w", err)
	}
	defer rows.Close()

	items := make([]ports.DeliveryBatch, 0, 16)
	for rows.Next() {
		var item ports.DeliveryBatch
		if err := rows.Scan(&item.Item, &item.LatText, &item.LonText); err != nil {
			return nil, fmt.Errorf("load batch: scan row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load batch: row iteration: %w", err)
	}

	return items, nil
}

func (s *SQLDeliveryRepository) ListBatches(ctx context.Context) (_ []string, err error) {
	defer obs.Time(ctx, "delivery.repository.ListBatches")(&err)

	if s.DB == nil {
		return nil, errors.New("sql delivery repository: DB is nil")
	}

	const q = `SELECT DISTINCT batch_name FROM delivery_batches ORDER BY batch_name;`
	rows, err := s.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list batches: query delivery_batches table: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, 16)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list batches: scan row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list batches: row iteration: %w", err)
	}

	return names, nil
}

// SeedPostgresFromJSON mirrors SeedFromJSON's file format and validation
// against a Postgres-backed delivery repository.
func SeedPostgresFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed deliveries: read %q: %w", jsonPath, err)
	}

	var seed struct {
		BatchName  string              `json:"batch_name"`
		Deliveries []DeliveryBatchSeed `json:"deliveries"`
	}
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("seed deliveries: parse json: %w", err)
	}

	batchName := strings.TrimSpace(seed.BatchName)
	if batchName == "" {
		return fmt.Errorf("seed deliveries: batch_name must not be empty")
	}

	items := make([]ports.DeliveryBatch, 0, len(seed.Deliveries))
	for i, d := range seed.Deliveries {
		item := strings.TrimSpace(d.Item)
		if item == "" {
			return fmt.Errorf("seed deliveries: item at index %d: item cannot be empty", i+1)
		}
		lat := strings.TrimSpace(d.Lat)
		lon := strings.TrimSpace(d.Lon)
		if lat == "" || lon == "" {
			return fmt.Errorf("seed deliveries: item %q at index %d: lat/lon cannot be empty", item, i+1)
		}
		items = append(items, ports.DeliveryBatch{Item: item, LatText: lat, LonText: lon})
	}

	repo := NewSQLDeliveryRepository(db)
	return repo.SaveBatch(ctx, batchName, items)
}

// InitPostgresSchema creates the delivery_batches and route_cache tables
// for a Postgres-backed deployment, mirroring InitSchema's SQLite tables.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS delivery_batches (
			batch_name TEXT NOT NULL,
			item       TEXT NOT NULL,
			lat_text   TEXT NOT NULL,
			lon_text   TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS route_cache (
			origin_key TEXT NOT NULL,
			dest_key   TEXT NOT NULL,
			route_json TEXT NOT NULL,
			miles      DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (origin_key, dest_key)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_delivery_batches_name ON delivery_batches(batch_name);`,
	}

	for i, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}
