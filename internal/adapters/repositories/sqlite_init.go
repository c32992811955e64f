package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// InitSchema creates the tables the SQLite-backed adapters need if they
// do not already exist: saved delivery batches and the route cache.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createBatchesQuery := `
	CREATE TABLE IF NOT EXISTS delivery_batches (
		batch_name TEXT NOT NULL,
		item       TEXT NOT NULL,
		lat_text   TEXT NOT NULL,
		lon_text   TEXT NOT NULL
	);
	`

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        origin_key TEXT NOT NULL,
        dest_key   TEXT NOT NULL,
        route_json TEXT NOT NULL,
        miles      REAL NOT NULL,
        PRIMARY KEY (origin_key, dest_key)
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_delivery_batches_name
    ON delivery_batches(batch_name);
	`

	statements := []string{
		createBatchesQuery,
		createRouteCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// DeliveryBatchSeed is one row of a JSON seed file: an item and its
// destination given as decimal-degree text, exactly as it will be
// parsed by domain.ParseCoord.
type DeliveryBatchSeed struct {
	Item string `json:"item"`
	Lat  string `json:"lat"`
	Lon  string `json:"lon"`
}

// SeedFromJSON loads a named batch of deliveries from a JSON file shaped
// as {"batch_name": "...", "deliveries": [...]}.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
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

	rows := make([]DeliveryBatchSeed, 0, len(seed.Deliveries))
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
		rows = append(rows, DeliveryBatchSeed{Item: item, Lat: lat, Lon: lon})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed deliveries: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM delivery_batches WHERE batch_name = ?;`, batchName); err != nil {
		return fmt.Errorf("seed deliveries: clear existing batch %q: %w", batchName, err)
	}

	query := `
	INSERT INTO delivery_batches (batch_name, item, lat_text, lon_text)
	VALUES (?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed deliveries: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range rows {
		if _, err := stmt.Exec(batchName, d.Item, d.Lat, d.Lon); err != nil {
			return fmt.Errorf("seed deliveries: insert item=%q: %w", d.Item, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed deliveries: commit tx: %w", err)
	}

	return nil
}
