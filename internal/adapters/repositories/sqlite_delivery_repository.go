package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"courierdispatch/internal/ports"
)

// SqliteDeliveryRepository is a SQLite-backed ports.DeliveryRepository,
// storing each batch as one row per item keyed by batch name.
type SqliteDeliveryRepository struct{ DB *sql.DB }

func NewSqliteDeliveryRepository(db *sql.DB) *SqliteDeliveryRepository {
	return &SqliteDeliveryRepository{DB: db}
}

func (s *SqliteDeliveryRepository) SaveBatch(ctx context.Context, batchName string, items []ports.DeliveryBatch) error {
	if s.DB == nil {
		return errors.New("sqlite delivery repository: DB is nil")
	}
	if batchName == "" {
		return errors.New("sqlite delivery repository: batch name cannot be empty")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save batch: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM delivery_batches WHERE batch_name = ?;`, batchName); err != nil {
		return fmt.Errorf("save batch: clear existing batch %q: %w", batchName, err)
	}

	const insertQuery = `
	INSERT INTO delivery_batches (batch_name, item, lat_text, lon_text)
	VALUES (?, ?, ?, ?);
	`
	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("save batch: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, batchName, item.Item, item.LatText, item.LonText); err != nil {
			return fmt.Errorf("save batch: insert item=%q: %w", item.Item, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save batch: commit tx: %w", err)
	}

	return nil
}

func (s *SqliteDeliveryRepository) LoadBatch(ctx context.Context, batchName string) ([]ports.DeliveryBatch, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite delivery repository: DB is nil")
	}

	const q = `
	SELECT item, lat_text, lon_text
	FROM delivery_batches
	WHERE batch_name = ?
	ORDER BY rowid;
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

func (s *SqliteDeliveryRepository) ListBatches(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite delivery repository: DB is nil")
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
