package repositories

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "modernc.org/sqlite"

	"courierdispatch/internal/ports"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	return db
}

func TestSqliteDeliveryRepositorySaveAndLoad(t *testing.T) {
	db := newTestDB(t)
	repo := NewSqliteDeliveryRepository(db)
	ctx := context.Background()

	items := []ports.DeliveryBatch{
		{Item: "package-1", LatText: "40.7484", LonText: "-73.9857"},
		{Item: "package-2", LatText: "40.7580", LonText: "-73.9855"},
	}

	if err := repo.SaveBatch(ctx, "morning-run", items); err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}

	got, err := repo.LoadBatch(ctx, "morning-run")
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadBatch returned %d items, want 2", len(got))
	}
	if got[0].Item != "package-1" || got[1].Item != "package-2" {
		t.Errorf("LoadBatch order/content mismatch: %+v", got)
	}
}

func TestSqliteDeliveryRepositorySaveOverwritesBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewSqliteDeliveryRepository(db)
	ctx := context.Background()

	if err := repo.SaveBatch(ctx, "b", []ports.DeliveryBatch{{Item: "old", LatText: "1", LonText: "1"}}); err != nil {
		t.Fatalf("SaveBatch #1: %v", err)
	}
	if err := repo.SaveBatch(ctx, "b", []ports.DeliveryBatch{{Item: "new", LatText: "2", LonText: "2"}}); err != nil {
		t.Fatalf("SaveBatch #2: %v", err)
	}

	got, err := repo.LoadBatch(ctx, "b")
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if len(got) != 1 || got[0].Item != "new" {
		t.Fatalf("LoadBatch = %+v, want single item %q", got, "new")
	}
}

func TestSqliteDeliveryRepositoryLoadUnknownBatchIsEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewSqliteDeliveryRepository(db)
	ctx := context.Background()

	got, err := repo.LoadBatch(ctx, "does-not-exist")
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("LoadBatch = %+v, want empty", got)
	}
}

func TestSqliteDeliveryRepositoryListBatches(t *testing.T) {
	db := newTestDB(t)
	repo := NewSqliteDeliveryRepository(db)
	ctx := context.Background()

	for _, name := range []string{"evening-run", "morning-run"} {
		if err := repo.SaveBatch(ctx, name, []ports.DeliveryBatch{{Item: "x", LatText: "1", LonText: "1"}}); err != nil {
			t.Fatalf("SaveBatch(%q): %v", name, err)
		}
	}

	names, err := repo.ListBatches(ctx)
	if err != nil {
		t.Fatalf("ListBatches: %v", err)
	}
	if len(names) != 2 || names[0] != "evening-run" || names[1] != "morning-run" {
		t.Fatalf("ListBatches = %v, want sorted [evening-run morning-run]", names)
	}
}

func TestSeedFromJSON(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	dir := t.TempDir()
	path := dir + "/seed.json"
	contents := `{
		"batch_name": "seeded",
		"deliveries": [
			{"item": "p1", "lat": "40.1", "lon": "-73.1"},
			{"item": "p2", "lat": "40.2", "lon": "-73.2"}
		]
	}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	if err := SeedFromJSON(db, path); err != nil {
		t.Fatalf("SeedFromJSON: %v", err)
	}

	repo := NewSqliteDeliveryRepository(db)
	got, err := repo.LoadBatch(ctx, "seeded")
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadBatch returned %d items, want 2", len(got))
	}
}

