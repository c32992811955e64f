// Command seed loads a named batch of deliveries from a JSON file into
// whichever delivery-batch store the environment points at, the same
// role cmd/dbtool played for the teacher's package table.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"courierdispatch/internal/adapters/repositories"
	"courierdispatch/internal/platform/config"
	"courierdispatch/internal/platform/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/deliveries.json")

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) != "" {
		if err := seedPostgres(databaseURL, seedPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	sqlitePath := config.Get("SQLITE_PATH", "data/courierdispatch.db")
	if err := seedSqlite(sqlitePath, seedPath); err != nil {
		log.Fatal(err)
	}
}

func seedSqlite(dbPath, seedPath string) error {
	log.Printf("opening sqlite database %q", dbPath)
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	log.Println("initializing schema...")
	if err := repositories.InitSchema(sqlDB); err != nil {
		return err
	}
	log.Println("schema ready.")

	log.Printf("seeding from %q...", seedPath)
	if err := repositories.SeedFromJSON(sqlDB, seedPath); err != nil {
		return err
	}
	log.Println("seeding complete.")

	return nil
}

func seedPostgres(databaseURL, seedPath string) error {
	log.Println("opening postgres database")
	pgDB, err := db.Open(databaseURL)
	if err != nil {
		return err
	}
	defer pgDB.Close()

	log.Println("initializing schema...")
	if err := repositories.InitPostgresSchema(context.Background(), pgDB); err != nil {
		return err
	}
	log.Println("schema ready.")

	log.Printf("seeding from %q...", seedPath)
	if err := repositories.SeedPostgresFromJSON(context.Background(), pgDB, seedPath); err != nil {
		return err
	}
	log.Println("seeding complete.")

	return nil
}
