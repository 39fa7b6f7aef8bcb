package main

import (
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"ev-route-service/internal/adapters/repositories"
	"ev-route-service/internal/config"
	"ev-route-service/internal/platform/db"
)

// dbtool initializes the charger store schema and seeds it from a JSON file.
// Intended for local runs and CI fixtures; production charger data is owned
// by the scraping pipeline elsewhere.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Initializing charger store schema...")
	if err := repositories.InitSchema(database); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding chargers from %s...", cfg.SeedPath)
	if err := repositories.SeedFromJSON(database, cfg.SeedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
