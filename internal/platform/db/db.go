package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open connects to the charger store database via the pgx stdlib driver.
// The pool is small: this subsystem only issues read-only bounding-box
// queries plus the occasional dbtool seed.
func Open(databaseURL string) (*sql.DB, error) {
	database, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	database.SetMaxOpenConns(10)
	database.SetMaxIdleConns(5)
	database.SetConnMaxLifetime(30 * time.Minute)

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("verify postgres connection: %w", err)
	}

	return database, nil
}
