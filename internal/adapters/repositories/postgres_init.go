package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the charger store schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createChargersQuery := `
	CREATE TABLE IF NOT EXISTS chargers (
		charger_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		port_types JSONB NOT NULL DEFAULT '[]',
		available_ports INTEGER NOT NULL DEFAULT 0,
		total_ports INTEGER NOT NULL DEFAULT 0,
		verification_level INTEGER NOT NULL DEFAULT 0,
		uptime_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
		amenities JSONB NOT NULL DEFAULT '[]'
	);
	`

	// The bounding-box query filters on both axes; a composite index keeps it cheap.
	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_chargers_lat_lng
	ON chargers(lat, lng);
	`

	statements := []string{
		createChargersQuery,
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

type ChargerSeed struct {
	ChargerID         int64    `json:"charger_id"`
	Name              string   `json:"name"`
	Address           string   `json:"address"`
	Lat               float64  `json:"lat"`
	Lng               float64  `json:"lng"`
	PortTypes         []string `json:"port_types"`
	AvailablePorts    int      `json:"available_ports"`
	TotalPorts        int      `json:"total_ports"`
	VerificationLevel int      `json:"verification_level"`
	UptimePercent     float64  `json:"uptime_percent"`
	Amenities         []string `json:"amenities"`
}

// Populate the charger store from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed chargers: read %q: %w", jsonPath, err)
	}

	var data []ChargerSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed chargers: parse json: %w", err)
	}

	for i, item := range data {
		if item.ChargerID <= 0 {
			return fmt.Errorf("seed chargers: invalid charger_id at index %d: %d", i+1, item.ChargerID)
		}
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("seed chargers: item at index %d: name cannot be empty", i+1)
		}
		if item.Lat < -90 || item.Lat > 90 || item.Lng < -180 || item.Lng > 180 {
			return fmt.Errorf("seed chargers: item at index %d: coordinates out of range", i+1)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed chargers: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO chargers (
		charger_id, name, address, lat, lng,
		port_types, available_ports, total_ports,
		verification_level, uptime_percent, amenities
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (charger_id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		port_types = EXCLUDED.port_types,
		available_ports = EXCLUDED.available_ports,
		total_ports = EXCLUDED.total_ports,
		verification_level = EXCLUDED.verification_level,
		uptime_percent = EXCLUDED.uptime_percent,
		amenities = EXCLUDED.amenities;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed chargers: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range data {
		portTypes, err := json.Marshal(c.PortTypes)
		if err != nil {
			return fmt.Errorf("seed chargers: encode port_types for charger_id=%d: %w", c.ChargerID, err)
		}
		amenities, err := json.Marshal(c.Amenities)
		if err != nil {
			return fmt.Errorf("seed chargers: encode amenities for charger_id=%d: %w", c.ChargerID, err)
		}

		_, err = stmt.Exec(
			c.ChargerID, c.Name, c.Address, c.Lat, c.Lng,
			portTypes, c.AvailablePorts, c.TotalPorts,
			c.VerificationLevel, c.UptimePercent, amenities,
		)
		if err != nil {
			return fmt.Errorf("seed chargers: insert charger_id=%d: %w", c.ChargerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed chargers: commit tx: %w", err)
	}

	return nil
}
