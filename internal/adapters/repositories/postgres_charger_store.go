package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"ev-route-service/internal/domain"
	"ev-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the ChargerStore port. Read-only: this
// subsystem never writes charger records; seeding belongs to dbtool.
type PostgresChargerStore struct{ DB *sql.DB }

func NewPostgresChargerStore(db *sql.DB) *PostgresChargerStore {
	return &PostgresChargerStore{DB: db}
}

// FindInBoundingBox returns chargers inside the box at or above minLevel.
func (s *PostgresChargerStore) FindInBoundingBox(
	ctx context.Context,
	box domain.BoundingBox,
	minLevel domain.VerificationLevel,
) (_ []domain.ChargerCandidate, err error) {
	defer obs.Time(ctx, "chargers.bbox_query")(&err)

	if s.DB == nil {
		return nil, errors.New("charger store: db is nil")
	}

	query := `
	SELECT
		charger_id,
		name,
		address,
		lat,
		lng,
		port_types,
		available_ports,
		total_ports,
		verification_level,
		uptime_percent,
		amenities
	FROM chargers
	WHERE lat BETWEEN $1 AND $2
		AND lng BETWEEN $3 AND $4
		AND verification_level >= $5
	ORDER BY charger_id;
	`

	rows, err := s.DB.QueryContext(ctx, query,
		box.MinLat, box.MaxLat, box.MinLng, box.MaxLng, int(minLevel))
	if err != nil {
		return nil, fmt.Errorf("find chargers: query chargers table: %w", err)
	}
	defer rows.Close()

	chargers := make([]domain.ChargerCandidate, 0, 32)
	for rows.Next() {
		var (
			c                    domain.ChargerCandidate
			level                int
			portTypes, amenities []byte
		)
		err := rows.Scan(
			&c.ID, &c.Name, &c.Address,
			&c.Location.Lat, &c.Location.Lng,
			&portTypes,
			&c.AvailablePorts, &c.TotalPorts,
			&level, &c.UptimePercent,
			&amenities,
		)
		if err != nil {
			return nil, fmt.Errorf("find chargers: scan row: %w", err)
		}
		c.VerificationLevel = domain.VerificationLevel(level)

		if err := json.Unmarshal(portTypes, &c.PortTypes); err != nil {
			return nil, fmt.Errorf("find chargers: parse port_types for charger %d: %w", c.ID, err)
		}
		if err := json.Unmarshal(amenities, &c.Amenities); err != nil {
			return nil, fmt.Errorf("find chargers: parse amenities for charger %d: %w", c.ID, err)
		}

		chargers = append(chargers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("find chargers: row iteration: %w", err)
	}

	return chargers, nil
}
