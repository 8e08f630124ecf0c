package datastore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/parkcast/parkcast-go/internal/models"
)

// PostgresLotRegistry reads lot metadata from the lots table.
type PostgresLotRegistry struct {
	pool  DatabasePool
	caser cases.Caser
}

// NewPostgresLotRegistry creates a new registry backed by the given pool.
func NewPostgresLotRegistry(pool DatabasePool) *PostgresLotRegistry {
	return &PostgresLotRegistry{
		pool:  pool,
		caser: cases.Title(language.English),
	}
}

// Lookup resolves a lot ID. Returns ErrLotNotFound for unknown IDs.
func (r *PostgresLotRegistry) Lookup(ctx context.Context, lotID string) (*models.ParkingLot, error) {
	query := `
		SELECT id, name, area, capacity, occupancy_fraction, updated_at
		FROM lots
		WHERE id = $1
	`

	var lot models.ParkingLot
	err := r.pool.QueryRow(ctx, query, strings.ToUpper(strings.TrimSpace(lotID))).Scan(
		&lot.ID,
		&lot.Name,
		&lot.Area,
		&lot.Capacity,
		&lot.OccupancyFraction,
		&lot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLotNotFound
		}
		return nil, fmt.Errorf("failed to look up lot %s: %w", lotID, err)
	}

	lot.Name = r.caser.String(lot.Name)
	lot.Category = models.CategoryFromID(lot.ID)
	return &lot, nil
}

// List returns all registered lots ordered by ID.
func (r *PostgresLotRegistry) List(ctx context.Context) ([]models.ParkingLot, error) {
	query := `
		SELECT id, name, area, capacity, occupancy_fraction, updated_at
		FROM lots
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}
	defer rows.Close()

	var lots []models.ParkingLot
	for rows.Next() {
		var lot models.ParkingLot
		if err := rows.Scan(
			&lot.ID,
			&lot.Name,
			&lot.Area,
			&lot.Capacity,
			&lot.OccupancyFraction,
			&lot.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lot row: %w", err)
		}
		lot.Name = r.caser.String(lot.Name)
		lot.Category = models.CategoryFromID(lot.ID)
		lots = append(lots, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lot rows: %w", err)
	}

	return lots, nil
}
