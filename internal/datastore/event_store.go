package datastore

import (
	"context"
	"fmt"
	"time"

	"github.com/parkcast/parkcast-go/internal/models"
)

// PostgresEventSource reads the campus event schedule.
type PostgresEventSource struct {
	pool DatabasePool
}

// NewPostgresEventSource creates a new event source backed by the given pool.
func NewPostgresEventSource(pool DatabasePool) *PostgresEventSource {
	return &PostgresEventSource{pool: pool}
}

// EventsBetween returns all events starting inside [from, to), soonest first.
func (s *PostgresEventSource) EventsBetween(ctx context.Context, from, to time.Time) ([]models.CampusEvent, error) {
	query := `
		SELECT id, type, title, starts_at
		FROM campus_events
		WHERE starts_at >= $1 AND starts_at < $2
		ORDER BY starts_at
	`

	rows, err := s.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.CampusEvent
	for rows.Next() {
		var ev models.CampusEvent
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.Title, &ev.StartsAt); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event rows: %w", err)
	}

	return events, nil
}
