package datastore

import (
	"context"
	"fmt"
	"time"

	"github.com/parkcast/parkcast-go/internal/models"
)

// PostgresHistoricalReportStore reads archived occupancy reports.
type PostgresHistoricalReportStore struct {
	pool DatabasePool
}

// NewPostgresHistoricalReportStore creates a new historical store backed by the
// given pool.
func NewPostgresHistoricalReportStore(pool DatabasePool) *PostgresHistoricalReportStore {
	return &PostgresHistoricalReportStore{pool: pool}
}

// ReportsBetween returns all reports for a lot inside [from, to), oldest first.
// A timeline request issues this once for the whole horizon window and filters
// per step in memory.
func (s *PostgresHistoricalReportStore) ReportsBetween(ctx context.Context, lotID string, from, to time.Time) ([]models.OccupancyReport, error) {
	query := `
		SELECT id, lot_id, occupancy_percent, reported_at
		FROM occupancy_reports
		WHERE lot_id = $1 AND reported_at >= $2 AND reported_at < $3
		ORDER BY reported_at
	`

	rows, err := s.pool.Query(ctx, query, lotID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports for lot %s: %w", lotID, err)
	}
	defer rows.Close()

	var reports []models.OccupancyReport
	for rows.Next() {
		var rep models.OccupancyReport
		if err := rows.Scan(&rep.ID, &rep.LotID, &rep.OccupancyPercent, &rep.ReportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}

	return reports, nil
}
