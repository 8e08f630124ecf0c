// Package datastore implements the read-only collaborators the prediction
// engine consumes: the lot registry, event schedule, historical and real-time
// report stores, the campus-wide occupancy snapshot, and the weather service.
// Everything here is a pure read; the engine persists nothing.
package datastore

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/parkcast/parkcast-go/internal/models"
)

// ErrLotNotFound is returned when a lot ID is not in the registry.
var ErrLotNotFound = errors.New("parking lot not found")

// LotRegistry resolves lot IDs to lot metadata.
type LotRegistry interface {
	Lookup(ctx context.Context, lotID string) (*models.ParkingLot, error)
	List(ctx context.Context) ([]models.ParkingLot, error)
}

// EventSource returns scheduled campus events inside a date range.
type EventSource interface {
	EventsBetween(ctx context.Context, from, to time.Time) ([]models.CampusEvent, error)
}

// HistoricalReportStore returns persisted occupancy reports for a lot.
type HistoricalReportStore interface {
	ReportsBetween(ctx context.Context, lotID string, from, to time.Time) ([]models.OccupancyReport, error)
}

// RealtimeReportStore returns recent crowd reports for a lot, newest first.
type RealtimeReportStore interface {
	RecentReports(ctx context.Context, lotID string, window time.Duration) ([]models.OccupancyReport, error)
}

// WeatherSource returns the forecast for a date. Optional collaborator; the
// feature extractor substitutes neutral values when it is absent or failing.
type WeatherSource interface {
	Forecast(ctx context.Context, date time.Time) (*models.WeatherObservation, error)
}

// CrossLotSnapshot returns the current campus-wide occupancy picture.
type CrossLotSnapshot interface {
	Snapshot(ctx context.Context) ([]models.LotOccupancy, error)
}

// DatabasePool defines the pgx pool operations the stores use. It allows both
// a real pgxpool.Pool and a pgxmock pool in tests.
type DatabasePool interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}
