package services

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/parkcast/parkcast-go/internal/config"
	"github.com/parkcast/parkcast-go/internal/models"
)

// In-memory collaborator stubs shared by the service tests.

type stubRegistry struct {
	lot *models.ParkingLot
	err error
}

func (s *stubRegistry) Lookup(ctx context.Context, lotID string) (*models.ParkingLot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.lot, nil
}

func (s *stubRegistry) List(ctx context.Context) ([]models.ParkingLot, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.lot == nil {
		return nil, nil
	}
	return []models.ParkingLot{*s.lot}, nil
}

type stubEventSource struct {
	events []models.CampusEvent
	err    error
}

func (s *stubEventSource) EventsBetween(ctx context.Context, from, to time.Time) ([]models.CampusEvent, error) {
	return s.events, s.err
}

type stubHistoricalStore struct {
	reports []models.OccupancyReport
	err     error
}

func (s *stubHistoricalStore) ReportsBetween(ctx context.Context, lotID string, from, to time.Time) ([]models.OccupancyReport, error) {
	return s.reports, s.err
}

type stubRealtimeStore struct {
	reports []models.OccupancyReport
	err     error
}

func (s *stubRealtimeStore) RecentReports(ctx context.Context, lotID string, window time.Duration) ([]models.OccupancyReport, error) {
	return s.reports, s.err
}

type stubWeatherSource struct {
	obs *models.WeatherObservation
	err error
}

func (s *stubWeatherSource) Forecast(ctx context.Context, date time.Time) (*models.WeatherObservation, error) {
	return s.obs, s.err
}

type stubCrossLot struct {
	entries []models.LotOccupancy
	err     error
}

func (s *stubCrossLot) Snapshot(ctx context.Context) ([]models.LotOccupancy, error) {
	return s.entries, s.err
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testPredictionConfig() config.PredictionConfig {
	return config.PredictionConfig{
		GradientBoostedWeight: 0.6,
		SeasonalWeight:        0.4,
		StepMinutes:           30,
		DefaultHoursAhead:     1,
		MaxHoursAhead:         24,
		HistoricalWindowDays:  30,
		RealtimeWindowMinutes: 30,
	}
}

func commuterLot() *models.ParkingLot {
	return &models.ParkingLot{
		ID:                "C4",
		Name:              "North Commuter Lot",
		Area:              "north",
		Capacity:          500,
		OccupancyFraction: decimal.NewFromFloat(0.75),
		Category:          models.CategoryCommuter,
		UpdatedAt:         time.Now(),
	}
}

func report(lotID string, occupancy float64, at time.Time) models.OccupancyReport {
	return models.OccupancyReport{
		LotID:            lotID,
		OccupancyPercent: decimal.NewFromFloat(occupancy),
		ReportedAt:       at,
	}
}
