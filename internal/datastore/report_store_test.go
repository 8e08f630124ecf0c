package datastore

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresHistoricalReportStore_ReportsBetween(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	to := time.Date(2025, 10, 7, 10, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -30)

	rows := pgxmock.NewRows([]string{"id", "lot_id", "occupancy_percent", "reported_at"})
	for i := 1; i <= 4; i++ {
		rows.AddRow("rep-"+string(rune('0'+i)), "C4", decimal.NewFromInt(80), to.AddDate(0, 0, -7*i))
	}
	mockPool.ExpectQuery("SELECT id, lot_id, occupancy_percent, reported_at").
		WithArgs("C4", from, to).
		WillReturnRows(rows)

	store := NewPostgresHistoricalReportStore(newMockPoolAdapter(mockPool))
	reports, err := store.ReportsBetween(context.Background(), "C4", from, to)
	require.NoError(t, err)

	require.Len(t, reports, 4)
	for _, rep := range reports {
		assert.Equal(t, "C4", rep.LotID)
		val, _ := rep.OccupancyPercent.Float64()
		assert.Equal(t, 80.0, val)
	}
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresHistoricalReportStore_ReportsBetweenEmpty(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	to := time.Now()
	from := to.AddDate(0, 0, -30)

	mockPool.ExpectQuery("SELECT id, lot_id, occupancy_percent, reported_at").
		WithArgs("C4", from, to).
		WillReturnRows(pgxmock.NewRows([]string{"id", "lot_id", "occupancy_percent", "reported_at"}))

	store := NewPostgresHistoricalReportStore(newMockPoolAdapter(mockPool))
	reports, err := store.ReportsBetween(context.Background(), "C4", from, to)

	require.NoError(t, err)
	assert.Empty(t, reports)
}
