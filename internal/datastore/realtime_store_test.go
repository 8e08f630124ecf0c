package datastore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkcast/parkcast-go/internal/models"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func pushReport(t *testing.T, client *redis.Client, lotID string, occupancy float64, reportedAt time.Time) {
	t.Helper()
	rep := models.OccupancyReport{
		LotID:            lotID,
		OccupancyPercent: decimal.NewFromFloat(occupancy),
		ReportedAt:       reportedAt,
	}
	data, err := json.Marshal(rep)
	require.NoError(t, err)
	require.NoError(t, client.LPush(context.Background(), realtimeReportPrefix+lotID, data).Err())
}

func TestRedisRealtimeReportStore_RecentReports(t *testing.T) {
	client := newTestRedis(t)
	now := time.Now()

	// LPush keeps the list newest first.
	pushReport(t, client, "C4", 70, now.Add(-20*time.Minute))
	pushReport(t, client, "C4", 75, now.Add(-10*time.Minute))
	pushReport(t, client, "C4", 82, now.Add(-2*time.Minute))

	store := NewRedisRealtimeReportStore(client)
	reports, err := store.RecentReports(context.Background(), "C4", 30*time.Minute)
	require.NoError(t, err)

	require.Len(t, reports, 3)
	latest, _ := reports[0].OccupancyPercent.Float64()
	assert.Equal(t, 82.0, latest)
}

func TestRedisRealtimeReportStore_WindowCutoff(t *testing.T) {
	client := newTestRedis(t)
	now := time.Now()

	pushReport(t, client, "C4", 60, now.Add(-2*time.Hour))
	pushReport(t, client, "C4", 80, now.Add(-5*time.Minute))

	store := NewRedisRealtimeReportStore(client)
	reports, err := store.RecentReports(context.Background(), "C4", 30*time.Minute)
	require.NoError(t, err)

	require.Len(t, reports, 1)
	val, _ := reports[0].OccupancyPercent.Float64()
	assert.Equal(t, 80.0, val)
}

func TestRedisRealtimeReportStore_MissingKey(t *testing.T) {
	client := newTestRedis(t)

	store := NewRedisRealtimeReportStore(client)
	reports, err := store.RecentReports(context.Background(), "C4", 30*time.Minute)

	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestRedisRealtimeReportStore_SkipsMalformedEntries(t *testing.T) {
	client := newTestRedis(t)
	now := time.Now()

	pushReport(t, client, "C4", 77, now.Add(-5*time.Minute))
	require.NoError(t, client.LPush(context.Background(), realtimeReportPrefix+"C4", "{not json").Err())

	store := NewRedisRealtimeReportStore(client)
	reports, err := store.RecentReports(context.Background(), "C4", 30*time.Minute)
	require.NoError(t, err)

	require.Len(t, reports, 1)
	val, _ := reports[0].OccupancyPercent.Float64()
	assert.Equal(t, 77.0, val)
}
