package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/parkcast/parkcast-go/internal/models"
)

const (
	realtimeReportPrefix = "realtime_reports:"
	// maxRecentReports bounds the LRANGE read; the mobile client caps report
	// frequency well below this.
	maxRecentReports = 50
)

// RedisRealtimeReportStore reads live crowd reports pushed by the report
// ingestion pipeline. Entries are JSON reports in a per-lot list, newest first.
type RedisRealtimeReportStore struct {
	redis *redis.Client
}

// NewRedisRealtimeReportStore creates a new realtime store on the given client.
func NewRedisRealtimeReportStore(client *redis.Client) *RedisRealtimeReportStore {
	return &RedisRealtimeReportStore{redis: client}
}

// RecentReports returns reports for a lot no older than the window, newest
// first. A missing key is an empty result, not an error.
func (s *RedisRealtimeReportStore) RecentReports(ctx context.Context, lotID string, window time.Duration) ([]models.OccupancyReport, error) {
	key := realtimeReportPrefix + lotID

	entries, err := s.redis.LRange(ctx, key, 0, maxRecentReports-1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read realtime reports for lot %s: %w", lotID, err)
	}

	cutoff := time.Now().Add(-window)
	var reports []models.OccupancyReport
	for _, entry := range entries {
		var rep models.OccupancyReport
		if err := json.Unmarshal([]byte(entry), &rep); err != nil {
			// Skip malformed entries rather than failing the read
			continue
		}
		if rep.ReportedAt.Before(cutoff) {
			// List is newest first, everything after this is older
			break
		}
		reports = append(reports, rep)
	}

	return reports, nil
}
