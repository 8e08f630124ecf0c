package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/parkcast/parkcast-go/internal/models"
)

const snapshotKey = "lot_occupancy_snapshot"

// RedisCrossLotSnapshot reads the campus-wide occupancy hash maintained by the
// occupancy aggregator: field = lot ID, value = JSON LotOccupancy.
type RedisCrossLotSnapshot struct {
	redis *redis.Client
}

// NewRedisCrossLotSnapshot creates a new snapshot reader on the given client.
func NewRedisCrossLotSnapshot(client *redis.Client) *RedisCrossLotSnapshot {
	return &RedisCrossLotSnapshot{redis: client}
}

// Snapshot returns the current occupancy of every lot, ordered by lot ID. An
// empty hash is an empty result, not an error.
func (s *RedisCrossLotSnapshot) Snapshot(ctx context.Context) ([]models.LotOccupancy, error) {
	fields, err := s.redis.HGetAll(ctx, snapshotKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cross-lot snapshot: %w", err)
	}

	entries := make([]models.LotOccupancy, 0, len(fields))
	for lotID, raw := range fields {
		var entry models.LotOccupancy
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			continue
		}
		entry.LotID = lotID
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].LotID < entries[j].LotID })

	return entries, nil
}
