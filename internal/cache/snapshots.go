// Package cache persists the last successfully fetched batch per resource to
// Redis so a restart keeps remote content without a network call. A nil
// *Snapshots is a no-op, mirroring how the event publisher degrades when
// Redis is not configured.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petalhealth/content-service/internal/logger"
	"github.com/petalhealth/content-service/internal/models"
)

const (
	snapshotKeyPrefix = "content:snapshot:"
	lastUpdateKey     = "content:last_update"
)

// Snapshots stores fetched content batches in Redis.
type Snapshots struct {
	client *redis.Client
	log    logger.Logger
}

// NewSnapshots creates a snapshot store. Returns nil if client is nil.
func NewSnapshots(client *redis.Client, log logger.Logger) *Snapshots {
	if client == nil {
		return nil
	}
	return &Snapshots{client: client, log: log}
}

func snapshotKey(res models.Resource) string {
	return snapshotKeyPrefix + res.String()
}

// Save persists a fetched batch. records must marshal to a JSON array.
func (s *Snapshots) Save(ctx context.Context, res models.Resource, records any) error {
	if s == nil {
		return nil
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", res, err)
	}
	if err := s.client.Set(ctx, snapshotKey(res), payload, 0).Err(); err != nil {
		return fmt.Errorf("save %s snapshot: %w", res, err)
	}
	return nil
}

// Load returns the raw snapshot payload for a resource, or nil if none is
// stored.
func (s *Snapshots) Load(ctx context.Context, res models.Resource) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	payload, err := s.client.Get(ctx, snapshotKey(res)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s snapshot: %w", res, err)
	}
	return payload, nil
}

// SetLastUpdate records when the last refresh completed.
func (s *Snapshots) SetLastUpdate(ctx context.Context, at time.Time) error {
	if s == nil {
		return nil
	}
	if err := s.client.Set(ctx, lastUpdateKey, at.UTC().Format(time.RFC3339Nano), 0).Err(); err != nil {
		return fmt.Errorf("save last update: %w", err)
	}
	return nil
}

// LastUpdate returns the persisted refresh completion time, or nil if none.
func (s *Snapshots) LastUpdate(ctx context.Context) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	raw, err := s.client.Get(ctx, lastUpdateKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load last update: %w", err)
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("parse last update: %w", err)
	}
	return &at, nil
}

// Clear removes every snapshot and the last-update marker.
func (s *Snapshots) Clear(ctx context.Context) error {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(models.AllResources())+1)
	for _, res := range models.AllResources() {
		keys = append(keys, snapshotKey(res))
	}
	keys = append(keys, lastUpdateKey)
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	return nil
}

// LoadRecords decodes a stored snapshot into validated records. Returns nil
// with no error when no snapshot exists. Invalid records are dropped.
func LoadRecords[T models.Record](ctx context.Context, s *Snapshots, res models.Resource) ([]T, error) {
	payload, err := s.Load(ctx, res)
	if err != nil || payload == nil {
		return nil, err
	}

	var all []T
	if err := json.Unmarshal(payload, &all); err != nil {
		return nil, fmt.Errorf("decode %s snapshot: %w", res, err)
	}

	valid := make([]T, 0, len(all))
	for _, record := range all {
		if record.Validate() == nil {
			valid = append(valid, record)
		}
	}
	return valid, nil
}
