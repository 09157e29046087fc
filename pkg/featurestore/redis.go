// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package featurestore caches feature rows in Redis, one key per player and cohort.
package featurestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTTL is the default lifetime of a cached row (30 days).
	DefaultTTL = 30 * 24 * time.Hour
	// KeyPrefix is the prefix of every feature key.
	KeyPrefix = "churn_dataset:features:"
	// pipelineSize bounds the commands sent per round trip.
	pipelineSize = 500
)

// ErrNotFound is returned when no row is cached for a player.
var ErrNotFound = errors.New("feature row not found")

// FeatureStore reads and writes cached feature rows.
type FeatureStore interface {
	Get(ctx context.Context, cohort string, playerID int64) (*dataset.PlayerFeatures, error)
	Put(ctx context.Context, row dataset.PlayerFeatures) error
	PutAll(ctx context.Context, rows []dataset.PlayerFeatures) (int, error)
	Delete(ctx context.Context, cohort string, playerID int64) error
}

// RedisFeatureStoreConfig tunes the store.
type RedisFeatureStoreConfig struct {
	TTL time.Duration
}

// RedisFeatureStore implements FeatureStore using Redis.
type RedisFeatureStore struct {
	client *redis.Client
	cfg    RedisFeatureStoreConfig
}

// NewRedisFeatureStore creates a new Redis-backed feature store.
func NewRedisFeatureStore(client *redis.Client, cfg RedisFeatureStoreConfig) *RedisFeatureStore {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &RedisFeatureStore{client: client, cfg: cfg}
}

// MakeKey creates the Redis key of a player's row in a cohort.
func MakeKey(cohort string, playerID int64) string {
	return fmt.Sprintf("%s%s:%d", KeyPrefix, cohort, playerID)
}

// Get retrieves a cached row. It returns ErrNotFound when the key is absent or expired.
func (s *RedisFeatureStore) Get(ctx context.Context, cohort string, playerID int64) (*dataset.PlayerFeatures, error) {
	key := MakeKey(cohort, playerID)

	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		logrus.Errorf("failed to get features for player %d: %v", playerID, err)
		return nil, fmt.Errorf("failed to get features: %w", err)
	}

	var row dataset.PlayerFeatures
	if err := json.Unmarshal([]byte(data), &row); err != nil {
		logrus.Errorf("failed to unmarshal features for player %d: %v", playerID, err)
		return nil, fmt.Errorf("failed to unmarshal features: %w", err)
	}
	return &row, nil
}

// Put stores one row with the configured TTL.
func (s *RedisFeatureStore) Put(ctx context.Context, row dataset.PlayerFeatures) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}

	if err := s.client.Set(ctx, MakeKey(row.Cohort, row.PlayerID), data, s.cfg.TTL).Err(); err != nil {
		logrus.Errorf("failed to set features for player %d: %v", row.PlayerID, err)
		return fmt.Errorf("failed to set features: %w", err)
	}
	return nil
}

// PutAll stores rows through pipelines and returns the number written.
func (s *RedisFeatureStore) PutAll(ctx context.Context, rows []dataset.PlayerFeatures) (int, error) {
	written := 0
	for start := 0; start < len(rows); start += pipelineSize {
		batch := rows[start:min(start+pipelineSize, len(rows))]

		_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, row := range batch {
				data, err := json.Marshal(row)
				if err != nil {
					return fmt.Errorf("failed to marshal features for player %d: %w", row.PlayerID, err)
				}
				pipe.Set(ctx, MakeKey(row.Cohort, row.PlayerID), data, s.cfg.TTL)
			}
			return nil
		})
		if err != nil {
			return written, fmt.Errorf("failed to write feature batch: %w", err)
		}
		written += len(batch)
	}

	logrus.Infof("cached %d feature rows with TTL %v", written, s.cfg.TTL)
	return written, nil
}

// Delete removes a cached row.
func (s *RedisFeatureStore) Delete(ctx context.Context, cohort string, playerID int64) error {
	if err := s.client.Del(ctx, MakeKey(cohort, playerID)).Err(); err != nil {
		logrus.Errorf("failed to delete features for player %d: %v", playerID, err)
		return fmt.Errorf("failed to delete features: %w", err)
	}
	return nil
}
