// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package main

import (
	"context"
	"errors"
	"time"

	"github.com/AccelByte/extend-churn-dataset/internal/config"
	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/AccelByte/extend-churn-dataset/pkg/featurestore"
	"github.com/AccelByte/extend-churn-dataset/pkg/generator"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// This is a manual integration test for the Redis feature store
// Run this with: go run test_redis_integration.go
// Requires: Redis reachable at REDIS_HOST:REDIS_PORT (default localhost:6379)

func main() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.Infof("Starting Redis feature store integration test...")

	ctx := context.Background()

	cfg, err := config.Parse()
	if err != nil {
		logrus.Fatalf("Failed to parse config: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr(), Password: cfg.RedisPassword})
	defer client.Close()

	if !featurestore.NewHealthChecker(client).IsHealthy(ctx) {
		logrus.Fatalf("Redis at %s is not reachable", cfg.RedisAddr())
	}

	// Test 1: Generate a small dataset
	logrus.Infof("\n=== Test 1: Generate a small dataset ===")
	genCfg := generator.DefaultConfig()
	genCfg.Players = 50
	genCfg.HistoryDays = 60
	genCfg.Seed = uint64(time.Now().Unix())
	g, err := generator.New(genCfg)
	if err != nil {
		logrus.Fatalf("generator.New failed: %v", err)
	}
	out, err := g.Run(ctx)
	if err != nil {
		logrus.Fatalf("Run failed: %v", err)
	}
	logrus.Infof("✓ Generated %d baseline and %d drift rows", len(out.Features), len(out.DriftFeatures))

	// Test 2: Cache both cohorts
	logrus.Infof("\n=== Test 2: Cache both cohorts ===")
	store := featurestore.NewRedisFeatureStore(client, featurestore.RedisFeatureStoreConfig{TTL: 10 * time.Minute})
	rows := append(append([]dataset.PlayerFeatures{}, out.Features...), out.DriftFeatures...)
	n, err := store.PutAll(ctx, rows)
	if err != nil {
		logrus.Fatalf("PutAll failed: %v", err)
	}
	if n != len(rows) {
		logrus.Fatalf("❌ PutAll wrote %d rows, expected %d", n, len(rows))
	}
	logrus.Infof("✓ Cached %d rows", n)

	// Test 3: Read a row back
	logrus.Infof("\n=== Test 3: Read a row back ===")
	first := out.Features[0]
	got, err := store.Get(ctx, first.Cohort, first.PlayerID)
	if err != nil {
		logrus.Fatalf("Get failed: %v", err)
	}
	if got.TotalBets != first.TotalBets || got.ChurnLabel != first.ChurnLabel {
		logrus.Fatalf("❌ Row mismatch: got %+v, expected %+v", got, first)
	}
	logrus.Infof("✓ Player %d: bets=%d churn=%v", got.PlayerID, got.TotalBets, got.ChurnLabel)

	// Test 4: TTL is applied
	logrus.Infof("\n=== Test 4: TTL is applied ===")
	ttl, err := client.TTL(ctx, featurestore.MakeKey(first.Cohort, first.PlayerID)).Result()
	if err != nil || ttl <= 0 {
		logrus.Fatalf("❌ Expected a positive TTL, got %v (%v)", ttl, err)
	}
	logrus.Infof("✓ TTL is %v", ttl)

	// Test 5: Clean up
	logrus.Infof("\n=== Test 5: Clean up ===")
	for _, row := range rows {
		if err := store.Delete(ctx, row.Cohort, row.PlayerID); err != nil {
			logrus.Fatalf("Delete failed: %v", err)
		}
	}
	if _, err := store.Get(ctx, first.Cohort, first.PlayerID); !errors.Is(err, featurestore.ErrNotFound) {
		logrus.Fatalf("❌ Row should be gone after delete, got %v", err)
	}
	logrus.Infof("✓ Deleted %d cached rows", len(rows))

	logrus.Infof("\n==================================================")
	logrus.Infof("✅ All Redis integration tests passed!")
	logrus.Infof("==================================================")
}
