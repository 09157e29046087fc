// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package featurestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func testRow(playerID int64, cohort string) dataset.PlayerFeatures {
	return dataset.PlayerFeatures{
		PlayerID:           playerID,
		FeatureDate:        time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Cohort:             cohort,
		TotalBets:          12,
		TotalBetAmount:     84.2,
		WinRate:            0.417,
		SessionTrendWeekly: -1.2,
		DaysSinceLastLogin: 16,
		ChurnLabel:         true,
	}
}

func TestMakeKey(t *testing.T) {
	if got := MakeKey(dataset.CohortDrift, 42); got != "churn_dataset:features:drift:42" {
		t.Errorf("unexpected key %s", got)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	ctx := context.Background()
	store := NewRedisFeatureStore(client, RedisFeatureStoreConfig{TTL: time.Hour})

	row := testRow(7, dataset.CohortBaseline)
	if err := store.Put(ctx, row); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, dataset.CohortBaseline, 7)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.PlayerID != 7 || got.TotalBets != 12 || got.WinRate != 0.417 || !got.ChurnLabel {
		t.Errorf("unexpected row %+v", got)
	}
	if !got.FeatureDate.Equal(row.FeatureDate) {
		t.Errorf("FeatureDate = %v, expected %v", got.FeatureDate, row.FeatureDate)
	}

	ttl := mr.TTL(MakeKey(dataset.CohortBaseline, 7))
	if ttl != time.Hour {
		t.Errorf("TTL = %v, expected 1h", ttl)
	}
}

func TestGetMissing(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	store := NewRedisFeatureStore(client, RedisFeatureStoreConfig{})

	_, err := store.Get(context.Background(), dataset.CohortBaseline, 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetExpired(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	ctx := context.Background()
	store := NewRedisFeatureStore(client, RedisFeatureStoreConfig{TTL: time.Minute})

	if err := store.Put(ctx, testRow(1, dataset.CohortBaseline)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, dataset.CohortBaseline, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestPutAllSeparatesCohorts(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	ctx := context.Background()
	store := NewRedisFeatureStore(client, RedisFeatureStoreConfig{})

	var rows []dataset.PlayerFeatures
	for i := int64(1); i <= 1200; i++ {
		rows = append(rows, testRow(i, dataset.CohortBaseline))
	}
	drift := testRow(1, dataset.CohortDrift)
	drift.TotalBets = 3
	rows = append(rows, drift)

	n, err := store.PutAll(ctx, rows)
	if err != nil {
		t.Fatalf("PutAll() error = %v", err)
	}
	if n != len(rows) {
		t.Errorf("PutAll() wrote %d, expected %d", n, len(rows))
	}
	if keys := len(mr.Keys()); keys != len(rows) {
		t.Errorf("expected %d keys, got %d", len(rows), keys)
	}

	got, err := store.Get(ctx, dataset.CohortDrift, 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.TotalBets != 3 {
		t.Errorf("expected the drift row, got %d bets", got.TotalBets)
	}
	if ttl := mr.TTL(MakeKey(dataset.CohortBaseline, 1200)); ttl != DefaultTTL {
		t.Errorf("TTL = %v, expected default %v", ttl, DefaultTTL)
	}
}

func TestDelete(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	ctx := context.Background()
	store := NewRedisFeatureStore(client, RedisFeatureStoreConfig{})

	if err := store.Put(ctx, testRow(5, dataset.CohortBaseline)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := store.Delete(ctx, dataset.CohortBaseline, 5); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if mr.Exists(MakeKey(dataset.CohortBaseline, 5)) {
		t.Error("expected key to be deleted")
	}
}

func TestHealthChecker(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	checker := NewHealthChecker(client)

	if !checker.IsHealthy(ctx) {
		t.Error("expected healthy redis")
	}

	mr.Close()
	if checker.IsHealthy(ctx) {
		t.Error("expected unhealthy redis after shutdown")
	}
}
