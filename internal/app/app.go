// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-churn-dataset/internal/bootstrap"
	"github.com/AccelByte/extend-churn-dataset/internal/config"
	"github.com/AccelByte/extend-churn-dataset/internal/telemetry"
	"github.com/AccelByte/extend-churn-dataset/pkg/featurestore"
	"github.com/AccelByte/extend-churn-dataset/pkg/pipeline"
	sinkBuiltin "github.com/AccelByte/extend-churn-dataset/pkg/sink/builtin"
	"github.com/AccelByte/extend-churn-dataset/pkg/storage"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	pipelineConfig    *pipeline.Config
	plan              *pipeline.Pipeline
	manager           *pipeline.Manager
	metrics           *telemetry.Metrics
	db                *storage.DB
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Telemetry (OpenTelemetry tracing)
// 2. Pipeline config (profile and sinks)
// 3. External clients, only for the sink types that are enabled
// 4. Sinks
// 5. Pipeline manager with run metrics
//
// If you add a sink that needs a new client, initialize it in
// step 3 and pass it through sinkBuiltin.Dependencies.
// ============================================================
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Setup telemetry
	// ============================================================
	shutdownTelemetry, err := telemetry.SetupTelemetry(ctx, telemetry.TracingConfig{
		Enabled:        cfg.OtelEnabled,
		ServiceName:    cfg.ServiceName,
		Environment:    cfg.Environment,
		ZipkinEndpoint: cfg.ZipkinEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}
	app.shutdownTelemetry = shutdownTelemetry

	// ============================================================
	// Step 2: Load pipeline configuration
	// ============================================================
	pipelineConfig, err := pipeline.LoadConfigOrDefault(cfg.ConfigPath)
	if err != nil {
		app.Shutdown(ctx)
		return nil, fmt.Errorf("failed to load pipeline config from %s: %w", cfg.ConfigPath, err)
	}
	app.pipelineConfig = pipelineConfig
	logrus.Infof("loaded pipeline configuration from %s", cfg.ConfigPath)

	// ============================================================
	// Step 3: Initialize external clients
	// ============================================================
	deps := &sinkBuiltin.Dependencies{
		OutputDir: cfg.OutputDir,
		S3Bucket:  cfg.S3Bucket,
		S3Prefix:  cfg.S3Prefix,
	}

	if pipelineConfig.NeedsSinkType(sinkBuiltin.DatabaseSinkType) {
		db, err := OpenDatabase(ctx, cfg)
		if err != nil {
			app.Shutdown(ctx)
			return nil, fmt.Errorf("failed to init database: %w", err)
		}
		app.db = db
		deps.DB = db
	}

	if pipelineConfig.NeedsSinkType(sinkBuiltin.RedisSinkType) {
		if err := app.initRedis(ctx); err != nil {
			app.Shutdown(ctx)
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		deps.RedisClient = app.redisClient
	}

	if pipelineConfig.NeedsSinkType(sinkBuiltin.S3SinkType) {
		if err := cfg.ValidateS3(); err != nil {
			app.Shutdown(ctx)
			return nil, err
		}
		client, err := sinkBuiltin.NewS3Client(ctx, sinkBuiltin.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			app.Shutdown(ctx)
			return nil, fmt.Errorf("failed to init s3: %w", err)
		}
		deps.S3 = client
	}

	// ============================================================
	// Step 4: Bootstrap sinks
	// ============================================================
	writer, registry, err := bootstrap.InitSinkWriter(pipelineConfig, deps)
	if err != nil {
		app.Shutdown(ctx)
		return nil, fmt.Errorf("failed to init sinks: %w", err)
	}

	if err := pipeline.ValidateWiring(registry, pipelineConfig); err != nil {
		app.Shutdown(ctx)
		return nil, fmt.Errorf("pipeline wiring validation failed: %w", err)
	}
	logrus.Info("pipeline wiring validation passed")

	// ============================================================
	// Step 5: Bootstrap pipeline with metrics
	// ============================================================
	app.metrics = telemetry.NewMetrics()
	app.manager, app.plan = bootstrap.InitPipeline(cfg.ServiceName, writer, pipelineConfig, app.metrics)

	logrus.Info("application initialized successfully")

	return app, nil
}

// Plan returns the ordered steps of the configured run.
func (a *App) Plan() *pipeline.Pipeline {
	return a.plan
}

// OpenDatabase validates the database settings and connects with retries.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*storage.DB, error) {
	if err := cfg.ValidateDatabase(); err != nil {
		return nil, err
	}

	return storage.Open(ctx, cfg.StorageConfig())
}

// initRedis initializes the Redis client.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisAddr(),
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	maxRetries := backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries))

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		maxRetries,
	)

	if err != nil {
		client.Close()
		return err
	}

	if !featurestore.NewHealthChecker(client).IsHealthy(ctx) {
		client.Close()
		return fmt.Errorf("redis at %s is not healthy", a.cfg.RedisAddr())
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}
