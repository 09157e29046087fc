// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/pipeline"
	"github.com/sirupsen/logrus"
)

// pushTimeout bounds the final metrics push.
const pushTimeout = 10 * time.Second

// Run executes one dataset run. An interrupt cancels the run between stages.
func (a *App) Run(ctx context.Context) (*pipeline.RunResult, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logrus.Info("application started")

	genCfg, err := a.cfg.GeneratorConfig(&a.pipelineConfig.Profile)
	if err != nil {
		return nil, err
	}

	result, err := a.manager.Run(ctx, genCfg)
	if err == nil {
		a.metrics.MarkSuccess(time.Now())
	}

	pushCtx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()
	if pushErr := a.metrics.Push(pushCtx, a.cfg.PushgatewayURL, a.cfg.ServiceName); pushErr != nil {
		logrus.Errorf("metrics push error: %v", pushErr)
	}

	return result, err
}

// Shutdown gracefully shuts down all application components.
//
// ============================================================
// DEVELOPER: Shutdown order is critical
// ============================================================
// Components are shut down in reverse dependency order:
// 1. Close external connections (database, Redis)
// 2. Flush telemetry data (OpenTelemetry)
//
// IMPORTANT: Shutdown errors are logged but don't stop the
// shutdown sequence. Each component gets a chance to clean up.
// ============================================================
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	// ============================================================
	// Step 1: Close external connections
	// ============================================================
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logrus.Errorf("database close error: %v", err)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
	}

	// ============================================================
	// Step 2: Flush telemetry data
	// ============================================================
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
	}

	logrus.Info("application shutdown complete")
	return nil
}
