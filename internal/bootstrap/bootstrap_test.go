// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/generator"
	"github.com/AccelByte/extend-churn-dataset/pkg/pipeline"
	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
	sinkBuiltin "github.com/AccelByte/extend-churn-dataset/pkg/sink/builtin"
)

func TestInitSinkWriterAndPipeline(t *testing.T) {
	dir := t.TempDir()
	config := pipeline.DefaultConfig()
	config.Sinks = append(config.Sinks, sink.SinkConfig{ID: "cache", Type: sinkBuiltin.RedisSinkType, Enabled: false})

	writer, registry, err := InitSinkWriter(config, &sinkBuiltin.Dependencies{OutputDir: dir})
	if err != nil {
		t.Fatalf("InitSinkWriter failed: %v", err)
	}
	if registry.Count() != 1 {
		t.Errorf("expected only the enabled csv sink, got %d", registry.Count())
	}
	if err := pipeline.ValidateWiring(registry, config); err != nil {
		t.Errorf("expected valid wiring, got %v", err)
	}

	manager, p := InitPipeline("test", writer, config, nil)
	if len(p.Sinks) != 1 || p.Sinks[0] != pipeline.DefaultSinkID {
		t.Errorf("expected the default sink in the plan, got %v", p.Sinks)
	}

	cfg := generator.DefaultConfig()
	cfg.Players = 5
	cfg.HistoryDays = 21
	cfg.ReferenceTime = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	if _, err := manager.Run(context.Background(), cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "player_features.csv")); err != nil {
		t.Errorf("expected features file in %s: %v", dir, err)
	}
}

func TestInitSinkWriterMissingDependency(t *testing.T) {
	config := &pipeline.Config{Sinks: []sink.SinkConfig{{ID: "warehouse", Type: sinkBuiltin.DatabaseSinkType, Enabled: true}}}

	if _, _, err := InitSinkWriter(config, &sinkBuiltin.Dependencies{}); err == nil {
		t.Error("expected an error for a database sink without a connection")
	}
}
