// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/AccelByte/extend-churn-dataset/pkg/pipeline"
	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
	"github.com/sirupsen/logrus"
)

// InitPipeline creates and initializes the pipeline manager.
//
// ============================================================
// DEVELOPER: Configure sink order
// ============================================================
// The pipeline orchestrates the flow:
// Population → Streams → Noise → Window → Features → Drift → Sinks
//
// Sinks run in the order they appear in config/pipeline.yaml.
// A failing sink stops the run; earlier sinks keep their output.
//
// To modify the order, edit config/pipeline.yaml, not this file.
// ============================================================
func InitPipeline(
	name string,
	writer *sink.Writer,
	pipelineConfig *pipeline.Config,
	observer pipeline.Observer,
) (*pipeline.Manager, *pipeline.Pipeline) {
	p := pipeline.FromConfig(name, pipelineConfig)
	logrus.Infof("configured pipeline %s: %v", p.Name, p.Steps())

	manager := pipeline.NewManager(p, writer, observer)
	logrus.Infof("initialized pipeline manager")

	return manager, p
}
