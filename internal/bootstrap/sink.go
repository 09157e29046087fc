// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-churn-dataset/pkg/pipeline"
	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
	sinkBuiltin "github.com/AccelByte/extend-churn-dataset/pkg/sink/builtin"
	"github.com/sirupsen/logrus"
)

// InitSinkWriter creates and initializes a sink writer with sinks from pipeline config.
//
// ============================================================
// DEVELOPER: Register custom sink types here.
// ============================================================
// Sinks persist the output of a run. Each sink type defines
// where the tables go (files, database, cache, object storage).
//
// Steps to add a new sink:
// 1. Create your sink in pkg/sink/builtin/
// 2. Implement the Sink interface
// 3. Register the sink type in pkg/sink/builtin/init.go
// 4. Add the sink to config/pipeline.yaml
//
// IMPORTANT: Sinks that write through a client (database, redis,
// s3) receive it through the Dependencies struct.
// ============================================================
func InitSinkWriter(
	pipelineConfig *pipeline.Config,
	deps *sinkBuiltin.Dependencies,
) (*sink.Writer, *sink.Registry, error) {
	// This registers all sink factories defined in pkg/sink/builtin/init.go
	sinkBuiltin.RegisterSinks(deps)

	registry := sink.NewRegistry()
	if err := sink.RegisterSinks(registry, pipelineConfig.Sinks); err != nil {
		return nil, nil, fmt.Errorf("failed to register sinks: %w", err)
	}

	logrus.Infof("registered %d sinks: %v", registry.Count(), registry.IDs())

	writer := sink.NewWriter(registry)
	logrus.Infof("initialized sink writer")

	return writer, registry, nil
}
