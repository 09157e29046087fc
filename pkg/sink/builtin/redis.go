package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/AccelByte/extend-churn-dataset/pkg/featurestore"
	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
	"github.com/sirupsen/logrus"
)

const (
	// RedisSinkType is the type of the feature cache sink
	RedisSinkType = "redis"
)

// RedisSink caches both feature tables in the feature store.
type RedisSink struct {
	config sink.SinkConfig
	store  featurestore.FeatureStore
}

// NewRedisSink creates a new feature cache sink.
func NewRedisSink(config sink.SinkConfig, store featurestore.FeatureStore) (*RedisSink, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: redis sink %s needs a feature store", sink.ErrMissingDependency, config.ID)
	}
	return &RedisSink{config: config, store: store}, nil
}

// ID returns the sink identifier.
func (s *RedisSink) ID() string {
	return s.config.ID
}

// Name returns the sink name.
func (s *RedisSink) Name() string {
	return "Feature Cache"
}

// Config returns the sink configuration.
func (s *RedisSink) Config() sink.SinkConfig {
	return s.config
}

// Write stores every baseline and drift feature row.
func (s *RedisSink) Write(ctx context.Context, out *dataset.Output) (map[string]int, error) {
	rows := make(map[string]int)

	n, err := s.store.PutAll(ctx, out.Features)
	rows[dataset.TableFeatures] = n
	if err != nil {
		return rows, err
	}

	n, err = s.store.PutAll(ctx, out.DriftFeatures)
	rows[dataset.TableDriftFeatures] = n
	if err != nil {
		return rows, err
	}

	logrus.Infof("cached %d baseline and %d drift feature rows",
		rows[dataset.TableFeatures], rows[dataset.TableDriftFeatures])
	return rows, nil
}
