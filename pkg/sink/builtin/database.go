package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-churn-dataset/pkg/contract"
	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
	"github.com/AccelByte/extend-churn-dataset/pkg/storage"
	"github.com/sirupsen/logrus"
)

const (
	// DatabaseSinkType is the type of the relational store sink
	DatabaseSinkType = "database"
)

// TableLoader creates the schema and bulk-loads a run.
// *storage.DB implements it.
type TableLoader interface {
	CreateTables(ctx context.Context) error
	Load(ctx context.Context, out *dataset.Output, batchSize int) (map[string]int, error)
}

// DatabaseSink loads every table into the relational store.
type DatabaseSink struct {
	config       sink.SinkConfig
	loader       TableLoader
	createTables bool
	batchSize    int
	validate     bool
}

// NewDatabaseSink creates a new database sink.
func NewDatabaseSink(config sink.SinkConfig, loader TableLoader) (*DatabaseSink, error) {
	if loader == nil {
		return nil, fmt.Errorf("%w: database sink %s needs a database connection", sink.ErrMissingDependency, config.ID)
	}

	batchSize := config.GetParameterInt("batch_size", storage.DefaultBatchSize)
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch_size must be positive, got %d", sink.ErrInvalidConfig, batchSize)
	}

	s := &DatabaseSink{
		config:       config,
		loader:       loader,
		createTables: config.GetParameterBool("create_tables", true),
		batchSize:    batchSize,
		validate:     config.GetParameterBool("validate", true),
	}

	logrus.Infof("creating database sink: create_tables=%v, batch_size=%d, validate=%v",
		s.createTables, s.batchSize, s.validate)

	return s, nil
}

// ID returns the sink identifier.
func (s *DatabaseSink) ID() string {
	return s.config.ID
}

// Name returns the sink name.
func (s *DatabaseSink) Name() string {
	return "Relational Store"
}

// Config returns the sink configuration.
func (s *DatabaseSink) Config() sink.SinkConfig {
	return s.config
}

// Write validates the population and feature rows, then loads everything in one transaction.
func (s *DatabaseSink) Write(ctx context.Context, out *dataset.Output) (map[string]int, error) {
	if s.validate {
		if err := contract.ValidatePlayers(out.Tables.Players); err != nil {
			return nil, fmt.Errorf("player contract: %w", err)
		}
		if err := contract.ValidateFeatures(out.Features); err != nil {
			return nil, fmt.Errorf("feature contract: %w", err)
		}
		if err := contract.ValidateFeatures(out.DriftFeatures); err != nil {
			return nil, fmt.Errorf("drift feature contract: %w", err)
		}
	}

	if s.createTables {
		if err := s.loader.CreateTables(ctx); err != nil {
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return s.loader.Load(ctx, out, s.batchSize)
}
