package builtin

import (
	"context"
	"fmt"
	"os"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/AccelByte/extend-churn-dataset/pkg/export"
	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
	"github.com/sirupsen/logrus"
)

const (
	// CSVSinkType is the type of the delimited file sink
	CSVSinkType = "csv"
)

// CSVSink writes every table as a delimited file into a directory.
type CSVSink struct {
	config sink.SinkConfig
	dir    string
}

// NewCSVSink creates a new csv sink. The dir parameter overrides defaultDir.
func NewCSVSink(config sink.SinkConfig, defaultDir string) (*CSVSink, error) {
	dir := config.GetParameterString("dir", defaultDir)
	if dir == "" {
		return nil, fmt.Errorf("%w: csv sink %s needs a dir", sink.ErrInvalidConfig, config.ID)
	}

	logrus.Infof("creating csv sink: dir=%s", dir)

	return &CSVSink{config: config, dir: dir}, nil
}

// ID returns the sink identifier.
func (s *CSVSink) ID() string {
	return s.config.ID
}

// Name returns the sink name.
func (s *CSVSink) Name() string {
	return "CSV Files"
}

// Config returns the sink configuration.
func (s *CSVSink) Config() sink.SinkConfig {
	return s.config
}

// Dir returns the output directory.
func (s *CSVSink) Dir() string {
	return s.dir
}

// Write creates the directory and writes the eight files.
func (s *CSVSink) Write(ctx context.Context, out *dataset.Output) (map[string]int, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	rows := make(map[string]int)
	for _, t := range export.Tables(out) {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		path, err := export.WriteFile(s.dir, t)
		if err != nil {
			return rows, err
		}
		rows[t.Name] = t.Len
		logrus.Debugf("wrote %d rows to %s", t.Len, path)
	}

	return rows, nil
}
