package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/sirupsen/logrus"
)

// Writer hands run output to registered sinks.
type Writer struct {
	registry *Registry
}

// NewWriter creates a new sink writer.
func NewWriter(registry *Registry) *Writer {
	return &Writer{
		registry: registry,
	}
}

// Write runs one sink.
func (w *Writer) Write(ctx context.Context, sinkID string, out *dataset.Output) (*WriteResult, error) {
	s := w.registry.Get(sinkID)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrSinkNotFound, sinkID)
	}

	logrus.Infof("writing run output to sink %s (%s)", sinkID, s.Name())
	started := time.Now()

	rows, err := s.Write(ctx, out)
	if err != nil {
		logrus.Errorf("sink %s failed: %v", sinkID, err)
		return NewWriteError(sinkID, err), err
	}

	result := NewWriteResult(sinkID, rows).WithMetadata("duration", time.Since(started))
	logrus.Infof("sink %s wrote %d rows in %v", sinkID, result.TotalRows(), time.Since(started))
	return result, nil
}

// WriteAll runs the sinks in order and stops at the first failure.
// Sinks that completed before the failure keep their output.
func (w *Writer) WriteAll(ctx context.Context, sinkIDs []string, out *dataset.Output) ([]*WriteResult, error) {
	var results []*WriteResult

	for _, sinkID := range sinkIDs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result, err := w.Write(ctx, sinkID, out)
		if result != nil {
			results = append(results, result)
		}
		if err != nil {
			return results, fmt.Errorf("sink %s: %w", sinkID, err)
		}
	}

	return results, nil
}

// GetRegistry returns the sink registry used by this writer.
func (w *Writer) GetRegistry() *Registry {
	return w.registry
}
