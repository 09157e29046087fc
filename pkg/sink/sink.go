package sink

import (
	"context"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

// Sink persists the output of a run somewhere.
// Sinks are registered in a Registry and run by the Writer.
type Sink interface {
	// ID returns unique sink identifier.
	ID() string

	// Name returns human-readable sink name.
	Name() string

	// Write persists the output and reports the rows written per table.
	Write(ctx context.Context, out *dataset.Output) (map[string]int, error)

	// Config returns the sink's configuration.
	Config() SinkConfig
}

// WriteResult represents the outcome of one sink write.
type WriteResult struct {
	SinkID   string
	Success  bool
	Error    error
	Rows     map[string]int
	Metadata map[string]interface{}
}

// NewWriteResult creates a successful write result.
func NewWriteResult(sinkID string, rows map[string]int) *WriteResult {
	return &WriteResult{
		SinkID:   sinkID,
		Success:  true,
		Rows:     rows,
		Metadata: make(map[string]interface{}),
	}
}

// NewWriteError creates a failed write result with an error.
func NewWriteError(sinkID string, err error) *WriteResult {
	return &WriteResult{
		SinkID:   sinkID,
		Success:  false,
		Error:    err,
		Metadata: make(map[string]interface{}),
	}
}

// WithMetadata adds metadata to the result and returns it for chaining.
func (r *WriteResult) WithMetadata(key string, value interface{}) *WriteResult {
	r.Metadata[key] = value
	return r
}

// TotalRows sums the rows written across tables.
func (r *WriteResult) TotalRows() int {
	total := 0
	for _, n := range r.Rows {
		total += n
	}
	return total
}
