package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/common"
	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/AccelByte/extend-churn-dataset/pkg/generator"
	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
	"github.com/google/uuid"
)

// Observer receives run measurements.
type Observer interface {
	ObserveStage(stage string, duration time.Duration, err error)
	ObserveGenerated(rows map[string]int)
	ObserveSinkRows(sinkID string, rows map[string]int)
}

type nopObserver struct{}

func (nopObserver) ObserveStage(string, time.Duration, error) {}
func (nopObserver) ObserveGenerated(map[string]int)           {}
func (nopObserver) ObserveSinkRows(string, map[string]int)    {}

// Manager orchestrates one dataset run:
// Generator stages → Sinks
type Manager struct {
	pipeline *Pipeline
	writer   *sink.Writer
	observer Observer
}

// NewManager creates a new pipeline manager. A nil observer discards measurements.
func NewManager(p *Pipeline, writer *sink.Writer, observer Observer) *Manager {
	if observer == nil {
		observer = nopObserver{}
	}

	return &Manager{
		pipeline: p,
		writer:   writer,
		observer: observer,
	}
}

// RunResult summarises a completed run.
type RunResult struct {
	RunID    string
	TraceID  string
	Output   *dataset.Output
	Sinks    []*sink.WriteResult
	Duration time.Duration
}

// Run generates the dataset for cfg and hands it to every sink of the pipeline in order.
// A sink failure stops the run; sinks that completed keep their output.
func (m *Manager) Run(ctx context.Context, cfg generator.Config) (*RunResult, error) {
	runID := uuid.NewString()
	scope := common.NewRootScope(ctx, "churn-dataset.run", runID)
	defer scope.Finish()

	scope.TraceTag("run_id", runID)
	scope.SetAttributes("seed", int64(cfg.Seed))
	scope.SetAttributes("players", cfg.Players)
	scope.Log.Infof("starting pipeline %s: seed=%d players=%d history_days=%d",
		m.pipeline.Name, cfg.Seed, cfg.Players, cfg.HistoryDays)

	started := time.Now()
	result := &RunResult{RunID: runID, TraceID: scope.TraceID}
	tracer := &runTracer{manager: m, root: scope}
	runStage := tracer.runStage

	gen, err := generator.New(cfg,
		generator.WithStageRunner(runStage),
		generator.WithEventRecorder(tracer.recordEvent),
	)
	if err != nil {
		scope.TraceError(err)
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}

	out, err := gen.Run(scope.Ctx)
	if err != nil {
		scope.TraceError(err)
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	result.Output = out
	scope.TraceTag("reference_time", out.ReferenceTime.Format(time.RFC3339))

	counts := out.RowCounts()
	m.observer.ObserveGenerated(counts)
	scope.Log.WithField("rows", counts).Infof("generated dataset for reference time %s",
		out.ReferenceTime.Format(time.RFC3339))

	for _, sinkID := range m.pipeline.Sinks {
		err := runStage(scope.Ctx, SinkStage(sinkID), func(ctx context.Context) error {
			res, err := m.writer.Write(ctx, sinkID, out)
			if res != nil {
				result.Sinks = append(result.Sinks, res)
			}
			if err != nil {
				return err
			}
			m.observer.ObserveSinkRows(sinkID, res.Rows)
			return nil
		})
		if err != nil {
			scope.TraceError(err)
			result.Duration = time.Since(started)
			return result, fmt.Errorf("sink %s: %w", sinkID, err)
		}
	}

	result.Duration = time.Since(started)
	scope.Log.Infof("pipeline %s completed in %v (%d sinks)", m.pipeline.Name, result.Duration, len(result.Sinks))
	return result, nil
}

// runTracer opens one child span per stage under the run's root scope.
// Stages run one at a time, so at most one stage scope is open.
type runTracer struct {
	manager *Manager
	root    *common.Scope
	stage   *common.Scope
}

// runStage wraps a stage in a child span and reports its duration.
func (t *runTracer) runStage(ctx context.Context, stage string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	scope := t.root.NewChildScope(stage)
	t.stage = scope
	defer func() {
		scope.Finish()
		t.stage = nil
	}()

	started := time.Now()
	err := fn(scope.Ctx)
	elapsed := time.Since(started)
	t.manager.observer.ObserveStage(stage, elapsed, err)

	if err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("stage failed after %v: %v", elapsed, err)
		return err
	}

	scope.Log.Debugf("stage completed in %v", elapsed)
	return nil
}

// recordEvent adds message to the span of the running stage.
func (t *runTracer) recordEvent(stage, message string) {
	scope := t.stage
	if scope == nil {
		scope = t.root
	}
	scope.TraceEvent(stage + ": " + message)
}
