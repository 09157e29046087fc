package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/AccelByte/extend-churn-dataset/pkg/generator"
	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordingSink remembers what it was handed
type recordingSink struct {
	id  string
	err error
	got *dataset.Output
}

func (s *recordingSink) ID() string   { return s.id }
func (s *recordingSink) Name() string { return "Recording" }
func (s *recordingSink) Write(ctx context.Context, out *dataset.Output) (map[string]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.got = out
	return out.RowCounts(), nil
}
func (s *recordingSink) Config() sink.SinkConfig {
	return sink.SinkConfig{ID: s.id, Type: "recording", Enabled: true}
}

// recordingObserver collects measurements
type recordingObserver struct {
	mu        sync.Mutex
	stages    []string
	failed    []string
	generated map[string]int
	sinkRows  map[string]map[string]int
}

func (o *recordingObserver) ObserveStage(stage string, d time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stages = append(o.stages, stage)
	if err != nil {
		o.failed = append(o.failed, stage)
	}
}

func (o *recordingObserver) ObserveGenerated(rows map[string]int) {
	o.generated = rows
}

func (o *recordingObserver) ObserveSinkRows(sinkID string, rows map[string]int) {
	if o.sinkRows == nil {
		o.sinkRows = make(map[string]map[string]int)
	}
	o.sinkRows[sinkID] = rows
}

func testGeneratorConfig() generator.Config {
	cfg := generator.DefaultConfig()
	cfg.Players = 8
	cfg.HistoryDays = 30
	cfg.ReferenceTime = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	return cfg
}

func newTestManager(t *testing.T, observer Observer, sinks ...*recordingSink) *Manager {
	t.Helper()
	registry := sink.NewRegistry()
	p := NewPipeline("test")
	for _, s := range sinks {
		if err := registry.Register(s); err != nil {
			t.Fatalf("failed to register sink: %v", err)
		}
		p.AddSinks(s.id)
	}
	return NewManager(p, sink.NewWriter(registry), observer)
}

func TestManager_Run(t *testing.T) {
	files := &recordingSink{id: "files"}
	cache := &recordingSink{id: "cache"}
	observer := &recordingObserver{}
	m := newTestManager(t, observer, files, cache)

	result, err := m.Run(context.Background(), testGeneratorConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.RunID == "" {
		t.Error("expected a run id")
	}
	if files.got != result.Output || cache.got != result.Output {
		t.Error("expected every sink to receive the run output")
	}
	if len(result.Sinks) != 2 || !result.Sinks[0].Success || !result.Sinks[1].Success {
		t.Errorf("expected two successful sink results, got %d", len(result.Sinks))
	}
	if len(result.Output.Tables.Players) != 8 {
		t.Errorf("expected 8 players, got %d", len(result.Output.Tables.Players))
	}

	want := append(append([]string(nil), generator.Stages...), "sink.files", "sink.cache")
	if len(observer.stages) != len(want) {
		t.Fatalf("expected stages %v, got %v", want, observer.stages)
	}
	for i := range want {
		if observer.stages[i] != want[i] {
			t.Errorf("stage %d: expected %s, got %s", i, want[i], observer.stages[i])
		}
	}
	if observer.generated[dataset.TablePlayers] != 8 {
		t.Errorf("expected 8 generated players observed, got %d", observer.generated[dataset.TablePlayers])
	}
	if observer.sinkRows["cache"][dataset.TableFeatures] != 8 {
		t.Errorf("expected 8 feature rows written to cache, got %d", observer.sinkRows["cache"][dataset.TableFeatures])
	}
}

func TestManager_SinkFailureStopsRun(t *testing.T) {
	boom := errors.New("bucket not found")
	first := &recordingSink{id: "files"}
	failing := &recordingSink{id: "lake", err: boom}
	last := &recordingSink{id: "cache"}
	observer := &recordingObserver{}
	m := newTestManager(t, observer, first, failing, last)

	result, err := m.Run(context.Background(), testGeneratorConfig())
	if !errors.Is(err, boom) {
		t.Fatalf("expected sink error, got %v", err)
	}
	if result == nil || result.Output == nil {
		t.Fatal("expected partial result with output")
	}
	if first.got == nil {
		t.Error("expected the first sink to have completed")
	}
	if last.got != nil {
		t.Error("expected sinks after the failure to be skipped")
	}
	if len(observer.failed) != 1 || observer.failed[0] != "sink.lake" {
		t.Errorf("expected sink.lake to be the failed stage, got %v", observer.failed)
	}
}

func TestManager_InvalidConfig(t *testing.T) {
	m := newTestManager(t, nil, &recordingSink{id: "files"})
	cfg := testGeneratorConfig()
	cfg.OutlierFraction = 2

	if _, err := m.Run(context.Background(), cfg); err == nil {
		t.Error("expected error for an invalid generator config")
	}
}

func TestManager_Cancelled(t *testing.T) {
	files := &recordingSink{id: "files"}
	m := newTestManager(t, nil, files)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Run(ctx, testGeneratorConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if files.got != nil {
		t.Error("expected no sink writes after cancellation")
	}
}

func TestManager_Deterministic(t *testing.T) {
	a, err := newTestManager(t, nil).Run(context.Background(), testGeneratorConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	b, err := newTestManager(t, nil).Run(context.Background(), testGeneratorConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(a.Output.Features) != len(b.Output.Features) {
		t.Fatalf("expected same feature counts, got %d and %d", len(a.Output.Features), len(b.Output.Features))
	}
	for i := range a.Output.Features {
		if !reflect.DeepEqual(a.Output.Features[i], b.Output.Features[i]) {
			t.Errorf("feature row %d differs between runs with the same seed", i)
		}
	}
	if a.RunID == b.RunID {
		t.Error("expected distinct run ids")
	}
}

func TestManager_RunTracesStages(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	m := newTestManager(t, nil, &recordingSink{id: "files"})
	result, err := m.Run(context.Background(), testGeneratorConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	spans := make(map[string]sdktrace.ReadOnlySpan)
	for _, span := range recorder.Ended() {
		spans[span.Name()] = span
	}

	for _, stage := range append(append([]string{}, generator.Stages...), SinkStage("files")) {
		if _, ok := spans[stage]; !ok {
			t.Errorf("expected a span for stage %s", stage)
		}
	}

	for stage, prefix := range map[string]string{
		generator.StageOutliers:    "outliers: scaled ",
		generator.StageMissingness: "missingness: blanked cells",
	} {
		span, ok := spans[stage]
		if !ok {
			continue
		}
		events := span.Events()
		if len(events) != 1 || !strings.HasPrefix(events[0].Name, prefix) {
			t.Errorf("expected one %q event on %s, got %v", prefix, stage, events)
		}
	}

	root, ok := spans["churn-dataset.run"]
	if !ok {
		t.Fatal("expected the run span")
	}
	tags := make(map[string]string)
	for _, kv := range root.Attributes() {
		tags[string(kv.Key)] = kv.Value.Emit()
	}
	if tags["run_id"] != result.RunID {
		t.Errorf("expected run_id %s, got %s", result.RunID, tags["run_id"])
	}
	if tags["reference_time"] != "2025-06-30T00:00:00Z" {
		t.Errorf("expected reference_time tag, got %q", tags["reference_time"])
	}
}
