// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/sirupsen/logrus"
)

const metricsNamespace = "churn_dataset"

// Metrics collects the measurements of one run.
//
// ============================================================
// DEVELOPER: Register custom Prometheus metrics here
// ============================================================
// A run is a batch job, so metrics are pushed to a Pushgateway
// once the run ends instead of being scraped.
//
// 1. Add the collector as a field and create it in NewMetrics
// 2. Register it with m.registry
// 3. Update it from a pipeline.Observer method
// ============================================================
type Metrics struct {
	registry      *prometheus.Registry
	stageDuration *prometheus.HistogramVec
	rowsGenerated *prometheus.GaugeVec
	rowsWritten   *prometheus.CounterVec
	lastSuccess   prometheus.Gauge
}

// NewMetrics creates the run metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"stage", "status"}),
		rowsGenerated: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rows_generated",
			Help:      "Rows generated per table in the last run",
		}, []string{"table"}),
		rowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rows_written_total",
			Help:      "Rows written per sink and table",
		}, []string{"sink", "table"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}),
	}

	// Register default collectors
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.stageDuration,
		m.rowsGenerated,
		m.rowsWritten,
		m.lastSuccess,
	)

	return m
}

// Registry returns the registry holding every run metric.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveStage records the duration of a stage.
func (m *Metrics) ObserveStage(stage string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.stageDuration.WithLabelValues(stage, status).Observe(duration.Seconds())
}

// ObserveGenerated records the generated row counts.
func (m *Metrics) ObserveGenerated(rows map[string]int) {
	for table, n := range rows {
		m.rowsGenerated.WithLabelValues(table).Set(float64(n))
	}
}

// ObserveSinkRows records the rows a sink wrote.
func (m *Metrics) ObserveSinkRows(sinkID string, rows map[string]int) {
	for table, n := range rows {
		m.rowsWritten.WithLabelValues(sinkID, table).Add(float64(n))
	}
}

// MarkSuccess stamps the last successful run.
func (m *Metrics) MarkSuccess(at time.Time) {
	m.lastSuccess.Set(float64(at.Unix()))
}

// Push sends every metric to the Pushgateway at url under the job name.
// An empty url disables pushing.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if url == "" {
		logrus.Debugf("no pushgateway configured, skipping metrics push")
		return nil
	}

	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}

	logrus.Infof("pushed run metrics to %s (job=%s)", url, job)
	return nil
}
