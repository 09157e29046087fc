// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package generator simulates a casino population and its event log and
// derives the baseline and drift feature tables from it.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/AccelByte/extend-churn-dataset/pkg/features"
	"github.com/sirupsen/logrus"
)

// Stage names, in execution order.
const (
	StagePopulation  = "population"
	StageStreams     = "streams"
	StageOutliers    = "outliers"
	StageMissingness = "missingness"
	StageWindow      = "window"
	StageAggregate   = "aggregate"
	StageDrift       = "drift"
)

// Stages lists the stage names in execution order.
var Stages = []string{
	StagePopulation, StageStreams, StageOutliers, StageMissingness,
	StageWindow, StageAggregate, StageDrift,
}

// Config holds configuration for the generator.
type Config struct {
	Seed            uint64
	Players         int
	HistoryDays     int
	LookbackDays    int
	ChurnThreshold  int
	OutlierFraction float64
	MissingFraction float64
	Drift           DriftConfig
	// ReferenceTime is the end of the history window. Zero means now.
	ReferenceTime time.Time
	// Profile overrides DefaultProfile when set.
	Profile *Profile
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Seed:            42,
		Players:         4000,
		HistoryDays:     180,
		LookbackDays:    30,
		ChurnThreshold:  14,
		OutlierFraction: 0.005,
		MissingFraction: 0.01,
		Drift:           DefaultDriftConfig(),
	}
}

// Validate checks the run parameters and the profile.
func (c Config) Validate() error {
	if c.Players < 0 {
		return fmt.Errorf("players must be non-negative, got %d", c.Players)
	}
	if c.HistoryDays <= 0 {
		return fmt.Errorf("history days must be positive, got %d", c.HistoryDays)
	}
	if c.LookbackDays <= 0 {
		return fmt.Errorf("lookback days must be positive, got %d", c.LookbackDays)
	}
	if c.ChurnThreshold < 0 {
		return fmt.Errorf("churn threshold must be non-negative, got %d", c.ChurnThreshold)
	}
	if c.Drift.HorizonDays < 0 {
		return fmt.Errorf("drift horizon days must be non-negative, got %d", c.Drift.HorizonDays)
	}

	fractions := []struct {
		name  string
		value float64
	}{
		{"outlier fraction", c.OutlierFraction},
		{"missing fraction", c.MissingFraction},
		{"drift fraction", c.Drift.Fraction},
		{"drift session fraction", c.Drift.SessionFraction},
		{"drift bet fraction", c.Drift.BetFraction},
		{"drift deposit fraction", c.Drift.DepositFraction},
	}
	for _, f := range fractions {
		if !isProbability(f.value) {
			return fmt.Errorf("%s must be within [0, 1], got %v", f.name, f.value)
		}
	}

	if c.Profile != nil {
		if err := c.Profile.Validate(); err != nil {
			return fmt.Errorf("invalid profile: %w", err)
		}
	}
	return nil
}

// StageRunner wraps the execution of one named stage.
type StageRunner func(ctx context.Context, stage string, fn func(ctx context.Context) error) error

func runDirect(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// EventRecorder receives notable facts of the running stage, e.g. to add them
// to its span.
type EventRecorder func(stage, message string)

func discardEvent(string, string) {}

// Option customises a Generator.
type Option func(*Generator)

// WithStageRunner wraps every stage with r, e.g. to trace or time it.
func WithStageRunner(r StageRunner) Option {
	return func(g *Generator) { g.runStage = r }
}

// WithEventRecorder sends the noise reports of a run to r.
func WithEventRecorder(r EventRecorder) Option {
	return func(g *Generator) { g.recordEvent = r }
}

// Generator orchestrates one synthetic dataset run.
type Generator struct {
	config      Config
	profile     *Profile
	rng         *RNG
	agg         *features.Aggregator
	runStage    StageRunner
	recordEvent EventRecorder
}

// New creates a new Generator with the given configuration.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ReferenceTime.IsZero() {
		cfg.ReferenceTime = time.Now()
	}
	cfg.ReferenceTime = cfg.ReferenceTime.UTC()

	profile := cfg.Profile
	if profile == nil {
		profile = DefaultProfile()
	}

	g := &Generator{
		config:      cfg,
		profile:     profile,
		rng:         NewRNG(cfg.Seed),
		agg:         features.NewAggregator(cfg.LookbackDays, cfg.ChurnThreshold),
		runStage:    runDirect,
		recordEvent: discardEvent,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the effective configuration, reference time resolved.
func (g *Generator) Config() Config {
	return g.config
}

// Run executes every stage once and returns the full output. A Generator is
// single use: its random handle is consumed by the run.
func (g *Generator) Run(ctx context.Context) (*dataset.Output, error) {
	end := g.config.ReferenceTime
	history := Window{Start: end.AddDate(0, 0, -g.config.HistoryDays), End: end}
	out := &dataset.Output{ReferenceTime: end, Seed: g.config.Seed}

	var window dataset.Events
	stages := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{StagePopulation, func(context.Context) error {
			out.Tables.Players = GeneratePlayers(g.rng, g.profile, g.config.Players, end)
			return nil
		}},
		{StageStreams, func(context.Context) error {
			events := GenerateEvents(g.rng, g.profile, out.Tables.Players, history)
			out.Tables.Sessions = events.Sessions
			out.Tables.Bets = events.Bets
			out.Tables.Deposits = events.Deposits
			out.Tables.Withdrawals = events.Withdrawals
			out.Tables.Bonuses = events.Bonuses
			return nil
		}},
		{StageOutliers, func(context.Context) error {
			report := InjectOutliers(g.rng, &out.Tables, g.config.OutlierFraction)
			msg := fmt.Sprintf("scaled %d bet and %d deposit amounts", report.Bets, report.Deposits)
			logrus.Debug(msg)
			g.recordEvent(StageOutliers, msg)
			return nil
		}},
		{StageMissingness, func(context.Context) error {
			report := InjectMissingness(g.rng, &out.Tables, g.config.MissingFraction)
			msg := fmt.Sprintf("blanked cells per table: %v", map[string]int(report))
			logrus.Debug(msg)
			g.recordEvent(StageMissingness, msg)
			return nil
		}},
		{StageWindow, func(context.Context) error {
			window = out.Tables.Events().Since(end.AddDate(0, 0, -g.config.LookbackDays))
			return nil
		}},
		{StageAggregate, func(context.Context) error {
			out.Features = g.agg.Compute(out.Tables.Players, window, out.Tables.Sessions, end, dataset.CohortBaseline)
			return nil
		}},
		{StageDrift, func(context.Context) error {
			drift := GenerateDrift(g.rng, g.profile, g.config.Drift, g.agg, out.Tables.Players, out.Tables.Sessions, end)
			out.DriftFeatures = drift.Features
			return nil
		}},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.runStage(ctx, stage.name, stage.fn); err != nil {
			return nil, fmt.Errorf("stage %s: %w", stage.name, err)
		}
	}
	return out, nil
}
