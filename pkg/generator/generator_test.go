package generator

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

var testReference = time.Date(2025, 6, 30, 18, 0, 0, 0, time.UTC)

func testConfig(seed uint64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Players = 60
	cfg.HistoryDays = 60
	cfg.ReferenceTime = testReference
	return cfg
}

func runGenerator(t *testing.T, cfg Config) *dataset.Output {
	t.Helper()
	g, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	out, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out
}

func TestRunIsDeterministicPerSeed(t *testing.T) {
	first := runGenerator(t, testConfig(7))
	second := runGenerator(t, testConfig(7))

	if !reflect.DeepEqual(first, second) {
		t.Error("expected equal output for equal seeds")
	}

	other := runGenerator(t, testConfig(8))
	if reflect.DeepEqual(first.Tables.Sessions, other.Tables.Sessions) {
		t.Error("expected different sessions for different seeds")
	}
}

func TestRunOutputShape(t *testing.T) {
	cfg := testConfig(42)
	out := runGenerator(t, cfg)

	if len(out.Tables.Players) != cfg.Players {
		t.Fatalf("expected %d players, got %d", cfg.Players, len(out.Tables.Players))
	}
	if len(out.Features) != cfg.Players {
		t.Errorf("expected one feature row per player, got %d", len(out.Features))
	}
	wantDrift := int(float64(cfg.Players) * cfg.Drift.Fraction)
	if len(out.DriftFeatures) != wantDrift {
		t.Errorf("expected %d drift rows, got %d", wantDrift, len(out.DriftFeatures))
	}
	if !out.ReferenceTime.Equal(testReference) {
		t.Errorf("expected reference time %v, got %v", testReference, out.ReferenceTime)
	}

	known := make(map[int64]bool)
	for _, p := range out.Tables.Players {
		known[p.PlayerID] = true
	}
	perPlayer := make(map[int64]int)
	start := testReference.AddDate(0, 0, -cfg.HistoryDays)
	for _, s := range out.Tables.Sessions {
		if !known[s.PlayerID] {
			t.Fatalf("session %s references unknown player %d", s.SessionID, s.PlayerID)
		}
		if s.LoginTime.Before(start) || !s.LoginTime.Before(testReference) {
			t.Errorf("session %s login %v outside the history window", s.SessionID, s.LoginTime)
		}
		perPlayer[s.PlayerID]++
	}
	for id := range known {
		if perPlayer[id] < 1 {
			t.Errorf("expected player %d to have at least one session", id)
		}
	}

	for _, rows := range [][]dataset.PlayerFeatures{out.Features, out.DriftFeatures} {
		for _, row := range rows {
			if row.ChurnLabel != (row.DaysSinceLastLogin > cfg.ChurnThreshold) {
				t.Errorf("player %d: churn_label %v disagrees with %d days since last login",
					row.PlayerID, row.ChurnLabel, row.DaysSinceLastLogin)
			}
		}
	}
	for _, row := range out.DriftFeatures {
		if row.Cohort != dataset.CohortDrift {
			t.Errorf("expected drift cohort, got %q", row.Cohort)
		}
	}
}

func TestRunStageOrder(t *testing.T) {
	var stages []string
	runner := func(ctx context.Context, stage string, fn func(ctx context.Context) error) error {
		stages = append(stages, stage)
		return fn(ctx)
	}

	g, err := New(testConfig(1), WithStageRunner(runner))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := Stages
	if !reflect.DeepEqual(stages, want) {
		t.Errorf("expected stages %v, got %v", want, stages)
	}
}

func TestRunRecordsNoiseReports(t *testing.T) {
	events := map[string]string{}
	recorder := func(stage, message string) {
		events[stage] = message
	}

	g, err := New(testConfig(3), WithEventRecorder(recorder))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("expected events from 2 stages, got %v", events)
	}
	if !strings.HasPrefix(events[StageOutliers], "scaled ") {
		t.Errorf("unexpected outliers event %q", events[StageOutliers])
	}
	if !strings.Contains(events[StageMissingness], dataset.TableBets) {
		t.Errorf("expected missingness event to name the bets table, got %q", events[StageMissingness])
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	g, err := New(testConfig(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Run(ctx); err == nil {
		t.Error("expected an error from a cancelled context")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero players", func(c *Config) { c.Players = 0 }, false},
		{"negative players", func(c *Config) { c.Players = -1 }, true},
		{"zero history", func(c *Config) { c.HistoryDays = 0 }, true},
		{"zero lookback", func(c *Config) { c.LookbackDays = 0 }, true},
		{"outlier fraction above one", func(c *Config) { c.OutlierFraction = 1.5 }, true},
		{"negative missing fraction", func(c *Config) { c.MissingFraction = -0.1 }, true},
		{"drift session fraction above one", func(c *Config) { c.Drift.SessionFraction = 2 }, true},
		{"negative horizon", func(c *Config) { c.Drift.HorizonDays = -1 }, true},
		{"broken profile", func(c *Config) {
			c.Profile = DefaultProfile()
			c.Profile.Games = nil
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestProfileValidate(t *testing.T) {
	if err := DefaultProfile().Validate(); err != nil {
		t.Fatalf("expected default profile to be valid, got %v", err)
	}

	missing := DefaultProfile()
	delete(missing.Archetypes, dataset.ArchetypeBot)
	if err := missing.Validate(); err == nil {
		t.Error("expected error for a missing archetype")
	}

	unknown := DefaultProfile()
	unknown.Archetypes["grinder"] = unknown.Archetypes[dataset.ArchetypeCasual]
	if err := unknown.Validate(); err == nil {
		t.Error("expected error for an unknown archetype")
	}

	badProb := DefaultProfile()
	badProb.WinProbability = 1.2
	if err := badProb.Validate(); err == nil {
		t.Error("expected error for a win probability above one")
	}

	noHours := DefaultProfile()
	noHours.WeekendHours = HourWeights{}
	if err := noHours.Validate(); err == nil {
		t.Error("expected error for all-zero hour weights")
	}
}
