// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package generator

import (
	"math"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/AccelByte/extend-churn-dataset/pkg/features"
)

// DriftConfig describes the perturbed holdout cohort.
type DriftConfig struct {
	// Fraction of the population placed in the cohort.
	Fraction float64
	// HorizonDays extends the cohort window past the baseline reference time.
	HorizonDays int
	// Fractions of the regenerated rows kept per stream.
	SessionFraction float64
	BetFraction     float64
	DepositFraction float64
}

// DefaultDriftConfig returns a strong engagement drop over a 30 day horizon.
func DefaultDriftConfig() DriftConfig {
	return DriftConfig{
		Fraction:        0.2,
		HorizonDays:     30,
		SessionFraction: 0.3,
		BetFraction:     0.4,
		DepositFraction: 0.2,
	}
}

// DriftResult is the cohort and the feature rows aggregated for it.
type DriftResult struct {
	Players  []dataset.Player
	Events   dataset.Events
	Features []dataset.PlayerFeatures
	Window   Window
}

// GenerateDrift picks int(len(players) × Fraction) players, regenerates their
// streams over [end − lookback, end + horizon), thins sessions, bets and
// deposits, then aggregates with reference end + horizon. history is the
// baseline session log used for the last-login fallback.
func GenerateDrift(rng *RNG, profile *Profile, cfg DriftConfig, agg *features.Aggregator, players []dataset.Player, history []dataset.Session, end time.Time) DriftResult {
	w := Window{
		Start: end.AddDate(0, 0, -agg.LookbackDays),
		End:   end.AddDate(0, 0, cfg.HorizonDays),
	}

	n := int(float64(len(players)) * cfg.Fraction)
	cohort := make([]dataset.Player, 0, n)
	for _, i := range rng.SampleIndices(len(players), n) {
		cohort = append(cohort, players[i])
	}

	events := GenerateEvents(rng, profile, cohort, w)
	events.Sessions = subsample(rng, events.Sessions, cfg.SessionFraction)
	events.Bets = subsample(rng, events.Bets, cfg.BetFraction)
	events.Deposits = subsample(rng, events.Deposits, cfg.DepositFraction)

	return DriftResult{
		Players:  cohort,
		Events:   events,
		Features: agg.Compute(cohort, events, history, w.End, dataset.CohortDrift),
		Window:   w,
	}
}

// subsample keeps round(len(rows) × fraction) rows drawn without replacement,
// in their original order.
func subsample[T any](rng *RNG, rows []T, fraction float64) []T {
	k := int(math.Round(float64(len(rows)) * fraction))
	out := make([]T, 0, k)
	for _, i := range rng.SampleIndices(len(rows), k) {
		out = append(out, rows[i])
	}
	return out
}
