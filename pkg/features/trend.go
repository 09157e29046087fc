// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package features

import (
	"math"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"gonum.org/v1/gonum/stat"
)

const (
	trendBins     = 4
	trendBinWidth = 7 * 24 * time.Hour
	// minTrendBins is the number of non-empty bins a slope needs.
	minTrendBins = 2
)

// weeklyCounts counts distinct sessions in the four 7-day bins ending at
// reference, oldest bin first.
func weeklyCounts(sessions []dataset.Session, reference time.Time) []float64 {
	counts := make([]float64, trendBins)
	seen := make([]map[string]struct{}, trendBins)
	for i := range seen {
		seen[i] = make(map[string]struct{})
	}

	for _, s := range sessions {
		for i := 0; i < trendBins; i++ {
			end := reference.Add(-time.Duration(trendBins-1-i) * trendBinWidth)
			start := end.Add(-trendBinWidth)
			if s.LoginTime.Before(start) || !s.LoginTime.Before(end) {
				continue
			}
			if _, ok := seen[i][s.SessionID]; !ok {
				seen[i][s.SessionID] = struct{}{}
				counts[i]++
			}
			break
		}
	}
	return counts
}

// weeklyTrend is the OLS slope of the weekly counts against bin index. It is
// 0 when fewer than two bins are non-empty or the fit is not defined.
func weeklyTrend(sessions []dataset.Session, reference time.Time) float64 {
	counts := weeklyCounts(sessions, reference)

	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	if nonZero < minTrendBins {
		return 0
	}

	xs := make([]float64, len(counts))
	for i := range xs {
		xs[i] = float64(i)
	}
	slope, ok := fitSlope(xs, counts)
	if !ok {
		return 0
	}
	return slope
}

// fitSlope fits y = alpha + beta*x by ordinary least squares and returns beta.
// ok is false when the fit is undefined: fewer than two points, mismatched
// lengths, constant x or a non-finite result.
func fitSlope(xs, ys []float64) (slope float64, ok bool) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return 0, false
	}
	if stat.Variance(xs, nil) == 0 {
		return 0, false
	}

	_, beta := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return 0, false
	}
	return beta, true
}
