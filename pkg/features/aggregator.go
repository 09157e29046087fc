// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package features turns the event log of a window into one feature row per player.
package features

import (
	"math"
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/common"
	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

// NoLoginDays is reported as days_since_last_login for a player who never logged in.
const NoLoginDays = 999

// Aggregator computes feature rows. It holds no state between calls, so
// computing the same inputs twice yields equal rows.
type Aggregator struct {
	// LookbackDays is the window length used to normalise sessions_per_week.
	LookbackDays int
	// ChurnThreshold is the inactivity, in days, above which a player is labelled churned.
	ChurnThreshold int
}

// NewAggregator returns an Aggregator for the given window and label threshold.
func NewAggregator(lookbackDays, churnThreshold int) *Aggregator {
	return &Aggregator{LookbackDays: lookbackDays, ChurnThreshold: churnThreshold}
}

// Compute returns one row per player, in player order. window holds the events
// inside the lookback window; history holds every session ever generated and
// only serves the last-login fallback.
func (a *Aggregator) Compute(players []dataset.Player, window dataset.Events, history []dataset.Session, reference time.Time, cohort string) []dataset.PlayerFeatures {
	idx := newPlayerIndex(window)
	lastEver := lastLogins(history)
	featureDate := reference.UTC().Truncate(24 * time.Hour)

	rows := make([]dataset.PlayerFeatures, 0, len(players))
	for _, p := range players {
		row := a.computePlayer(p, idx, lastEver, reference)
		row.FeatureDate = featureDate
		row.Cohort = cohort
		rows = append(rows, row)
	}
	return rows
}

func (a *Aggregator) computePlayer(p dataset.Player, idx *playerIndex, lastEver map[int64]time.Time, reference time.Time) dataset.PlayerFeatures {
	sessions := idx.sessions[p.PlayerID]
	bets := idx.bets[p.PlayerID]
	bonuses := idx.bonuses[p.PlayerID]

	activeDays := make(map[string]struct{})
	sessionIDs := make(map[string]struct{})
	var last time.Time
	for _, s := range sessions {
		activeDays[s.LoginTime.UTC().Format(time.DateOnly)] = struct{}{}
		sessionIDs[s.SessionID] = struct{}{}
		if s.LoginTime.After(last) {
			last = s.LoginTime
		}
	}

	daysSince := NoLoginDays
	switch {
	case len(sessions) > 0:
		daysSince = wholeDays(reference.Sub(last))
	default:
		if t, ok := lastEver[p.PlayerID]; ok {
			daysSince = wholeDays(reference.Sub(t))
		}
	}

	var (
		betSum, ggr float64
		betCount    int
		wins        int
		games       = make(map[string]struct{})
	)
	for _, b := range bets {
		if b.BetAmount != nil {
			betSum += *b.BetAmount
			betCount++
		}
		if b.WinAmount != nil && *b.WinAmount > 0 {
			wins++
		}
		if b.BetAmount != nil && b.WinAmount != nil {
			ggr += *b.BetAmount - *b.WinAmount
		}
		if b.GameName != nil {
			games[*b.GameName] = struct{}{}
		}
	}
	var avgBet, winRate float64
	if betCount > 0 {
		avgBet = betSum / float64(betCount)
	}
	if len(bets) > 0 {
		winRate = float64(wins) / float64(len(bets))
	}

	var deposits, withdrawals float64
	for _, d := range idx.deposits[p.PlayerID] {
		if d.Amount != nil {
			deposits += *d.Amount
		}
	}
	for _, w := range idx.withdrawals[p.PlayerID] {
		if w.Amount != nil {
			withdrawals += *w.Amount
		}
	}

	redeemed := 0
	for _, r := range bonuses {
		if r.RedeemedDate != nil {
			redeemed++
		}
	}

	var perWeek float64
	if a.LookbackDays > 0 {
		perWeek = float64(len(sessionIDs)) / (float64(a.LookbackDays) / 7)
	}

	return dataset.PlayerFeatures{
		PlayerID:           p.PlayerID,
		DaysActiveLast30:   len(activeDays),
		TotalBets:          len(bets),
		TotalBetAmount:     common.Round(betSum, 2),
		AvgBetSize:         common.Round(avgBet, 2),
		TotalDeposit:       common.Round(deposits, 2),
		TotalWithdrawal:    common.Round(withdrawals, 2),
		WinRate:            common.Round(winRate, 3),
		NetGGR:             common.Round(ggr, 2),
		UniqueGamesPlayed:  len(games),
		BonusUsed:          len(bonuses) > 0,
		OffersReceived:     len(bonuses),
		OffersRedeemed:     redeemed,
		SessionsPerWeek:    common.Round(perWeek, 2),
		SessionTrendWeekly: common.Round(weeklyTrend(sessions, reference), 3),
		DaysSinceLastLogin: daysSince,
		FriendsCount:       p.FriendsCount,
		MessagesSent:       p.MessagesSent,
		ChurnLabel:         daysSince > a.ChurnThreshold,
	}
}

// wholeDays floors d to whole days. A login after the reference counts as today.
func wholeDays(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(math.Floor(d.Hours() / 24))
}

// lastLogins returns the most recent login of every player in sessions.
func lastLogins(sessions []dataset.Session) map[int64]time.Time {
	last := make(map[int64]time.Time)
	for _, s := range sessions {
		if t, ok := last[s.PlayerID]; !ok || s.LoginTime.After(t) {
			last[s.PlayerID] = s.LoginTime
		}
	}
	return last
}
