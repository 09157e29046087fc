// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package generator

import (
	"time"

	"github.com/AccelByte/extend-churn-dataset/pkg/common"
	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

// Window is a half-open generation interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Days is the whole number of days the window spans.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start) / (24 * time.Hour))
}

func (w Window) weeks() float64  { return float64(w.Days()) / 7 }
func (w Window) months() float64 { return float64(w.Days()) / 30 }

// GenerateEvents runs the five stream simulators for players over w.
func GenerateEvents(rng *RNG, profile *Profile, players []dataset.Player, w Window) dataset.Events {
	return dataset.Events{
		Sessions:    GenerateSessions(rng, profile, players, w),
		Bets:        GenerateBets(rng, profile, players, w),
		Deposits:    GenerateDeposits(rng, profile, players, w),
		Withdrawals: GenerateWithdrawals(rng, profile, players, w),
		Bonuses:     GenerateBonuses(rng, profile, players, w),
	}
}

// GenerateSessions simulates logins. Every player gets at least
// profile.MinSessionsPerPlayer sessions and every login stays inside w.
func GenerateSessions(rng *RNG, profile *Profile, players []dataset.Player, w Window) []dataset.Session {
	weekday := profile.WeekdayHours.perHour()
	weekend := profile.WeekendHours.perHour()

	var rows []dataset.Session
	for _, p := range players {
		ap := profile.Archetypes[p.Archetype]
		n := max(profile.MinSessionsPerPlayer, rng.Poisson(ap.SessionsPerWeek*w.weeks()))

		for _, t := range randTimes(rng, w, n) {
			var hour int
			switch {
			case ap.UniformHours:
				hour = rng.IntBetween(0, 23)
			case isWeekend(t):
				hour = rng.WeightedIndex(weekend)
			default:
				hour = rng.WeightedIndex(weekday)
			}
			minute := rng.IntBetween(0, 59)
			second := rng.IntBetween(0, 59)
			login := clampToWindow(time.Date(t.Year(), t.Month(), t.Day(), hour, minute, second, 0, time.UTC), w)

			length := max(1, int(rng.Normal(ap.SessionMinutes.Mean, ap.SessionMinutes.StdDev)))

			rows = append(rows, dataset.Session{
				SessionID:  rng.UUID(),
				PlayerID:   p.PlayerID,
				LoginTime:  login,
				LogoutTime: login.Add(time.Duration(length) * time.Minute),
				DeviceType: dataset.String(rng.Choice(profile.DeviceTypes)),
				Platform:   dataset.String(rng.Choice(profile.Platforms)),
				Country:    dataset.String(p.Country),
			})
		}
	}
	return rows
}

// GenerateBets simulates wagers and their payouts.
func GenerateBets(rng *RNG, profile *Profile, players []dataset.Player, w Window) []dataset.Bet {
	var rows []dataset.Bet
	for _, p := range players {
		ap := profile.Archetypes[p.Archetype]
		n := rng.Poisson(ap.BetsPerWeek * w.weeks())

		for _, t := range randTimes(rng, w, n) {
			game := rng.Choice(profile.Games)
			stake := ap.Stake.magnitude(rng)
			var win float64
			if rng.Bernoulli(profile.WinProbability) {
				win = stake * rng.Uniform(profile.WinMultiplierMin, profile.WinMultiplierMax)
			}

			rows = append(rows, dataset.Bet{
				BetID:     rng.UUID(),
				PlayerID:  p.PlayerID,
				GameName:  dataset.String(game),
				BetAmount: dataset.Float(common.Round(stake, 2)),
				WinAmount: dataset.Float(common.Round(win, 2)),
				BetTime:   t,
			})
		}
	}
	return rows
}

// GenerateDeposits simulates money moved into player accounts.
func GenerateDeposits(rng *RNG, profile *Profile, players []dataset.Player, w Window) []dataset.Deposit {
	var rows []dataset.Deposit
	for _, p := range players {
		ap := profile.Archetypes[p.Archetype]
		n := rng.Poisson(ap.DepositsPerMonth * w.months())
		if n == 0 && rng.Bernoulli(ap.FallbackDepositProbability) {
			n = 1
		}

		for _, t := range randTimes(rng, w, n) {
			amount := ap.DepositAmount.magnitude(rng)
			rows = append(rows, dataset.Deposit{
				DepositID:     rng.UUID(),
				PlayerID:      p.PlayerID,
				DepositTime:   t,
				Amount:        dataset.Float(common.Round(amount, 2)),
				PaymentMethod: dataset.String(rng.Choice(profile.DepositMethods)),
			})
		}
	}
	return rows
}

// GenerateWithdrawals simulates money moved out of player accounts.
func GenerateWithdrawals(rng *RNG, profile *Profile, players []dataset.Player, w Window) []dataset.Withdrawal {
	var rows []dataset.Withdrawal
	for _, p := range players {
		ap := profile.Archetypes[p.Archetype]
		n := rng.Poisson(ap.WithdrawalsPerMonth * w.months())

		for _, t := range randTimes(rng, w, n) {
			amount := ap.WithdrawalAmount.magnitude(rng)
			rows = append(rows, dataset.Withdrawal{
				WithdrawalID:   rng.UUID(),
				PlayerID:       p.PlayerID,
				WithdrawalTime: t,
				Amount:         dataset.Float(common.Round(amount, 2)),
				Method:         dataset.String(rng.Choice(profile.WithdrawalMethods)),
			})
		}
	}
	return rows
}

// GenerateBonuses issues at most one bonus per player, occasionally followed
// by a zero-value marketing offer.
func GenerateBonuses(rng *RNG, profile *Profile, players []dataset.Player, w Window) []dataset.Bonus {
	var rows []dataset.Bonus
	for _, p := range players {
		ap := profile.Archetypes[p.Archetype]
		if !rng.Bernoulli(ap.BonusProbability) {
			continue
		}

		issued := rng.TimeBetween(w.Start, w.End)
		amount := common.Round(ap.BonusAmount.magnitude(rng), 2)
		var redeemed *time.Time
		if rng.Bernoulli(profile.RedemptionProbability) {
			redeemed = dataset.Time(issued.AddDate(0, 0, rng.IntBetween(0, profile.RedemptionMaxDays)))
		}

		rows = append(rows, dataset.Bonus{
			BonusID:      rng.UUID(),
			PlayerID:     p.PlayerID,
			BonusType:    dataset.String(rng.Choice(profile.BonusTypes)),
			BonusAmount:  dataset.Float(amount),
			IssuedDate:   issued,
			RedeemedDate: redeemed,
		})

		if rng.Bernoulli(profile.MarketingOfferProbability) {
			delay := rng.IntBetween(profile.MarketingOfferMinDays, profile.MarketingOfferMaxDays)
			rows = append(rows, dataset.Bonus{
				BonusID:     rng.UUID(),
				PlayerID:    p.PlayerID,
				BonusType:   dataset.String(dataset.BonusTypeMarketingOffer),
				BonusAmount: dataset.Float(0),
				IssuedDate:  issued.AddDate(0, 0, delay),
			})
		}
	}
	return rows
}

// randTimes draws n instants uniformly from w, unsorted.
func randTimes(rng *RNG, w Window, n int) []time.Time {
	times := make([]time.Time, n)
	for i := range times {
		times[i] = rng.TimeBetween(w.Start, w.End)
	}
	return times
}

func isWeekend(t time.Time) bool {
	d := t.UTC().Weekday()
	return d == time.Saturday || d == time.Sunday
}

// clampToWindow moves a login whose hour was re-sampled back inside w by one day.
func clampToWindow(t time.Time, w Window) time.Time {
	if !t.Before(w.End) {
		t = t.Add(-24 * time.Hour)
	}
	if t.Before(w.Start) {
		t = t.Add(24 * time.Hour)
	}
	return t
}
