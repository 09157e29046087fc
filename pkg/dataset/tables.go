// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package dataset

import "time"

// Table names shared by the delimited export, the relational store and metrics labels.
const (
	TablePlayers       = "players"
	TableSessions      = "sessions"
	TableBets          = "bets"
	TableDeposits      = "deposits"
	TableWithdrawals   = "withdrawals"
	TableBonuses       = "bonuses"
	TableFeatures      = "player_features"
	TableDriftFeatures = "player_features_test_drift"
)

// Tables holds the raw synthetic event log of one run.
type Tables struct {
	Players     []Player
	Sessions    []Session
	Bets        []Bet
	Deposits    []Deposit
	Withdrawals []Withdrawal
	Bonuses     []Bonus
}

// Events holds the five event streams without the population.
type Events struct {
	Sessions    []Session
	Bets        []Bet
	Deposits    []Deposit
	Withdrawals []Withdrawal
	Bonuses     []Bonus
}

// Events returns the event streams of t.
func (t *Tables) Events() Events {
	return Events{
		Sessions:    t.Sessions,
		Bets:        t.Bets,
		Deposits:    t.Deposits,
		Withdrawals: t.Withdrawals,
		Bonuses:     t.Bonuses,
	}
}

// Since returns the events at or after start. There is no upper bound: the
// caller's reference time is the end of every generated window.
func (e Events) Since(start time.Time) Events {
	out := Events{}
	for _, s := range e.Sessions {
		if !s.LoginTime.Before(start) {
			out.Sessions = append(out.Sessions, s)
		}
	}
	for _, b := range e.Bets {
		if !b.BetTime.Before(start) {
			out.Bets = append(out.Bets, b)
		}
	}
	for _, d := range e.Deposits {
		if !d.DepositTime.Before(start) {
			out.Deposits = append(out.Deposits, d)
		}
	}
	for _, w := range e.Withdrawals {
		if !w.WithdrawalTime.Before(start) {
			out.Withdrawals = append(out.Withdrawals, w)
		}
	}
	for _, r := range e.Bonuses {
		if !r.IssuedDate.Before(start) {
			out.Bonuses = append(out.Bonuses, r)
		}
	}
	return out
}

// Output is everything a run hands to the sinks.
type Output struct {
	Tables        Tables
	Features      []PlayerFeatures
	DriftFeatures []PlayerFeatures
	ReferenceTime time.Time
	Seed          uint64
}

// RowCounts returns the number of rows per output table.
func (o *Output) RowCounts() map[string]int {
	return map[string]int{
		TablePlayers:       len(o.Tables.Players),
		TableSessions:      len(o.Tables.Sessions),
		TableBets:          len(o.Tables.Bets),
		TableDeposits:      len(o.Tables.Deposits),
		TableWithdrawals:   len(o.Tables.Withdrawals),
		TableBonuses:       len(o.Tables.Bonuses),
		TableFeatures:      len(o.Features),
		TableDriftFeatures: len(o.DriftFeatures),
	}
}

// String returns a pointer to v.
func String(v string) *string { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Time returns a pointer to v.
func Time(v time.Time) *time.Time { return &v }
