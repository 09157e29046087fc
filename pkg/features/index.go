// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package features

import "github.com/AccelByte/extend-churn-dataset/pkg/dataset"

// playerIndex groups every event stream by player once per Compute call.
type playerIndex struct {
	sessions    map[int64][]dataset.Session
	bets        map[int64][]dataset.Bet
	deposits    map[int64][]dataset.Deposit
	withdrawals map[int64][]dataset.Withdrawal
	bonuses     map[int64][]dataset.Bonus
}

func newPlayerIndex(e dataset.Events) *playerIndex {
	return &playerIndex{
		sessions:    groupBy(e.Sessions, func(s dataset.Session) int64 { return s.PlayerID }),
		bets:        groupBy(e.Bets, func(b dataset.Bet) int64 { return b.PlayerID }),
		deposits:    groupBy(e.Deposits, func(d dataset.Deposit) int64 { return d.PlayerID }),
		withdrawals: groupBy(e.Withdrawals, func(w dataset.Withdrawal) int64 { return w.PlayerID }),
		bonuses:     groupBy(e.Bonuses, func(r dataset.Bonus) int64 { return r.PlayerID }),
	}
}

func groupBy[T any](rows []T, key func(T) int64) map[int64][]T {
	out := make(map[int64][]T)
	for _, row := range rows {
		k := key(row)
		out[k] = append(out[k], row)
	}
	return out
}
