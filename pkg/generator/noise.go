// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package generator

import (
	"github.com/AccelByte/extend-churn-dataset/pkg/common"
	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
)

// Outlier multiplier ranges.
const (
	betOutlierMin     = 50
	betOutlierMax     = 500
	depositOutlierMin = 50
	depositOutlierMax = 200
)

// OutlierReport counts the rows scaled by InjectOutliers.
type OutlierReport struct {
	Bets     int
	Deposits int
}

// InjectOutliers scales int(rows × fraction) distinct bet amounts by U(50, 500)
// and deposit amounts by U(50, 200). Each table is handled on its own and an
// empty table is left untouched. Null amounts stay null.
func InjectOutliers(rng *RNG, tables *dataset.Tables, fraction float64) OutlierReport {
	var report OutlierReport

	if n := int(float64(len(tables.Bets)) * fraction); n > 0 {
		for _, i := range rng.SampleIndices(len(tables.Bets), n) {
			factor := rng.Uniform(betOutlierMin, betOutlierMax)
			if b := &tables.Bets[i]; b.BetAmount != nil {
				b.BetAmount = dataset.Float(common.Round(*b.BetAmount*factor, 2))
				report.Bets++
			}
		}
	}

	if n := int(float64(len(tables.Deposits)) * fraction); n > 0 {
		for _, i := range rng.SampleIndices(len(tables.Deposits), n) {
			factor := rng.Uniform(depositOutlierMin, depositOutlierMax)
			if d := &tables.Deposits[i]; d.Amount != nil {
				d.Amount = dataset.Float(common.Round(*d.Amount*factor, 2))
				report.Deposits++
			}
		}
	}

	return report
}

// MissingnessReport counts the cell draws made per table by InjectMissingness.
// Draws are with replacement so a cell may be counted twice.
type MissingnessReport map[string]int

// Nullable value columns per table. Identifier and timestamp columns are never candidates.
var (
	sessionColumns = []func(*dataset.Session){
		func(s *dataset.Session) { s.DeviceType = nil },
		func(s *dataset.Session) { s.Platform = nil },
		func(s *dataset.Session) { s.Country = nil },
	}
	betColumns = []func(*dataset.Bet){
		func(b *dataset.Bet) { b.GameName = nil },
		func(b *dataset.Bet) { b.BetAmount = nil },
		func(b *dataset.Bet) { b.WinAmount = nil },
	}
	depositColumns = []func(*dataset.Deposit){
		func(d *dataset.Deposit) { d.Amount = nil },
		func(d *dataset.Deposit) { d.PaymentMethod = nil },
	}
	withdrawalColumns = []func(*dataset.Withdrawal){
		func(w *dataset.Withdrawal) { w.Amount = nil },
		func(w *dataset.Withdrawal) { w.Method = nil },
	}
	bonusColumns = []func(*dataset.Bonus){
		func(r *dataset.Bonus) { r.BonusType = nil },
		func(r *dataset.Bonus) { r.BonusAmount = nil },
	}
)

// InjectMissingness nulls int(rows × candidate columns × fraction) randomly
// drawn cells of every event table. The players table is left complete.
func InjectMissingness(rng *RNG, tables *dataset.Tables, fraction float64) MissingnessReport {
	return MissingnessReport{
		dataset.TableSessions:    blankCells(rng, tables.Sessions, fraction, sessionColumns),
		dataset.TableBets:        blankCells(rng, tables.Bets, fraction, betColumns),
		dataset.TableDeposits:    blankCells(rng, tables.Deposits, fraction, depositColumns),
		dataset.TableWithdrawals: blankCells(rng, tables.Withdrawals, fraction, withdrawalColumns),
		dataset.TableBonuses:     blankCells(rng, tables.Bonuses, fraction, bonusColumns),
	}
}

func blankCells[T any](rng *RNG, rows []T, fraction float64, columns []func(*T)) int {
	if len(rows) == 0 {
		return 0
	}
	n := int(float64(len(rows)*len(columns)) * fraction)
	for i := 0; i < n; i++ {
		col := rng.IntN(len(columns))
		row := rng.IntN(len(rows))
		columns[col](&rows[row])
	}
	return n
}
