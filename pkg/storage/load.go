// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/uptrace/bun"
)

// DefaultBatchSize is the number of rows per insert statement.
const DefaultBatchSize = 1000

// Load inserts the whole output in one transaction, players first. Both
// feature tables land in player_features, told apart by their cohort.
// It returns the inserted row count per table.
func (db *DB) Load(ctx context.Context, out *dataset.Output, batchSize int) (map[string]int, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	counts := make(map[string]int)
	err := db.bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		steps := []struct {
			table  string
			insert func() (int, error)
		}{
			{dataset.TablePlayers, func() (int, error) { return insertBatches(ctx, tx, out.Tables.Players, batchSize) }},
			{dataset.TableSessions, func() (int, error) { return insertBatches(ctx, tx, out.Tables.Sessions, batchSize) }},
			{dataset.TableBets, func() (int, error) { return insertBatches(ctx, tx, out.Tables.Bets, batchSize) }},
			{dataset.TableDeposits, func() (int, error) { return insertBatches(ctx, tx, out.Tables.Deposits, batchSize) }},
			{dataset.TableWithdrawals, func() (int, error) { return insertBatches(ctx, tx, out.Tables.Withdrawals, batchSize) }},
			{dataset.TableBonuses, func() (int, error) { return insertBatches(ctx, tx, out.Tables.Bonuses, batchSize) }},
			{dataset.TableFeatures, func() (int, error) { return insertBatches(ctx, tx, out.Features, batchSize) }},
			{dataset.TableDriftFeatures, func() (int, error) { return insertBatches(ctx, tx, out.DriftFeatures, batchSize) }},
		}

		for _, step := range steps {
			n, err := step.insert()
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", step.table, err)
			}
			counts[step.table] = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func insertBatches[T any](ctx context.Context, tx bun.Tx, rows []T, batchSize int) (int, error) {
	for start := 0; start < len(rows); start += batchSize {
		batch := rows[start:min(start+batchSize, len(rows))]
		if _, err := tx.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return start, err
		}
	}
	return len(rows), nil
}
