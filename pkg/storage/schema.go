// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package storage

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-churn-dataset/pkg/dataset"
	"github.com/sirupsen/logrus"
)

const playerReference = `("player_id") REFERENCES "players" ("player_id") ON DELETE CASCADE`

// childModels are the tables keyed on player_id, in creation order.
var childModels = []struct {
	table string
	model any
}{
	{dataset.TableSessions, (*dataset.Session)(nil)},
	{dataset.TableBets, (*dataset.Bet)(nil)},
	{dataset.TableDeposits, (*dataset.Deposit)(nil)},
	{dataset.TableWithdrawals, (*dataset.Withdrawal)(nil)},
	{dataset.TableBonuses, (*dataset.Bonus)(nil)},
	{dataset.TableFeatures, (*dataset.PlayerFeatures)(nil)},
}

// CreateTables creates the players table, its children with their foreign
// keys and the lookup indexes. Existing tables are kept.
func (db *DB) CreateTables(ctx context.Context) error {
	if _, err := db.bun.NewCreateTable().
		Model((*dataset.Player)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create table %s: %w", dataset.TablePlayers, err)
	}

	for _, child := range childModels {
		if _, err := db.bun.NewCreateTable().
			Model(child.model).
			IfNotExists().
			ForeignKey(playerReference).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table %s: %w", child.table, err)
		}

		if _, err := db.bun.NewCreateIndex().
			Model(child.model).
			Index(fmt.Sprintf("idx_%s_player_id", child.table)).
			Column("player_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to index %s: %w", child.table, err)
		}
	}

	if _, err := db.bun.NewCreateIndex().
		Model((*dataset.PlayerFeatures)(nil)).
		Unique().
		Index("uq_player_features_player_date_cohort").
		Column("player_id", "feature_date", "cohort").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to create unique index on %s: %w", dataset.TableFeatures, err)
	}

	logrus.Infof("schema ready on %s", db.driver)
	return nil
}

// DropTables drops every table, children first.
func (db *DB) DropTables(ctx context.Context) error {
	for i := len(childModels) - 1; i >= 0; i-- {
		child := childModels[i]
		if _, err := db.bun.NewDropTable().Model(child.model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", child.table, err)
		}
	}
	if _, err := db.bun.NewDropTable().Model((*dataset.Player)(nil)).IfExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", dataset.TablePlayers, err)
	}

	logrus.Infof("schema dropped on %s", db.driver)
	return nil
}
