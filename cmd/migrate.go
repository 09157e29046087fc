// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package cmd

import (
	"github.com/AccelByte/extend-churn-dataset/internal/app"
	"github.com/AccelByte/extend-churn-dataset/pkg/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the relational schema of the dataset tables",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create the dataset tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(db *storage.DB) error {
			if err := db.CreateTables(cmd.Context()); err != nil {
				return err
			}
			logrus.Infof("schema created on %s", db.Driver())
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Drop the dataset tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(db *storage.DB) error {
			if err := db.DropTables(cmd.Context()); err != nil {
				return err
			}
			logrus.Infof("schema dropped on %s", db.Driver())
			return nil
		})
	},
}

func withDatabase(cmd *cobra.Command, fn func(db *storage.DB) error) error {
	db, err := app.OpenDatabase(cmd.Context(), cfg)
	if err != nil {
		logrus.Errorf("failed to connect to database: %v", err)
		return err
	}
	defer db.Close()

	return fn(db)
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}
