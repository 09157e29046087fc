// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package cmd

import (
	"fmt"
	"sort"

	"github.com/AccelByte/extend-churn-dataset/internal/app"
	"github.com/AccelByte/extend-churn-dataset/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var generateFlags struct {
	seed       uint64
	players    int
	outputDir  string
	configPath string
	reference  string
	dryRun     bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one dataset and write it to the configured sinks",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyGenerateFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx := cmd.Context()
		application, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer application.Shutdown(ctx)

		if generateFlags.dryRun {
			for i, step := range application.Plan().Steps() {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, step)
			}
			return nil
		}

		result, err := application.Run(ctx)
		if err != nil {
			return err
		}

		counts := result.Output.RowCounts()
		tables := make([]string, 0, len(counts))
		for table := range counts {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		for _, table := range tables {
			logrus.Infof("%s: %d rows", table, counts[table])
		}
		logrus.Infof("run %s finished in %v", result.RunID, result.Duration)
		return nil
	},
}

// applyGenerateFlags overrides environment settings with the flags the user set.
func applyGenerateFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		c.Seed = generateFlags.seed
	}
	if flags.Changed("players") {
		c.Players = generateFlags.players
	}
	if flags.Changed("output-dir") {
		c.OutputDir = generateFlags.outputDir
	}
	if flags.Changed("config") {
		c.ConfigPath = generateFlags.configPath
	}
	if flags.Changed("reference-time") {
		c.ReferenceTime = generateFlags.reference
	}
}

func init() {
	flags := generateCmd.Flags()
	flags.Uint64Var(&generateFlags.seed, "seed", 42, "random seed, overrides SEED")
	flags.IntVar(&generateFlags.players, "players", 4000, "number of players, overrides PLAYERS")
	flags.StringVar(&generateFlags.outputDir, "output-dir", "./data", "csv output directory, overrides OUTPUT_DIR")
	flags.StringVar(&generateFlags.configPath, "config", "config/pipeline.yaml", "pipeline config file, overrides CONFIG_PATH")
	flags.StringVar(&generateFlags.reference, "reference-time", "", "end of the history window (RFC 3339), overrides REFERENCE_TIME")
	flags.BoolVar(&generateFlags.dryRun, "dry-run", false, "print the run steps without generating")

	rootCmd.AddCommand(generateCmd)
}
