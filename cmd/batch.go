package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var batchProfileID string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a competitor analysis batch for a stored profile",
	Long:  "Discovers competitors for the profile, scrapes each one (reusing stored profiles when present), and records the relations under a tracked job.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		analyzer := initAnalyzer(st, initFetcher())

		result, err := analyzer.Run(ctx, batchProfileID)
		if err != nil {
			return eris.Wrap(err, "run batch")
		}

		return printJSON(result)
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchProfileID, "profile-id", "", "stored profile ID (required)")
	_ = batchCmd.MarkFlagRequired("profile-id")
	rootCmd.AddCommand(batchCmd)
}
