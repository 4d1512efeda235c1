package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var brandsID string

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List stored brand profiles, or show one in full",
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

		if brandsID != "" {
			profile, err := st.GetProfile(ctx, brandsID)
			if err != nil {
				return eris.Wrap(err, "get profile")
			}
			return printJSON(profile)
		}

		summaries, err := st.ListProfiles(ctx)
		if err != nil {
			return eris.Wrap(err, "list profiles")
		}
		return printJSON(summaries)
	},
}

func init() {
	brandsCmd.Flags().StringVar(&brandsID, "id", "", "show the full profile with this ID")
	rootCmd.AddCommand(brandsCmd)
}
