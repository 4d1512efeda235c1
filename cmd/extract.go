package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	extractURL    string
	extractNoSave bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a brand profile from a storefront URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		fetcher := initFetcher()
		extractor := initExtractor(fetcher)

		profile, err := extractor.Profile(ctx, extractURL)
		if err != nil {
			return eris.Wrap(err, "extract profile")
		}

		if !extractNoSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
			if profile, err = st.SaveProfile(ctx, profile); err != nil {
				return eris.Wrap(err, "save profile")
			}
		}

		zap.L().Info("extraction finished",
			zap.String("url", profile.WebsiteURL),
			zap.String("brand", profile.BrandName),
			zap.String("status", string(profile.Status)),
			zap.Int("products", len(profile.Catalog)))

		return printJSON(profile)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	extractCmd.Flags().StringVar(&extractURL, "url", "", "storefront URL (required)")
	extractCmd.Flags().BoolVar(&extractNoSave, "no-save", false, "print only, skip persistence")
	_ = extractCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(extractCmd)
}
