package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	competitorsURL   string
	competitorsBrand string
	competitorsMax   int
)

var competitorsCmd = &cobra.Command{
	Use:   "competitors",
	Short: "Discover competitor storefront URLs for a brand",
	Long:  "Runs web-search discovery only; nothing is scraped or persisted. Use the batch command to scrape and store discovered competitors.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		maxHits := competitorsMax
		if maxHits <= 0 {
			maxHits = cfg.Discovery.MaxCompetitors
		}
		finder := initFinderWithMax(initFetcher(), maxHits)

		urls, err := finder.Find(ctx, competitorsBrand, competitorsURL)
		if err != nil {
			return eris.Wrap(err, "find competitors")
		}

		return printJSON(map[string]any{
			"website_url": competitorsURL,
			"competitors": urls,
		})
	},
}

func init() {
	competitorsCmd.Flags().StringVar(&competitorsURL, "url", "", "brand storefront URL (required)")
	competitorsCmd.Flags().StringVar(&competitorsBrand, "brand", "", "brand name (defaults to the URL's domain)")
	competitorsCmd.Flags().IntVar(&competitorsMax, "max", 0, "maximum competitors to return (default from config)")
	_ = competitorsCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(competitorsCmd)
}
