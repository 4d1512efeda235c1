package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/storefront-cli/internal/discovery"
	"github.com/sells-group/storefront-cli/internal/extract"
	"github.com/sells-group/storefront-cli/internal/fetch"
	"github.com/sells-group/storefront-cli/internal/store"
	"github.com/sells-group/storefront-cli/pkg/search"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "storefront.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initFetcher() *fetch.Client {
	return fetch.New(fetch.Options{
		Timeout:      time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		ProbeTimeout: time.Duration(cfg.Fetch.ProbeTimeoutSecs) * time.Second,
		UserAgent:    cfg.Fetch.UserAgent,
		MaxAttempts:  cfg.Fetch.MaxAttempts,
	})
}

// buildHeuristics applies configured caps on top of the built-in
// selector and keyword tables.
func buildHeuristics() extract.Heuristics {
	h := extract.DefaultHeuristics()
	if cfg.Extract.MaxCatalogPages > 0 {
		h.MaxCatalogPages = cfg.Extract.MaxCatalogPages
	}
	if cfg.Extract.MaxHeroProducts > 0 {
		h.MaxHeroProducts = cfg.Extract.MaxHeroProducts
	}
	if cfg.Extract.MaxFAQs > 0 {
		h.MaxFAQs = cfg.Extract.MaxFAQs
	}
	if cfg.Extract.MaxImportantLinks > 0 {
		h.MaxLinks = cfg.Extract.MaxImportantLinks
	}
	if cfg.Extract.PolicyMaxChars > 0 {
		h.PolicyMaxChars = cfg.Extract.PolicyMaxChars
	}
	if cfg.Extract.AboutMaxChars > 0 {
		h.AboutMaxChars = cfg.Extract.AboutMaxChars
	}
	return h
}

func initExtractor(fetcher *fetch.Client) *extract.Extractor {
	return extract.New(fetcher, buildHeuristics())
}

func initFinder(fetcher *fetch.Client) *discovery.Finder {
	return initFinderWithMax(fetcher, cfg.Discovery.MaxCompetitors)
}

func initFinderWithMax(fetcher *fetch.Client, maxCompetitors int) *discovery.Finder {
	searcher := search.NewClient(
		search.WithBaseURL(cfg.Discovery.SearchBaseURL),
		search.WithUserAgent(cfg.Fetch.UserAgent),
	)
	return discovery.NewFinder(searcher, fetcher, discovery.Options{
		MaxCompetitors: maxCompetitors,
		QueryInterval:  time.Duration(cfg.Discovery.QueryIntervalMs) * time.Millisecond,
		DomainDenylist: cfg.Discovery.DomainDenylist,
	})
}

func initAnalyzer(st store.Store, fetcher *fetch.Client) *discovery.Analyzer {
	return discovery.NewAnalyzer(st, initFinder(fetcher), initExtractor(fetcher), discovery.BatchOptions{
		MaxCompetitors: cfg.Discovery.BatchMaxCompetitors,
		ScrapeInterval: time.Duration(cfg.Discovery.ScrapeIntervalMs) * time.Millisecond,
	})
}
