// Package discovery finds competitor storefronts for an extracted brand
// profile using web search plus outbound-link analysis, and runs the
// batch jobs that scrape the discovered competitors.
package discovery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/storefront-cli/internal/fetch"
	"github.com/sells-group/storefront-cli/pkg/search"
)

// queryTemplates are the search phrasings tried in order. %s is the
// brand name.
var queryTemplates = []string{
	"%s competitors",
	"%s alternative brands",
	"brands like %s",
	"similar to %s",
}

// comparisonVocab marks anchor text that suggests the link target is a
// rival brand rather than ordinary navigation.
var comparisonVocab = []string{
	"similar", "alternative", "compare", "vs", "versus",
	"competitor", "rival", "other brands",
}

// maxResultsPerQuery caps how many filtered hits one search query may
// contribute before moving to the next phrasing.
const maxResultsPerQuery = 10

// probeConcurrency bounds parallel reachability checks.
const probeConcurrency = 4

// Options configures a Finder.
type Options struct {
	MaxCompetitors int           // final cap on returned URLs
	QueryInterval  time.Duration // pacing between search queries
	DomainDenylist []string      // extra domains to reject as candidates
}

// Finder discovers competitor storefront URLs.
type Finder struct {
	searcher search.Client
	fetcher  *fetch.Client
	limiter  *rate.Limiter
	maxHits  int
	deny     []string
}

// NewFinder creates a Finder. MaxCompetitors defaults to 5 and the query
// interval to one second.
func NewFinder(searcher search.Client, fetcher *fetch.Client, opts Options) *Finder {
	if opts.MaxCompetitors <= 0 {
		opts.MaxCompetitors = 5
	}
	if opts.QueryInterval <= 0 {
		opts.QueryInterval = time.Second
	}
	return &Finder{
		searcher: searcher,
		fetcher:  fetcher,
		limiter:  rate.NewLimiter(rate.Every(opts.QueryInterval), 1),
		maxHits:  opts.MaxCompetitors,
		deny:     opts.DomainDenylist,
	}
}

// Find returns up to MaxCompetitors validated competitor URLs for the
// given brand. Search queries run first; once they have produced enough
// raw candidates the remaining phrasings are skipped. The brand's own
// homepage is then scanned for outbound links with comparison language.
// Candidates are filtered, probed for reachability, and de-duplicated by
// domain preserving discovery order. A brand with an empty name falls
// back to its domain for query construction.
func (f *Finder) Find(ctx context.Context, brandName, websiteURL string) ([]string, error) {
	if brandName == "" {
		brandName = domainOf(websiteURL)
	}

	var raw []string
	for _, tmpl := range queryTemplates {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		query := fmt.Sprintf(tmpl, brandName)

		hits, err := f.searchCompetitors(ctx, query, websiteURL)
		if err != nil {
			zap.L().Warn("search query failed",
				zap.String("query", query),
				zap.Error(err))
			continue
		}
		raw = append(raw, hits...)
		if len(raw) >= f.maxHits {
			break
		}
	}

	raw = append(raw, f.outboundMentions(ctx, websiteURL)...)

	validated := f.validate(ctx, raw)

	seen := make(map[string]bool)
	var out []string
	for _, u := range validated {
		domain := domainOf(u)
		if domain == "" || seen[domain] {
			continue
		}
		seen[domain] = true
		out = append(out, u)
		if len(out) >= f.maxHits {
			break
		}
	}

	zap.L().Info("competitor discovery finished",
		zap.String("brand", brandName),
		zap.Int("candidates", len(raw)),
		zap.Int("competitors", len(out)))
	return out, nil
}

func (f *Finder) searchCompetitors(ctx context.Context, query, originalURL string) ([]string, error) {
	results, err := f.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	var hits []string
	for _, r := range results {
		u, ok := normalizeCandidate(r.URL)
		if !ok {
			continue
		}
		if isPotentialCompetitor(u, originalURL, f.deny) {
			hits = append(hits, u)
		}
		if len(hits) >= maxResultsPerQuery {
			break
		}
	}
	return hits, nil
}

// outboundMentions scans the brand's homepage for external links whose
// anchor text uses comparison language. Failures here are non-fatal; the
// search results stand on their own.
func (f *Finder) outboundMentions(ctx context.Context, websiteURL string) []string {
	doc, err := f.fetcher.Document(ctx, websiteURL)
	if err != nil {
		zap.L().Debug("homepage scan skipped", zap.String("url", websiteURL), zap.Error(err))
		return nil
	}

	var hits []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if !isPotentialCompetitor(href, websiteURL, f.deny) {
			return
		}
		text := strings.ToLower(s.Text())
		for _, vocab := range comparisonVocab {
			if strings.Contains(text, vocab) {
				hits = append(hits, href)
				return
			}
		}
	})
	return hits
}

// validate probes each candidate and keeps the reachable ones, preserving
// input order.
func (f *Finder) validate(ctx context.Context, candidates []string) []string {
	reachable := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(probeConcurrency)
	for i, u := range candidates {
		g.Go(func() error {
			reachable[i] = f.fetcher.Probe(gctx, u) == fetch.Reachable
			return nil
		})
	}
	_ = g.Wait()

	var out []string
	for i, u := range candidates {
		if reachable[i] {
			out = append(out, u)
		}
	}
	return out
}
