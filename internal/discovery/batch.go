package discovery

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/storefront-cli/internal/model"
)

// Store defines the persistence operations the batch analyzer needs.
type Store interface {
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	GetProfileByURL(ctx context.Context, websiteURL string) (*model.Profile, error)
	SaveProfile(ctx context.Context, p *model.Profile) (*model.Profile, error)
	AddCompetitor(ctx context.Context, profileID, competitorID, discoveredVia string) error
	CreateJob(ctx context.Context, profileID string) (*model.AnalysisJob, error)
	UpdateJobStatus(ctx context.Context, jobID string, status model.JobStatus, competitorsFound int, errMsg string) error
}

// ProfileExtractor extracts a brand profile from a live storefront.
type ProfileExtractor interface {
	Profile(ctx context.Context, rawURL string) (*model.Profile, error)
}

// BatchOptions configures an Analyzer.
type BatchOptions struct {
	MaxCompetitors int           // competitors scraped per batch
	ScrapeInterval time.Duration // pacing between competitor scrapes
}

// Analyzer runs competitor analysis batches: discover URLs, scrape each
// competitor (or reuse a stored profile), and record the relations under
// a tracked job.
type Analyzer struct {
	store     Store
	finder    *Finder
	extractor ProfileExtractor
	limiter   *rate.Limiter
	maxHits   int
}

// NewAnalyzer creates an Analyzer. MaxCompetitors defaults to 3 and the
// scrape interval to two seconds.
func NewAnalyzer(store Store, finder *Finder, extractor ProfileExtractor, opts BatchOptions) *Analyzer {
	if opts.MaxCompetitors <= 0 {
		opts.MaxCompetitors = 3
	}
	if opts.ScrapeInterval <= 0 {
		opts.ScrapeInterval = 2 * time.Second
	}
	return &Analyzer{
		store:     store,
		finder:    finder,
		extractor: extractor,
		limiter:   rate.NewLimiter(rate.Every(opts.ScrapeInterval), 1),
		maxHits:   opts.MaxCompetitors,
	}
}

// Run executes one competitor analysis batch for a stored profile.
//
// The job moves pending -> running -> completed or failed; per-candidate
// failures are logged and skipped without affecting the job status. The
// batch fails only when the profile cannot be loaded or discovery itself
// errors.
func (a *Analyzer) Run(ctx context.Context, profileID string) (*model.BatchResult, error) {
	profile, err := a.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, eris.Wrapf(err, "discovery: load profile %s", profileID)
	}

	job, err := a.store.CreateJob(ctx, profileID)
	if err != nil {
		return nil, eris.Wrap(err, "discovery: create job")
	}

	result, runErr := a.runJob(ctx, job, profile)
	if runErr != nil {
		if err := a.store.UpdateJobStatus(ctx, job.ID, model.JobStatusFailed, 0, runErr.Error()); err != nil {
			zap.L().Error("mark job failed", zap.String("job_id", job.ID), zap.Error(err))
		}
		return nil, runErr
	}
	return result, nil
}

func (a *Analyzer) runJob(ctx context.Context, job *model.AnalysisJob, profile *model.Profile) (*model.BatchResult, error) {
	if err := a.store.UpdateJobStatus(ctx, job.ID, model.JobStatusRunning, 0, ""); err != nil {
		return nil, eris.Wrap(err, "discovery: mark job running")
	}

	urls, err := a.finder.Find(ctx, profile.BrandName, profile.WebsiteURL)
	if err != nil {
		return nil, eris.Wrap(err, "discovery: find competitors")
	}
	if len(urls) > a.maxHits {
		urls = urls[:a.maxHits]
	}

	found := 0
	for _, u := range urls {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		competitor, err := a.profileFor(ctx, u)
		if err != nil {
			zap.L().Warn("competitor scrape failed",
				zap.String("url", u),
				zap.Error(err))
			continue
		}
		if err := a.store.AddCompetitor(ctx, profile.ID, competitor.ID, model.DiscoveredViaWebSearch); err != nil {
			zap.L().Warn("record competitor relation failed",
				zap.String("competitor_id", competitor.ID),
				zap.Error(err))
			continue
		}
		found++
	}

	if err := a.store.UpdateJobStatus(ctx, job.ID, model.JobStatusCompleted, found, ""); err != nil {
		return nil, eris.Wrap(err, "discovery: mark job completed")
	}

	zap.L().Info("competitor batch finished",
		zap.String("job_id", job.ID),
		zap.String("profile_id", profile.ID),
		zap.Int("competitors_found", found))

	return &model.BatchResult{
		JobID:            job.ID,
		Status:           model.JobStatusCompleted,
		CompetitorsFound: found,
	}, nil
}

// profileFor returns the stored profile for a competitor URL, scraping
// and saving it when no prior extraction exists.
func (a *Analyzer) profileFor(ctx context.Context, rawURL string) (*model.Profile, error) {
	existing, err := a.store.GetProfileByURL(ctx, rawURL)
	if err == nil && existing != nil {
		return existing, nil
	}

	profile, err := a.extractor.Profile(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return a.store.SaveProfile(ctx, profile)
}
