// Package store persists brand profiles, competitor relations, and
// analysis jobs. Two backends implement the same interface: SQLite for
// local single-binary use and Postgres for shared deployments.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/storefront-cli/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = eris.New("store: not found")

// Store defines the persistence interface for brand profiles.
//
// SaveProfile upserts by website URL: saving a profile for a URL that
// already has one replaces the stored profile and all of its child
// collections. GetProfileByURL returns (nil, nil) when no profile
// exists for the URL; the by-ID getters return ErrNotFound.
type Store interface {
	// Profiles
	SaveProfile(ctx context.Context, p *model.Profile) (*model.Profile, error)
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	GetProfileByURL(ctx context.Context, websiteURL string) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]model.ProfileSummary, error)

	// Competitor relations
	AddCompetitor(ctx context.Context, profileID, competitorID, discoveredVia string) error
	ListCompetitors(ctx context.Context, profileID string) ([]model.ProfileSummary, error)

	// Analysis jobs
	CreateJob(ctx context.Context, profileID string) (*model.AnalysisJob, error)
	UpdateJobStatus(ctx context.Context, jobID string, status model.JobStatus, competitorsFound int, errMsg string) error
	GetJob(ctx context.Context, jobID string) (*model.AnalysisJob, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
