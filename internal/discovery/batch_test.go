package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/storefront-cli/internal/fetch"
	"github.com/sells-group/storefront-cli/internal/model"
	"github.com/sells-group/storefront-cli/pkg/search"
)

// stubStore records job transitions and competitor relations in memory.
type stubStore struct {
	profiles      map[string]*model.Profile
	profilesByURL map[string]*model.Profile
	saveErr       error

	jobs        []*model.AnalysisJob
	transitions []model.JobStatus
	foundCounts []int
	relations   [][2]string
}

func newStubStore() *stubStore {
	return &stubStore{
		profiles:      map[string]*model.Profile{},
		profilesByURL: map[string]*model.Profile{},
	}
}

func (s *stubStore) GetProfile(_ context.Context, id string) (*model.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, eris.Errorf("profile not found: %s", id)
	}
	return p, nil
}

func (s *stubStore) GetProfileByURL(_ context.Context, u string) (*model.Profile, error) {
	return s.profilesByURL[u], nil
}

func (s *stubStore) SaveProfile(_ context.Context, p *model.Profile) (*model.Profile, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	if p.ID == "" {
		p.ID = "saved-" + p.WebsiteURL
	}
	s.profiles[p.ID] = p
	s.profilesByURL[p.WebsiteURL] = p
	return p, nil
}

func (s *stubStore) AddCompetitor(_ context.Context, profileID, competitorID, _ string) error {
	s.relations = append(s.relations, [2]string{profileID, competitorID})
	return nil
}

func (s *stubStore) CreateJob(_ context.Context, profileID string) (*model.AnalysisJob, error) {
	job := &model.AnalysisJob{
		ID:        "job-1",
		ProfileID: profileID,
		Status:    model.JobStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	s.jobs = append(s.jobs, job)
	return job, nil
}

func (s *stubStore) UpdateJobStatus(_ context.Context, _ string, status model.JobStatus, found int, _ string) error {
	s.transitions = append(s.transitions, status)
	s.foundCounts = append(s.foundCounts, found)
	return nil
}

// stubExtractor returns a fixed profile for any URL.
type stubExtractor struct {
	err error
}

func (e *stubExtractor) Profile(_ context.Context, rawURL string) (*model.Profile, error) {
	if e.err != nil {
		return nil, e.err
	}
	return &model.Profile{
		WebsiteURL: rawURL,
		BrandName:  "Scraped",
		Status:     model.StatusSuccess,
	}, nil
}

func newTestAnalyzer(st Store, searcher search.Client) *Analyzer {
	finder := NewFinder(searcher, fetch.New(fetch.Options{MaxAttempts: 1}), Options{
		MaxCompetitors: 5,
		QueryInterval:  time.Millisecond,
	})
	return NewAnalyzer(st, finder, &stubExtractor{}, BatchOptions{
		MaxCompetitors: 3,
		ScrapeInterval: time.Millisecond,
	})
}

func TestAnalyzer_Run_NoCompetitors(t *testing.T) {
	t.Parallel()

	st := newStubStore()
	st.profiles["p1"] = &model.Profile{ID: "p1", BrandName: "Acme", WebsiteURL: "http://localhost:1"}

	a := newTestAnalyzer(st, &stubSearcher{})

	result, err := a.Run(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, "job-1", result.JobID)
	assert.Equal(t, model.JobStatusCompleted, result.Status)
	assert.Equal(t, 0, result.CompetitorsFound)
	assert.Equal(t, []model.JobStatus{model.JobStatusRunning, model.JobStatusCompleted}, st.transitions)
	assert.Equal(t, []int{0, 0}, st.foundCounts)
}

func TestAnalyzer_Run_ScrapesAndRecords(t *testing.T) {
	t.Parallel()

	srv := newCandidateSite(t, map[string]string{
		"/":     `<html><body></body></html>`,
		"/shop": "ok",
	})
	candidate := srv.URL + "/shop"

	st := newStubStore()
	st.profiles["p1"] = &model.Profile{ID: "p1", BrandName: "Acme", WebsiteURL: localhostURL(t, srv)}

	a := newTestAnalyzer(st, &stubSearcher{results: []search.Result{{URL: candidate}}})

	result, err := a.Run(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.CompetitorsFound)
	require.Len(t, st.relations, 1)
	assert.Equal(t, "p1", st.relations[0][0])
	assert.Equal(t, "saved-"+candidate, st.relations[0][1])
	assert.Equal(t, []model.JobStatus{model.JobStatusRunning, model.JobStatusCompleted}, st.transitions)
}

func TestAnalyzer_Run_ReusesStoredProfile(t *testing.T) {
	t.Parallel()

	srv := newCandidateSite(t, map[string]string{
		"/":     `<html><body></body></html>`,
		"/shop": "ok",
	})
	candidate := srv.URL + "/shop"

	st := newStubStore()
	st.profiles["p1"] = &model.Profile{ID: "p1", BrandName: "Acme", WebsiteURL: localhostURL(t, srv)}
	st.profilesByURL[candidate] = &model.Profile{ID: "existing", WebsiteURL: candidate}

	a := newTestAnalyzer(st, &stubSearcher{results: []search.Result{{URL: candidate}}})

	result, err := a.Run(context.Background(), "p1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.CompetitorsFound)
	require.Len(t, st.relations, 1)
	assert.Equal(t, "existing", st.relations[0][1])
}

func TestAnalyzer_Run_CandidateFailureSkipped(t *testing.T) {
	t.Parallel()

	srv := newCandidateSite(t, map[string]string{
		"/":     `<html><body></body></html>`,
		"/shop": "ok",
	})
	candidate := srv.URL + "/shop"

	st := newStubStore()
	st.profiles["p1"] = &model.Profile{ID: "p1", BrandName: "Acme", WebsiteURL: localhostURL(t, srv)}
	st.saveErr = eris.New("disk full")

	a := newTestAnalyzer(st, &stubSearcher{results: []search.Result{{URL: candidate}}})

	result, err := a.Run(context.Background(), "p1")
	require.NoError(t, err)

	// The competitor could not be persisted, but the batch still completes.
	assert.Equal(t, 0, result.CompetitorsFound)
	assert.Empty(t, st.relations)
	assert.Equal(t, []model.JobStatus{model.JobStatusRunning, model.JobStatusCompleted}, st.transitions)
}

func TestAnalyzer_Run_MarksJobFailed(t *testing.T) {
	t.Parallel()

	st := newStubStore()
	st.profiles["p1"] = &model.Profile{ID: "p1", BrandName: "Acme", WebsiteURL: "http://localhost:1"}

	a := newTestAnalyzer(st, &stubSearcher{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Run(ctx, "p1")
	require.Error(t, err)
	assert.Equal(t, []model.JobStatus{model.JobStatusRunning, model.JobStatusFailed}, st.transitions)
}

func TestAnalyzer_Run_UnknownProfile(t *testing.T) {
	t.Parallel()

	a := newTestAnalyzer(newStubStore(), &stubSearcher{})

	_, err := a.Run(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}
