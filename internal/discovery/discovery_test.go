package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/storefront-cli/internal/fetch"
	"github.com/sells-group/storefront-cli/pkg/search"
)

// stubSearcher returns canned results and counts queries.
type stubSearcher struct {
	results []search.Result
	err     error
	queries []string
}

func (s *stubSearcher) Search(_ context.Context, query string) ([]search.Result, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

// newCandidateSite serves a source homepage plus reachable candidate
// paths. The server listens on 127.0.0.1; tests address the source site
// as localhost so candidate URLs count as a different domain.
func newCandidateSite(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func localhostURL(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	return strings.Replace(srv.URL, "127.0.0.1", "localhost", 1)
}

func newTestFinder(searcher search.Client, opts Options) *Finder {
	if opts.QueryInterval == 0 {
		opts.QueryInterval = time.Millisecond
	}
	return NewFinder(searcher, fetch.New(fetch.Options{MaxAttempts: 1}), opts)
}

func TestFinder_Find(t *testing.T) {
	t.Parallel()

	srv := newCandidateSite(t, map[string]string{
		"/":     `<html><body></body></html>`,
		"/shop": "ok",
	})
	candidate := srv.URL + "/shop"

	searcher := &stubSearcher{results: []search.Result{
		{Title: "Rival", URL: candidate},
		{Title: "Rival again", URL: candidate},
		{Title: "Not a store", URL: "https://example.org"},
	}}

	f := newTestFinder(searcher, Options{MaxCompetitors: 5})

	got, err := f.Find(context.Background(), "Glow Beauty", localhostURL(t, srv))
	require.NoError(t, err)

	// Duplicates collapse by domain; the non-store result is filtered out.
	assert.Equal(t, []string{candidate}, got)
	// All four query phrasings ran since the cap was never reached.
	require.Len(t, searcher.queries, 4)
	assert.Equal(t, "Glow Beauty competitors", searcher.queries[0])
	assert.Equal(t, "similar to Glow Beauty", searcher.queries[3])
}

func TestFinder_StopsQueryingAtCap(t *testing.T) {
	t.Parallel()

	srv := newCandidateSite(t, map[string]string{
		"/":     `<html><body></body></html>`,
		"/shop": "ok",
	})

	searcher := &stubSearcher{results: []search.Result{
		{URL: srv.URL + "/shop"},
	}}

	f := newTestFinder(searcher, Options{MaxCompetitors: 1})

	got, err := f.Find(context.Background(), "Acme", localhostURL(t, srv))
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Len(t, searcher.queries, 1)
}

func TestFinder_UnreachableCandidatesDropped(t *testing.T) {
	t.Parallel()

	srv := newCandidateSite(t, map[string]string{
		"/": `<html><body></body></html>`,
	})

	// The candidate path 404s, so the probe reports unreachable.
	searcher := &stubSearcher{results: []search.Result{
		{URL: srv.URL + "/shop"},
	}}

	f := newTestFinder(searcher, Options{MaxCompetitors: 5})

	got, err := f.Find(context.Background(), "Acme", localhostURL(t, srv))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFinder_OutboundMentions(t *testing.T) {
	t.Parallel()

	srv := newCandidateSite(t, map[string]string{
		"/outbound-shop": "ok",
	})
	pages := map[string]string{
		"/outbound-shop": "ok",
		"/": `<html><body>
			<a href="` + srv.URL + `/outbound-shop">similar brands we love</a>
			<a href="` + srv.URL + `/outbound-shop">just a link</a>
		</body></html>`,
	}
	source := newCandidateSite(t, pages)

	searcher := &stubSearcher{err: eris.New("search down")}

	f := newTestFinder(searcher, Options{MaxCompetitors: 5})

	got, err := f.Find(context.Background(), "Acme", localhostURL(t, source))
	require.NoError(t, err)

	// Search failed for every phrasing; the homepage scan still found the
	// comparison-language link.
	assert.Equal(t, []string{srv.URL + "/outbound-shop"}, got)
}

func TestFinder_BrandFallsBackToDomain(t *testing.T) {
	t.Parallel()

	searcher := &stubSearcher{}
	f := newTestFinder(searcher, Options{MaxCompetitors: 5})

	_, err := f.Find(context.Background(), "", "http://localhost:1")
	require.NoError(t, err)
	require.NotEmpty(t, searcher.queries)
	assert.Equal(t, "localhost competitors", searcher.queries[0])
}
