package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<div class="result">
  <h2 class="result__title"><a href="https://glowrival.com/shop">Glow Rival - Skincare Shop</a></h2>
  <a class="result__url" href="/l/?uddg=ignored"> https://glowrival.com/shop </a>
</div>
<div class="result">
  <h2 class="result__title"><a href="https://dermstore.example.com">Derm Store</a></h2>
  <a class="result__url" href="https://dermstore.example.com"></a>
</div>
<div class="result">
  <h2 class="result__title">No link at all</h2>
</div>
</body></html>`

func TestSearch(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(resultsPage))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL), WithUserAgent("test-agent"))

	results, err := c.Search(context.Background(), "glow beauty competitors")
	require.NoError(t, err)

	assert.Equal(t, "/html/", gotPath)
	assert.Equal(t, "glow beauty competitors", gotQuery)
	assert.Equal(t, "test-agent", gotUA)

	// The third block has no result__url anchor and is skipped.
	require.Len(t, results, 2)
	assert.Equal(t, "https://glowrival.com/shop", results[0].URL)
	assert.Equal(t, "Glow Rival - Skincare Shop", results[0].Title)
	// Empty anchor text falls back to the href attribute.
	assert.Equal(t, "https://dermstore.example.com", results[1].URL)
}

func TestSearch_NoResults(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><body><div class="no-results">Nothing</div></body></html>`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL))

	results, err := c.Search(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(WithBaseURL(srv.URL))

	_, err := c.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSearch_Unreachable(t *testing.T) {
	t.Parallel()

	c := NewClient(WithBaseURL("http://127.0.0.1:1"))

	_, err := c.Search(context.Background(), "anything")
	require.Error(t, err)
}
