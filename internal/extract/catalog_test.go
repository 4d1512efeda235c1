package extract

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/storefront-cli/internal/model"
)

func TestCatalog_Pagination(t *testing.T) {
	t.Parallel()

	// Three full pages plus a short final page.
	srv := newTestSite(t, map[string]string{
		"/products.json?page=1&limit=250": catalogJSON(1, 250),
		"/products.json?page=2&limit=250": catalogJSON(251, 250),
		"/products.json?page=3&limit=250": catalogJSON(501, 250),
		"/products.json?page=4&limit=250": catalogJSON(751, 10),
	})

	e := newTestExtractor(DefaultHeuristics())
	products := e.catalog(context.Background(), srv.URL)

	require.Len(t, products, 760)
	assert.Equal(t, int64(1), products[0].ExternalID)
	assert.Equal(t, int64(760), products[759].ExternalID)
}

func TestCatalog_EndpointAbsent(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t, map[string]string{})

	e := newTestExtractor(DefaultHeuristics())
	assert.Empty(t, e.catalog(context.Background(), srv.URL))
}

func TestCatalog_EmptyFirstPage(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t, map[string]string{
		"/products.json?page=1&limit=250": `{"products":[]}`,
	})

	e := newTestExtractor(DefaultHeuristics())
	assert.Empty(t, e.catalog(context.Background(), srv.URL))
}

func TestCatalog_PageCeiling(t *testing.T) {
	t.Parallel()

	// Every page is full; the ceiling must stop the paginator.
	srv := newTestSite(t, map[string]string{
		"/products.json?page=1&limit=250": catalogJSON(1, 250),
		"/products.json?page=2&limit=250": catalogJSON(251, 250),
		"/products.json?page=3&limit=250": catalogJSON(501, 250),
	})

	h := DefaultHeuristics()
	h.MaxCatalogPages = 2

	e := newTestExtractor(h)
	products := e.catalog(context.Background(), srv.URL)
	assert.Len(t, products, 500)
}

func TestCatalog_SkipsMalformedProducts(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t, map[string]string{
		"/products.json?page=1&limit=250": `{"products":[
			{"id":1,"title":"Good","variants":[{"price":"5.00","available":true}]},
			{"id":2,"title":"   "},
			{"id":3,"title":"Also Good"}
		]}`,
	})

	e := newTestExtractor(DefaultHeuristics())
	products := e.catalog(context.Background(), srv.URL)

	require.Len(t, products, 2)
	assert.Equal(t, "Good", products[0].Title)
	assert.Equal(t, "Also Good", products[1].Title)
}

func TestParseListingProduct(t *testing.T) {
	t.Parallel()

	t.Run("full product", func(t *testing.T) {
		t.Parallel()
		raw := json.RawMessage(`{
			"id": 42,
			"title": "Linen Shirt",
			"handle": "linen-shirt",
			"vendor": "Acme",
			"product_type": "Shirt",
			"tags": ["summer", "linen"],
			"body_html": "  A breezy shirt.  ",
			"images": [{"src": "https://cdn.example.com/a.jpg"}, {"src": ""}],
			"variants": [
				{"price": "49.99", "compare_at_price": "59.99", "available": false},
				{"price": "52.00", "available": true}
			]
		}`)

		p, err := parseListingProduct(raw)
		require.NoError(t, err)
		assert.Equal(t, int64(42), p.ExternalID)
		assert.Equal(t, "Linen Shirt", p.Title)
		assert.Equal(t, []string{"summer", "linen"}, p.Tags)
		assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, p.Images)
		assert.Equal(t, "49.99", p.Price)
		assert.Equal(t, "59.99", p.CompareAtPrice)
		assert.True(t, p.Available)
		assert.Equal(t, "A breezy shirt.", p.Description)
	})

	t.Run("no variants", func(t *testing.T) {
		t.Parallel()
		p, err := parseListingProduct(json.RawMessage(`{"id":1,"title":"Bare","variants":[]}`))
		require.NoError(t, err)
		assert.False(t, p.Available)
		assert.Empty(t, p.Price)
		assert.Empty(t, p.CompareAtPrice)
	})

	t.Run("numeric price", func(t *testing.T) {
		t.Parallel()
		p, err := parseListingProduct(json.RawMessage(`{"id":1,"title":"Num","variants":[{"price":19.5,"available":true}]}`))
		require.NoError(t, err)
		assert.Equal(t, "19.5", p.Price)
	})

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()
		_, err := parseListingProduct(json.RawMessage(`{"id":1}`))
		require.Error(t, err)
	})
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "array", raw: `["a","b"]`, want: []string{"a", "b"}},
		{name: "csv string", raw: `"a, b , c"`, want: []string{"a", "b", "c"}},
		{name: "empty string", raw: `""`, want: nil},
		{name: "absent", raw: ``, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseTags(json.RawMessage(tt.raw)))
		})
	}
}

func TestAnyVariantAvailable(t *testing.T) {
	t.Parallel()

	assert.False(t, anyVariantAvailable(nil))
	assert.False(t, anyVariantAvailable([]model.Variant{{"available": false}}))
	assert.True(t, anyVariantAvailable([]model.Variant{{"available": false}, {"available": true}}))
}
