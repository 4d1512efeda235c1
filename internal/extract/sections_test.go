package extract

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/storefront-cli/internal/model"
)

func TestPolicy_PathCandidateWins(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("We respect your privacy. ", 10)
	srv := newTestSite(t, map[string]string{
		"/pages/privacy-policy": `<html><body><div class="page-content">` + content + `</div></body></html>`,
	})

	e := newTestExtractor(DefaultHeuristics())
	doc := parseDoc(t, `<html><body></body></html>`)

	p := e.policy(context.Background(), model.PolicyPrivacy, doc, mustParseURL(t, srv.URL))
	require.NotNil(t, p)
	assert.Equal(t, model.PolicyPrivacy, p.Type)
	assert.Equal(t, "Privacy Policy", p.Title)
	assert.Equal(t, srv.URL+"/pages/privacy-policy", p.URL)
	assert.Contains(t, p.Content, "We respect your privacy.")
}

func TestPolicy_ShortContentRejected(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t, map[string]string{
		"/pages/privacy-policy": `<html><body><div class="page-content">Too short to be a policy.</div></body></html>`,
	})

	e := newTestExtractor(DefaultHeuristics())
	doc := parseDoc(t, `<html><body></body></html>`)

	assert.Nil(t, e.policy(context.Background(), model.PolicyPrivacy, doc, mustParseURL(t, srv.URL)))
}

func TestPolicy_ContentTruncated(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t, map[string]string{
		"/pages/return-policy": `<html><body><main>` + strings.Repeat("r", 5000) + `</main></body></html>`,
	})

	e := newTestExtractor(DefaultHeuristics())
	doc := parseDoc(t, `<html><body></body></html>`)

	p := e.policy(context.Background(), model.PolicyReturn, doc, mustParseURL(t, srv.URL))
	require.NotNil(t, p)
	assert.Len(t, p.Content, e.h.PolicyMaxChars)
	assert.Equal(t, "Return Policy", p.Title)
}

func TestFAQs_ExplicitPattern(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t, map[string]string{
		"/pages/faq": `<html><body>
			<div class="faq-item">
				<div class="faq-question">What is your shipping time?</div>
				<div class="faq-answer">Orders ship within two business days.</div>
			</div>
			<div class="faq-item">
				<div class="faq-question">Q?</div>
				<div class="faq-answer">Too short q.</div>
			</div>
		</body></html>`,
	})

	e := newTestExtractor(DefaultHeuristics())
	doc := parseDoc(t, `<html><body></body></html>`)

	faqs := e.faqs(context.Background(), doc, mustParseURL(t, srv.URL))
	require.Len(t, faqs, 1)
	assert.Equal(t, "What is your shipping time?", faqs[0].Question)
	assert.Equal(t, "Orders ship within two business days.", faqs[0].Answer)
}

func TestFAQs_DefinitionList(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t, map[string]string{
		"/faq": `<html><body><dl>
			<dt>Do you ship internationally?</dt>
			<dd>Yes, we ship to over 40 countries worldwide.</dd>
		</dl></body></html>`,
	})

	e := newTestExtractor(DefaultHeuristics())
	doc := parseDoc(t, `<html><body></body></html>`)

	faqs := e.faqs(context.Background(), doc, mustParseURL(t, srv.URL))
	require.Len(t, faqs, 1)
	assert.Equal(t, "Do you ship internationally?", faqs[0].Question)
	assert.Equal(t, "Yes, we ship to over 40 countries worldwide.", faqs[0].Answer)
}

func TestFAQs_Capped(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString(`<html><body>`)
	for i := 0; i < 15; i++ {
		sb.WriteString(`<div class="faq-item"><div class="faq-question">Question number `)
		sb.WriteString(strings.Repeat("x", i+1))
		sb.WriteString(`?</div><div class="faq-answer">A sufficiently long answer.</div></div>`)
	}
	sb.WriteString(`</body></html>`)

	srv := newTestSite(t, map[string]string{"/pages/faq": sb.String()})

	e := newTestExtractor(DefaultHeuristics())
	doc := parseDoc(t, `<html><body></body></html>`)

	faqs := e.faqs(context.Background(), doc, mustParseURL(t, srv.URL))
	assert.Len(t, faqs, e.h.MaxFAQs)
}

func TestAbout_ContentSelector(t *testing.T) {
	t.Parallel()

	story := strings.Repeat("Founded in a garage, we make things people love. ", 5)
	srv := newTestSite(t, map[string]string{
		"/pages/about": `<html><body><div class="rte">` + story + `</div></body></html>`,
	})

	e := newTestExtractor(DefaultHeuristics())
	doc := parseDoc(t, `<html><body></body></html>`)

	about := e.about(context.Background(), doc, mustParseURL(t, srv.URL))
	assert.Contains(t, about, "Founded in a garage")
	assert.LessOrEqual(t, len(about), e.h.AboutMaxChars)
}

func TestAbout_FallbackToPageText(t *testing.T) {
	t.Parallel()

	story := strings.Repeat("Our story began with a single sewing machine. ", 5)
	srv := newTestSite(t, map[string]string{
		"/pages/about": `<html><body><script>var x=1;</script><div>` + story + `</div></body></html>`,
	})

	h := DefaultHeuristics()
	h.ContentSelectors = []string{".does-not-exist"}

	e := newTestExtractor(h)
	doc := parseDoc(t, `<html><body></body></html>`)

	about := e.about(context.Background(), doc, mustParseURL(t, srv.URL))
	assert.Contains(t, about, "single sewing machine")
	assert.NotContains(t, about, "var x=1")
}

func TestContactInfo(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t, map[string]string{})

	e := newTestExtractor(DefaultHeuristics())
	doc := parseDoc(t, `<html><body>
		<p>Email us at Support@Example.com or sales@example.com.</p>
		<p>Call (555) 123-4567 or +44 2079460958.</p>
		<p>Short code: 12345</p>
	</body></html>`)

	info := e.contactInfo(context.Background(), doc, mustParseURL(t, srv.URL))

	assert.Equal(t, []string{"sales@example.com", "support@example.com"}, info.Emails)
	assert.Contains(t, info.Phones, "+15551234567")
	assert.Contains(t, info.Phones, "+442079460958")
	for _, p := range info.Phones {
		assert.NotContains(t, p, "12345 ")
	}
	assert.Empty(t, info.Addresses)
}

func TestContactInfo_ContactPage(t *testing.T) {
	t.Parallel()

	srv := newTestSite(t, map[string]string{
		"/pages/contact": `<html><body>reach us: hello@brand.example</body></html>`,
	})

	e := newTestExtractor(DefaultHeuristics())
	doc := parseDoc(t, `<html><body><a href="/pages/contact">Contact</a></body></html>`)

	info := e.contactInfo(context.Background(), doc, mustParseURL(t, srv.URL))
	assert.Contains(t, info.Emails, "hello@brand.example")
}

func TestHeroProducts(t *testing.T) {
	t.Parallel()

	productPage := func(title string) string {
		return `<html><body>
			<h1 class="product-title">` + title + `</h1>
			<div class="price">From $24.99 USD</div>
			<div class="product-images"><img src="https://cdn.example.com/img.jpg"></div>
			<div class="product-description">Soft and durable.</div>
		</body></html>`
	}

	srv := newTestSite(t, map[string]string{
		"/products/alpha":          productPage("Alpha Tee"),
		"/products/beta?variant=1": productPage("Beta Hoodie"),
	})

	doc := parseDoc(t, `<html><body>
		<div class="product-card"><a href="/products/alpha">Alpha</a></div>
		<div class="product-card"><a href="/products/alpha">Alpha again</a></div>
		<div class="product-card"><a href="/products/beta?variant=1">Beta</a></div>
	</body></html>`)

	e := newTestExtractor(DefaultHeuristics())
	heroes := e.heroProducts(context.Background(), doc, mustParseURL(t, srv.URL))

	require.Len(t, heroes, 2)
	assert.Equal(t, "Alpha Tee", heroes[0].Title)
	assert.Equal(t, "alpha", heroes[0].Handle)
	assert.Equal(t, "24.99", heroes[0].Price)
	assert.Equal(t, []string{"https://cdn.example.com/img.jpg"}, heroes[0].Images)
	assert.Equal(t, "Soft and durable.", heroes[0].Description)
	assert.Equal(t, "beta", heroes[1].Handle)
}

func TestHeroProducts_Capped(t *testing.T) {
	t.Parallel()

	pages := map[string]string{}
	var sb strings.Builder
	sb.WriteString(`<html><body>`)
	for _, name := range []string{"a", "b", "c", "d"} {
		pages["/products/"+name] = `<html><body><h1>Product ` + name + `</h1></body></html>`
		sb.WriteString(`<div class="product-card"><a href="/products/` + name + `">` + name + `</a></div>`)
	}
	sb.WriteString(`</body></html>`)

	srv := newTestSite(t, pages)

	h := DefaultHeuristics()
	h.MaxHeroProducts = 2

	e := newTestExtractor(h)
	heroes := e.heroProducts(context.Background(), parseDoc(t, sb.String()), mustParseURL(t, srv.URL))
	assert.Len(t, heroes, 2)
}

func TestSocialHandles(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(DefaultHeuristics())
	doc := parseDoc(t, `<html><body>
		<a href="https://instagram.com/acmeshop">IG</a>
		<a href="https://instagram.com/acmeshop">IG again</a>
		<a href="https://www.facebook.com/acmeshop/about">FB</a>
		<a href="https://www.tiktok.com/@acmeshop">TikTok</a>
		<a href="/pages/about">About</a>
	</body></html>`)

	handles := e.socialHandles(doc)
	require.Len(t, handles, 3)

	byPlatform := map[model.Platform]model.SocialHandle{}
	for _, h := range handles {
		byPlatform[h.Platform] = h
	}
	assert.Equal(t, "acmeshop", byPlatform[model.PlatformInstagram].Handle)
	assert.Equal(t, "acmeshop", byPlatform[model.PlatformFacebook].Handle)
	assert.Empty(t, byPlatform[model.PlatformTikTok].Handle)
}

func TestImportantLinks(t *testing.T) {
	t.Parallel()

	e := newTestExtractor(DefaultHeuristics())
	base := mustParseURL(t, "https://acme.example")
	doc := parseDoc(t, `<html><body>
		<a href="/pages/track">Track Your Order</a>
		<a href="/pages/contact">Contact Us</a>
		<a href="/pages/contact">Contact Us</a>
		<a href="/blogs/news">Blog</a>
		<a href="/pages/size-guide">Size Guide</a>
	</body></html>`)

	links := e.importantLinks(doc, base)
	require.Len(t, links, 4)
	assert.Equal(t, model.LinkOrderTracking, links[0].Category)
	assert.Equal(t, "Track Your Order", links[0].Title)
	assert.Equal(t, "https://acme.example/pages/track", links[0].URL)
	assert.Equal(t, model.LinkContactUs, links[1].Category)
	assert.Equal(t, model.LinkBlog, links[2].Category)
	assert.Equal(t, model.LinkSizeGuide, links[3].Category)
}

func TestImportantLinks_Capped(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString(`<html><body>`)
	for i := 0; i < 20; i++ {
		sb.WriteString(`<a href="/help-` + strings.Repeat("x", i+1) + `">Help Center</a>`)
	}
	sb.WriteString(`</body></html>`)

	e := newTestExtractor(DefaultHeuristics())
	links := e.importantLinks(parseDoc(t, sb.String()), mustParseURL(t, "https://acme.example"))
	assert.Len(t, links, e.h.MaxLinks)
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	base := mustParseURL(t, "https://acme.example")

	tests := []struct {
		name string
		href string
		want string
	}{
		{name: "relative", href: "/pages/faq", want: "https://acme.example/pages/faq"},
		{name: "absolute", href: "https://other.example/x", want: "https://other.example/x"},
		{name: "fragment stripped", href: "/pages/faq#top", want: "https://acme.example/pages/faq"},
		{name: "anchor only", href: "#top", want: ""},
		{name: "mailto", href: "mailto:hi@acme.example", want: ""},
		{name: "tel", href: "tel:+15551234567", want: ""},
		{name: "javascript", href: "javascript:void(0)", want: ""},
		{name: "empty", href: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, resolveURL(base, tt.href))
		})
	}
}

func TestMergeCandidates(t *testing.T) {
	t.Parallel()

	merged := mergeCandidates(3,
		[]string{"a", "b", "a"},
		[]string{"b", "c", "d"},
	)
	assert.Equal(t, []string{"a", "b", "c"}, merged)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "under cap", in: "short", n: 10, want: "short"},
		{name: "exact cap", in: "exact", n: 5, want: "exact"},
		{name: "ascii cut", in: "abcdef", n: 3, want: "abc"},
		{name: "no cap", in: "anything", n: 0, want: "anything"},
		{name: "rune boundary kept", in: "cafés", n: 4, want: "caf"},
		{name: "multibyte run", in: "日本語", n: 4, want: "日"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestLinkCandidates(t *testing.T) {
	t.Parallel()

	base := mustParseURL(t, "https://acme.example")
	doc := parseDoc(t, `<html><body>
		<a href="/pages/faq">FAQ</a>
		<a href="/pages/help">Help Center</a>
		<a href="/pages/other">Lookbook</a>
	</body></html>`)

	got := linkCandidates(doc, base, []string{"faq", "help"})
	assert.Equal(t, []string{
		"https://acme.example/pages/faq",
		"https://acme.example/pages/help",
	}, got)
}
