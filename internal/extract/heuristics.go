package extract

import "github.com/sells-group/storefront-cli/internal/model"

// SocialPlatform maps a platform to the host substrings that identify it.
type SocialPlatform struct {
	Platform model.Platform
	Domains  []string
}

// LinkCategory maps an important-link category to its anchor-text keywords.
// Categories are evaluated in order; the first keyword hit wins per link.
type LinkCategory struct {
	Category model.LinkCategory
	Keywords []string
}

// FAQPattern describes one structural question/answer layout. An empty
// Question selector means the question is the first heading or bold element
// inside the container and the answer is the container's remaining text.
// Container "dt" is special-cased: the answer is the following dd sibling.
type FAQPattern struct {
	Container string
	Question  string
	Answer    string
}

// Heuristics holds every keyword list, selector cascade, path convention,
// cap, and threshold the extractors consult. Instances are immutable once
// constructed; tests substitute fixtures instead of patching globals.
type Heuristics struct {
	// Brand name
	BrandSelectors []string
	TitleSuffixes  []string

	// Shared content-selector cascade for policy and about pages.
	ContentSelectors []string

	// Candidate URL assembly
	PolicyPaths     map[model.PolicyType][]string
	PolicyKeywords  map[model.PolicyType][]string
	FAQPaths        []string
	FAQKeywords     []string
	AboutPaths      []string
	AboutKeywords   []string
	ContactPaths    []string
	ContactKeywords []string

	// Hero products and product pages
	HeroSelectors         []string
	ProductTitleSelectors []string
	ProductPriceSelectors []string
	ProductImageSelectors []string
	ProductDescSelectors  []string

	FAQPatterns     []FAQPattern
	SocialPlatforms []SocialPlatform
	LinkCategories  []LinkCategory

	// Caps and thresholds
	CatalogPageSize     int
	MaxCatalogPages     int
	MaxCandidatePages   int
	MaxHeroProducts     int
	MaxLinksPerSelector int
	MaxFAQs             int
	MaxLinks            int
	PolicyMinChars      int
	PolicyMaxChars      int
	AboutMinChars       int
	AboutMaxChars       int
	MinQuestionChars    int
	MinAnswerChars      int
	MaxLinkTextChars    int
}

// DefaultHeuristics returns the standard heuristic tables tuned for
// typical storefront markup.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		BrandSelectors: []string{
			".site-header__logo img",
			".header__logo img",
			".logo img",
			"h1.site-title",
			".brand-name",
		},
		TitleSuffixes: []string{" - Online Store", " | Shopify", " Store"},

		ContentSelectors: []string{
			".page-content",
			".rte",
			".policy-content",
			".about-content",
			".page__content",
			"main",
		},

		PolicyPaths: map[model.PolicyType][]string{
			model.PolicyPrivacy: {"/pages/privacy-policy", "/privacy-policy", "/policies/privacy-policy"},
			model.PolicyReturn:  {"/pages/return-policy", "/return-policy", "/policies/refund-policy", "/pages/refund-policy"},
		},
		PolicyKeywords: map[model.PolicyType][]string{
			model.PolicyPrivacy: {"privacy", "privacy policy"},
			model.PolicyReturn:  {"return", "refund", "return policy", "refund policy"},
		},
		FAQPaths:        []string{"/pages/faq", "/faq", "/help", "/support"},
		FAQKeywords:     []string{"faq", "frequently asked questions", "help", "support"},
		AboutPaths:      []string{"/pages/about", "/about", "/pages/about-us", "/our-story"},
		AboutKeywords:   []string{"about", "about us", "our story", "who we are"},
		ContactPaths:    []string{"/pages/contact", "/contact", "/contact-us"},
		ContactKeywords: []string{"contact", "contact us", "get in touch"},

		HeroSelectors: []string{
			`.product-card a[href*="/products/"]`,
			`.featured-product a[href*="/products/"]`,
			`.product-item a[href*="/products/"]`,
			`a[href*="/products/"]`,
		},
		ProductTitleSelectors: []string{
			".product-title",
			".product__title",
			"h1.product-single__title",
			"h1",
		},
		ProductPriceSelectors: []string{
			".price",
			".product-price",
			".product__price",
			"[data-price]",
		},
		ProductImageSelectors: []string{
			".product-images img",
			".product__photos img",
			".product-photo img",
		},
		ProductDescSelectors: []string{
			".product-description",
			".product__description",
			".product-single__description",
		},

		FAQPatterns: []FAQPattern{
			{Container: ".faq-item", Question: ".faq-question", Answer: ".faq-answer"},
			{Container: ".accordion-item", Question: ".accordion-header", Answer: ".accordion-body"},
			{Container: ".question", Question: "", Answer: ""},
			{Container: "dt", Question: "", Answer: ""},
		},

		SocialPlatforms: []SocialPlatform{
			{Platform: model.PlatformInstagram, Domains: []string{"instagram.com", "instagr.am"}},
			{Platform: model.PlatformFacebook, Domains: []string{"facebook.com", "fb.com"}},
			{Platform: model.PlatformTwitter, Domains: []string{"twitter.com", "t.co"}},
			{Platform: model.PlatformTikTok, Domains: []string{"tiktok.com"}},
			{Platform: model.PlatformYouTube, Domains: []string{"youtube.com", "youtu.be"}},
			{Platform: model.PlatformLinkedIn, Domains: []string{"linkedin.com"}},
			{Platform: model.PlatformPinterest, Domains: []string{"pinterest.com"}},
		},

		LinkCategories: []LinkCategory{
			{Category: model.LinkOrderTracking, Keywords: []string{"track", "order tracking", "track order", "track your order"}},
			{Category: model.LinkContactUs, Keywords: []string{"contact", "contact us", "get in touch"}},
			{Category: model.LinkBlog, Keywords: []string{"blog", "news", "articles"}},
			{Category: model.LinkSizeGuide, Keywords: []string{"size guide", "sizing", "size chart"}},
			{Category: model.LinkShipping, Keywords: []string{"shipping", "delivery"}},
			{Category: model.LinkReturns, Keywords: []string{"returns", "return policy"}},
			{Category: model.LinkHelp, Keywords: []string{"help", "support", "customer service"}},
		},

		CatalogPageSize:     250,
		MaxCatalogPages:     40,
		MaxCandidatePages:   3,
		MaxHeroProducts:     5,
		MaxLinksPerSelector: 10,
		MaxFAQs:             10,
		MaxLinks:            10,
		PolicyMinChars:      100,
		PolicyMaxChars:      2000,
		AboutMinChars:       100,
		AboutMaxChars:       1000,
		MinQuestionChars:    5,
		MinAnswerChars:      10,
		MaxLinkTextChars:    100,
	}
}
