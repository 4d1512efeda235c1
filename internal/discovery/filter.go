package discovery

import (
	"net/url"
	"strings"
)

// skipDomains are hosts that show up constantly in search results but are
// never a competitor storefront (platforms, marketplaces, social networks).
var skipDomains = []string{
	"google.com", "facebook.com", "instagram.com", "twitter.com",
	"youtube.com", "linkedin.com", "pinterest.com", "tiktok.com",
	"amazon.com", "ebay.com", "alibaba.com", "wikipedia.org",
	"reddit.com", "quora.com", "medium.com", "wordpress.com",
	"blogger.com", "tumblr.com", "shopify.com", "wix.com",
	"squarespace.com", "paypal.com", "stripe.com",
}

// ecommerceIndicators are substrings whose presence anywhere in a URL
// suggests a direct-to-consumer storefront.
var ecommerceIndicators = []string{
	".shop", ".store", "shopify", "shop", "store", "boutique",
	"fashion", "clothing", "apparel", "beauty", "cosmetics",
}

// normalizeCandidate prefixes protocol-less URLs with https and rejects
// anything that does not parse with a host.
func normalizeCandidate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		if strings.HasPrefix(raw, "//") {
			raw = "https:" + raw
		} else {
			raw = "https://" + raw
		}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", false
	}
	return raw, true
}

// domainOf returns the lowercased host of a URL with any www. prefix
// stripped, or "" when the URL does not parse.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// isPotentialCompetitor applies the candidate filter: absolute http(s)
// URL, different domain than the source store, not a platform or
// marketplace (built-in skip list plus extraDeny), and carrying at least
// one e-commerce vocabulary hint.
func isPotentialCompetitor(candidate, originalURL string, extraDeny []string) bool {
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		return false
	}

	candidateDomain := domainOf(candidate)
	if candidateDomain == "" || candidateDomain == domainOf(originalURL) {
		return false
	}

	for _, skip := range skipDomains {
		if strings.Contains(candidateDomain, skip) {
			return false
		}
	}
	for _, skip := range extraDeny {
		if skip != "" && strings.Contains(candidateDomain, skip) {
			return false
		}
	}

	lower := strings.ToLower(candidate)
	for _, hint := range ecommerceIndicators {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
