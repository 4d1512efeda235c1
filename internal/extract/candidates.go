package extract

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// linkCandidates returns absolute URLs of in-page anchors whose visible
// text contains any of the keywords (case-insensitive substring match).
func linkCandidates(doc *goquery.Document, base *url.URL, keywords []string) []string {
	var out []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		text := strings.ToLower(cleanText(s.Text()))
		if text == "" {
			return
		}
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				if abs := resolveURL(base, s.AttrOr("href", "")); abs != "" {
					out = append(out, abs)
				}
				return
			}
		}
	})
	return out
}

// pathCandidates resolves conventional path slugs against the base URL.
func pathCandidates(base *url.URL, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs := resolveURL(base, p); abs != "" {
			out = append(out, abs)
		}
	}
	return out
}

// mergeCandidates concatenates candidate groups, de-duplicates preserving
// first-seen order, and truncates to limit (0 = unlimited).
func mergeCandidates(limit int, groups ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range groups {
		for _, u := range g {
			if seen[u] {
				continue
			}
			seen[u] = true
			out = append(out, u)
			if limit > 0 && len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// resolveURL resolves href against base, dropping anchors and non-HTTP
// schemes. Returns "" when the href cannot be used.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	abs.Fragment = ""
	return abs.String()
}

// cleanText collapses all runs of whitespace to single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate caps s at n bytes, backing up to a rune boundary so the
// result is always valid UTF-8.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// firstContent walks a selector cascade and returns the text of the first
// matching element, cleaned. Empty string when nothing matches.
func firstContent(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if text := cleanText(node.Text()); text != "" {
			return text
		}
	}
	return ""
}

// pageText strips scripts, styles, and chrome from a document and returns
// its collapsed visible text. Mutates the document; only call on throwaway
// candidate-page documents.
func pageText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, footer").Remove()
	return cleanText(doc.Text())
}
