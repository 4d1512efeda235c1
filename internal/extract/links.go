package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/storefront-cli/internal/model"
)

// importantLinks scans homepage anchors and classifies them into customer
// service categories by anchor text. Each link is assigned at most one
// category; the first category whose keyword matches wins. Results are
// de-duplicated by resolved URL and capped.
func (e *Extractor) importantLinks(doc *goquery.Document, base *url.URL) []model.ImportantLink {
	seen := make(map[string]bool)
	var links []model.ImportantLink

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := cleanText(s.Text())
		if text == "" || len(text) > e.h.MaxLinkTextChars {
			return true
		}
		lower := strings.ToLower(text)

		for _, lc := range e.h.LinkCategories {
			if !matchesKeyword(lower, lc.Keywords) {
				continue
			}
			u := resolveURL(base, s.AttrOr("href", ""))
			if u == "" || seen[u] {
				break
			}
			seen[u] = true
			links = append(links, model.ImportantLink{
				Category: lc.Category,
				Title:    text,
				URL:      u,
			})
			break
		}
		return len(links) < e.h.MaxLinks
	})

	return links
}

func matchesKeyword(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
