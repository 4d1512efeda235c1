package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// brandName recovers the storefront's brand name from the homepage.
// Strategies in order: page title (with storefront boilerplate suffixes
// stripped), logo image alt text, heading/class selectors, and finally the
// second-level domain title-cased. The domain fallback means a loaded
// homepage always yields some name.
func (e *Extractor) brandName(doc *goquery.Document, base *url.URL) string {
	if title := cleanText(doc.Find("title").First().Text()); title != "" {
		for _, suffix := range e.h.TitleSuffixes {
			title = strings.ReplaceAll(title, suffix, "")
		}
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}

	for _, sel := range e.h.BrandSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if goquery.NodeName(node) == "img" {
			if alt := strings.TrimSpace(node.AttrOr("alt", "")); alt != "" {
				return alt
			}
			continue
		}
		if text := cleanText(node.Text()); text != "" {
			return text
		}
	}

	return domainBrand(base.Host)
}

// domainBrand title-cases the second-level domain: "www.glow-beauty.com"
// becomes "Glow-Beauty".
func domainBrand(host string) string {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return ""
	}
	return titleCaser.String(label)
}
