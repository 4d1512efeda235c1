package extract

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/storefront-cli/internal/model"
)

var priceRe = regexp.MustCompile(`[\d,]+\.?\d*`)

// heroProducts collects product links featured on the homepage, fetches
// each product page, and extracts details through nested selector
// cascades. A product with no resolvable title is dropped; title is the
// only required field.
func (e *Extractor) heroProducts(ctx context.Context, doc *goquery.Document, base *url.URL) []model.Product {
	seen := make(map[string]bool)
	var links []string

	for _, sel := range e.h.HeroSelectors {
		matched := 0
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if matched >= e.h.MaxLinksPerSelector {
				return false
			}
			matched++
			href := s.AttrOr("href", "")
			if !strings.Contains(href, "/products/") {
				return true
			}
			if abs := resolveURL(base, href); abs != "" && !seen[abs] {
				seen[abs] = true
				links = append(links, abs)
			}
			return true
		})
	}

	if len(links) > e.h.MaxHeroProducts {
		links = links[:e.h.MaxHeroProducts]
	}

	var heroes []model.Product
	for _, productURL := range links {
		pdoc, err := e.fetcher.Document(ctx, productURL)
		if err != nil {
			zap.L().Warn("extract: hero product page fetch failed",
				zap.String("url", productURL),
				zap.Error(err),
			)
			continue
		}
		if p, ok := e.productFromPage(pdoc, handleFromURL(productURL)); ok {
			heroes = append(heroes, p)
		}
	}

	return heroes
}

// productFromPage pulls product details out of a product page document.
// Returns false when no title can be found.
func (e *Extractor) productFromPage(doc *goquery.Document, handle string) (model.Product, bool) {
	var title string
	for _, sel := range e.h.ProductTitleSelectors {
		if title = cleanText(doc.Find(sel).First().Text()); title != "" {
			break
		}
	}
	if title == "" {
		return model.Product{}, false
	}

	var price string
	for _, sel := range e.h.ProductPriceSelectors {
		text := cleanText(doc.Find(sel).First().Text())
		if text == "" {
			continue
		}
		if m := priceRe.FindString(text); m != "" {
			price = m
			break
		}
	}

	var images []string
	for _, sel := range e.h.ProductImageSelectors {
		doc.Find(sel).Each(func(_ int, img *goquery.Selection) {
			src := img.AttrOr("src", "")
			if src == "" {
				src = img.AttrOr("data-src", "")
			}
			if strings.Contains(src, "http") {
				images = append(images, src)
			}
		})
	}

	var description string
	for _, sel := range e.h.ProductDescSelectors {
		if description = cleanText(doc.Find(sel).First().Text()); description != "" {
			break
		}
	}

	return model.Product{
		Title:       title,
		Handle:      handle,
		Price:       price,
		Images:      images,
		Description: description,
	}, true
}

// handleFromURL extracts the product slug from a /products/ URL.
func handleFromURL(productURL string) string {
	_, after, found := strings.Cut(productURL, "/products/")
	if !found {
		return ""
	}
	handle, _, _ := strings.Cut(after, "?")
	return strings.TrimSuffix(handle, "/")
}
