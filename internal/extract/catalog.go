package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/storefront-cli/internal/model"
)

// catalogPage is one page of the bulk product-listing endpoint. Products
// stay raw so a single malformed entry can be skipped without losing the
// rest of the page.
type catalogPage struct {
	Products []json.RawMessage `json:"products"`
}

// listingProduct mirrors the bulk listing's product shape.
type listingProduct struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Handle      string          `json:"handle"`
	Vendor      string          `json:"vendor"`
	ProductType string          `json:"product_type"`
	Tags        json.RawMessage `json:"tags"`
	BodyHTML    string          `json:"body_html"`
	Images      []struct {
		Src string `json:"src"`
	} `json:"images"`
	Variants []model.Variant `json:"variants"`
}

// catalog pages through {base}/products.json until a short page signals
// exhaustion, the endpoint errors, or the page ceiling is hit. Endpoint
// absence is not an error; stores without the bulk listing simply yield
// an empty catalog.
func (e *Extractor) catalog(ctx context.Context, base string) []model.Product {
	var products []model.Product

	for page := 1; page <= e.h.MaxCatalogPages; page++ {
		pageURL := fmt.Sprintf("%s/products.json?page=%d&limit=%d", base, page, e.h.CatalogPageSize)

		var pg catalogPage
		if err := e.fetcher.JSON(ctx, pageURL, &pg); err != nil {
			zap.L().Debug("extract: catalog endpoint unavailable",
				zap.String("url", pageURL),
				zap.Error(err),
			)
			break
		}
		if len(pg.Products) == 0 {
			break
		}

		for _, raw := range pg.Products {
			p, err := parseListingProduct(raw)
			if err != nil {
				zap.L().Warn("extract: skipping malformed catalog product",
					zap.String("base", base),
					zap.Int("page", page),
					zap.Error(err),
				)
				continue
			}
			products = append(products, p)
		}

		// A short page is the last page.
		if len(pg.Products) < e.h.CatalogPageSize {
			break
		}
	}

	return products
}

func parseListingProduct(raw json.RawMessage) (model.Product, error) {
	var lp listingProduct
	if err := json.Unmarshal(raw, &lp); err != nil {
		return model.Product{}, eris.Wrap(err, "decode product")
	}
	if strings.TrimSpace(lp.Title) == "" {
		return model.Product{}, eris.New("product has no title")
	}

	images := make([]string, 0, len(lp.Images))
	for _, img := range lp.Images {
		if img.Src != "" {
			images = append(images, img.Src)
		}
	}

	p := model.Product{
		ExternalID:  lp.ID,
		Title:       lp.Title,
		Handle:      lp.Handle,
		Vendor:      lp.Vendor,
		ProductType: lp.ProductType,
		Tags:        parseTags(lp.Tags),
		Images:      images,
		Variants:    lp.Variants,
		Available:   anyVariantAvailable(lp.Variants),
		Description: strings.TrimSpace(lp.BodyHTML),
	}

	if len(lp.Variants) > 0 {
		p.Price = variantString(lp.Variants[0], "price")
		p.CompareAtPrice = variantString(lp.Variants[0], "compare_at_price")
	}

	return p, nil
}

// parseTags accepts either a JSON array of strings or a single
// comma-separated string; both forms occur in the wild.
func parseTags(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var csv string
	if err := json.Unmarshal(raw, &csv); err != nil || csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, t := range parts {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func anyVariantAvailable(variants []model.Variant) bool {
	for _, v := range variants {
		if avail, ok := v["available"].(bool); ok && avail {
			return true
		}
	}
	return false
}

// variantString reads a variant field that may arrive as string or number.
func variantString(v model.Variant, key string) string {
	switch val := v[key].(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return ""
	}
}
