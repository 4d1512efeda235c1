package extract

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// about recovers the brand's "about" text. Candidate about pages are
// tried with the shared content-selector cascade; when no selector
// matches, a general text-extraction pass over the stripped page is
// attempted. The homepage meta description is the last resort and is
// accepted at any length.
func (e *Extractor) about(ctx context.Context, doc *goquery.Document, base *url.URL) string {
	candidates := mergeCandidates(e.h.MaxCandidatePages,
		linkCandidates(doc, base, e.h.AboutKeywords),
		pathCandidates(base, e.h.AboutPaths),
	)

	for _, candidate := range candidates {
		adoc, err := e.fetcher.Document(ctx, candidate)
		if err != nil {
			zap.L().Debug("extract: about candidate fetch failed",
				zap.String("url", candidate),
				zap.Error(err),
			)
			continue
		}

		if content := firstContent(adoc, e.h.ContentSelectors); len(content) > e.h.AboutMinChars {
			return truncate(content, e.h.AboutMaxChars)
		}
		if text := pageText(adoc); len(text) > e.h.AboutMinChars {
			return truncate(text, e.h.AboutMaxChars)
		}
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		return strings.TrimSpace(desc)
	}

	return ""
}
