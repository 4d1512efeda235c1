package extract

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/storefront-cli/internal/model"
)

// policy locates one policy document. Candidate pages come from
// conventional path slugs plus in-page anchors whose text matches the
// policy's keyword set; candidates are visited in order and the first page
// with substantial content wins. Content below the plausibility threshold
// is rejected outright.
func (e *Extractor) policy(ctx context.Context, t model.PolicyType, doc *goquery.Document, base *url.URL) *model.Policy {
	candidates := mergeCandidates(e.h.MaxCandidatePages,
		pathCandidates(base, e.h.PolicyPaths[t]),
		linkCandidates(doc, base, e.h.PolicyKeywords[t]),
	)

	for _, candidate := range candidates {
		pdoc, err := e.fetcher.Document(ctx, candidate)
		if err != nil {
			zap.L().Debug("extract: policy candidate fetch failed",
				zap.String("url", candidate),
				zap.Error(err),
			)
			continue
		}

		content := firstContent(pdoc, e.h.ContentSelectors)
		if len(content) <= e.h.PolicyMinChars {
			continue
		}

		return &model.Policy{
			Type:    t,
			Title:   policyTitle(t),
			Content: truncate(content, e.h.PolicyMaxChars),
			URL:     candidate,
		}
	}

	return nil
}

// policyTitle synthesizes a display title from the policy type.
func policyTitle(t model.PolicyType) string {
	return cases.Title(language.English).String(string(t)) + " Policy"
}
