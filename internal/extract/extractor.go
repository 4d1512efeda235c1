// Package extract turns a storefront URL into a structured brand profile.
// Each section (catalog, policies, FAQs, contact, ...) has its own
// best-effort extractor; a section that finds nothing leaves its field
// empty rather than failing the run.
package extract

import (
	"context"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/storefront-cli/internal/fetch"
	"github.com/sells-group/storefront-cli/internal/model"
)

// Extractor assembles brand profiles from live storefront pages.
type Extractor struct {
	fetcher *fetch.Client
	h       Heuristics
}

// New creates an Extractor around the given fetch client.
func New(fetcher *fetch.Client, h Heuristics) *Extractor {
	return &Extractor{fetcher: fetcher, h: h}
}

// Profile extracts a full brand profile from the storefront at rawURL.
//
// A URL that does not normalize returns an error with no profile. Once the
// URL is valid a profile always comes back: if the homepage itself cannot
// be fetched the profile carries StatusError and the fetch error message;
// otherwise every section extractor runs and the status reflects how much
// they found. Section failures never abort the run.
func (e *Extractor) Profile(ctx context.Context, rawURL string) (*model.Profile, error) {
	normalized, err := fetch.NormalizeURL(rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "extract: invalid url")
	}
	base, err := url.Parse(normalized)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: parse url %s", normalized)
	}

	profile := &model.Profile{
		WebsiteURL:  normalized,
		ExtractedAt: time.Now().UTC(),
	}

	doc, err := e.fetcher.Document(ctx, normalized)
	if err != nil {
		zap.L().Warn("homepage fetch failed",
			zap.String("url", normalized),
			zap.Error(err))
		profile.Status = model.StatusError
		profile.ErrorMessage = eris.ToString(err, false)
		return profile, nil
	}

	profile.BrandName = e.brandName(doc, base)
	profile.Catalog = e.catalog(ctx, normalized)
	profile.HeroProducts = e.heroProducts(ctx, doc, base)

	for _, t := range []model.PolicyType{model.PolicyPrivacy, model.PolicyReturn} {
		if p := e.policy(ctx, t, doc, base); p != nil {
			profile.Policies = append(profile.Policies, *p)
		}
	}

	profile.FAQs = e.faqs(ctx, doc, base)
	profile.SocialHandles = e.socialHandles(doc)
	profile.Contact = e.contactInfo(ctx, doc, base)
	profile.AboutBrand = e.about(ctx, doc, base)
	profile.ImportantLinks = e.importantLinks(doc, base)

	profile.Status = statusFor(profile)
	return profile, nil
}

// statusFor classifies a completed run. The homepage loaded, so the worst
// case is partial: the brand name nearly always resolves (domain fallback),
// so it does not count as extracted content on its own.
func statusFor(p *model.Profile) model.ExtractionStatus {
	if len(p.Catalog) > 0 || len(p.HeroProducts) > 0 || len(p.Policies) > 0 ||
		len(p.FAQs) > 0 || len(p.SocialHandles) > 0 || len(p.ImportantLinks) > 0 ||
		p.AboutBrand != "" ||
		len(p.Contact.Emails) > 0 || len(p.Contact.Phones) > 0 {
		return model.StatusSuccess
	}
	return model.StatusPartial
}
