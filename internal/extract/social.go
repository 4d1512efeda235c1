package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/storefront-cli/internal/model"
)

// socialHandles scans every anchor on the homepage for known social
// platform domains. The handle string is extracted best-effort from the
// URL path for platforms where the first segment is the account name.
// Results are de-duplicated by URL.
func (e *Extractor) socialHandles(doc *goquery.Document) []model.SocialHandle {
	seen := make(map[string]bool)
	var handles []model.SocialHandle

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		lower := strings.ToLower(href)

		for _, sp := range e.h.SocialPlatforms {
			for _, domain := range sp.Domains {
				if !strings.Contains(lower, domain) {
					continue
				}
				if seen[href] {
					return
				}
				seen[href] = true
				handles = append(handles, model.SocialHandle{
					Platform: sp.Platform,
					URL:      href,
					Handle:   handleFromSocialURL(sp.Platform, href),
				})
				return
			}
		}
	})

	return handles
}

// handleFromSocialURL pulls the account name out of a profile URL for
// platforms whose first path segment is the handle.
func handleFromSocialURL(platform model.Platform, href string) string {
	switch platform {
	case model.PlatformInstagram, model.PlatformFacebook, model.PlatformTwitter:
	default:
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	for _, seg := range strings.Split(u.Path, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}
