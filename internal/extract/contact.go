package extract

import (
	"context"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nyaruka/phonenumbers"
	"go.uber.org/zap"

	"github.com/sells-group/storefront-cli/internal/model"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)

	// Phone-like sequences, broadest last.
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[\s\-]?\d{3,14}`),          // international
		regexp.MustCompile(`\(\d{3}\)[\s\-]?\d{3}[\s\-]?\d{4}`), // (xxx) xxx-xxxx
		regexp.MustCompile(`\d{3}[\s\-]\d{3}[\s\-]\d{4}`),       // xxx-xxx-xxxx
		regexp.MustCompile(`\d{10,}`),                           // long digit run
	}

	nonDigitRe = regexp.MustCompile(`\D`)
)

// maxContactPages bounds the secondary contact-page fetches.
const maxContactPages = 2

// contactInfo regex-scans the homepage text and up to two contact-page
// candidates for email addresses and phone-like sequences. Phone
// candidates must have a digit-only length of 10 to 15; surviving numbers
// are normalized to E.164 when they parse, raw otherwise. Both sets are
// de-duplicated.
func (e *Extractor) contactInfo(ctx context.Context, doc *goquery.Document, base *url.URL) model.ContactInfo {
	texts := []string{doc.Text()}

	candidates := mergeCandidates(maxContactPages,
		linkCandidates(doc, base, e.h.ContactKeywords),
		pathCandidates(base, e.h.ContactPaths),
	)
	for _, candidate := range candidates {
		cdoc, err := e.fetcher.Document(ctx, candidate)
		if err != nil {
			zap.L().Debug("extract: contact candidate fetch failed",
				zap.String("url", candidate),
				zap.Error(err),
			)
			continue
		}
		texts = append(texts, cdoc.Text())
		break
	}

	info := model.ContactInfo{
		Emails:    []string{},
		Phones:    []string{},
		Addresses: []string{},
	}

	emailSet := make(map[string]bool)
	phoneSet := make(map[string]bool)

	for _, text := range texts {
		for _, email := range emailRe.FindAllString(text, -1) {
			email = strings.ToLower(email)
			if !emailSet[email] {
				emailSet[email] = true
				info.Emails = append(info.Emails, email)
			}
		}
		for _, re := range phoneRes {
			for _, m := range re.FindAllString(text, -1) {
				digits := nonDigitRe.ReplaceAllString(m, "")
				if len(digits) < 10 || len(digits) > 15 {
					continue
				}
				phone := normalizePhone(m)
				if !phoneSet[phone] {
					phoneSet[phone] = true
					info.Phones = append(info.Phones, phone)
				}
			}
		}
	}

	sort.Strings(info.Emails)
	sort.Strings(info.Phones)
	return info
}

// normalizePhone formats a matched sequence as E.164 when it parses as a
// possible number; the raw match is kept otherwise so nothing plausible
// is lost.
func normalizePhone(raw string) string {
	region := "US"
	if strings.HasPrefix(raw, "+") {
		region = ""
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return strings.TrimSpace(raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
