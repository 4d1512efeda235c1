package extract

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/storefront-cli/internal/model"
)

// faqs finds a FAQ page and extracts question/answer pairs from it.
// Several structural patterns are tried on each candidate page (explicit
// Q/A containers, accordion markup, definition lists); the first page
// yielding any pairs stops the search. Pairs below the plausibility
// thresholds are never emitted.
func (e *Extractor) faqs(ctx context.Context, doc *goquery.Document, base *url.URL) []model.FAQ {
	candidates := mergeCandidates(e.h.MaxCandidatePages,
		linkCandidates(doc, base, e.h.FAQKeywords),
		pathCandidates(base, e.h.FAQPaths),
	)

	for _, candidate := range candidates {
		fdoc, err := e.fetcher.Document(ctx, candidate)
		if err != nil {
			zap.L().Debug("extract: faq candidate fetch failed",
				zap.String("url", candidate),
				zap.Error(err),
			)
			continue
		}

		if found := e.faqsFromPage(fdoc); len(found) > 0 {
			if len(found) > e.h.MaxFAQs {
				found = found[:e.h.MaxFAQs]
			}
			return found
		}
	}

	return nil
}

func (e *Extractor) faqsFromPage(doc *goquery.Document) []model.FAQ {
	var faqs []model.FAQ

	for _, pattern := range e.h.FAQPatterns {
		doc.Find(pattern.Container).Each(func(_ int, container *goquery.Selection) {
			question, answer := extractPair(container, pattern)
			if faq, ok := e.acceptPair(question, answer); ok {
				faqs = append(faqs, faq)
			}
		})
	}

	return faqs
}

// extractPair pulls the raw question and answer text for one container
// according to the pattern's shape.
func extractPair(container *goquery.Selection, pattern FAQPattern) (string, string) {
	switch {
	case pattern.Question != "" && pattern.Answer != "":
		return cleanText(container.Find(pattern.Question).First().Text()),
			cleanText(container.Find(pattern.Answer).First().Text())
	case pattern.Container == "dt":
		return cleanText(container.Text()),
			cleanText(container.NextFiltered("dd").Text())
	default:
		// Question is the first heading or bold element; the answer is
		// the container's remaining text.
		question := cleanText(container.Find("h1, h2, h3, h4, strong, b").First().Text())
		return question, cleanText(container.Text())
	}
}

// acceptPair validates a raw pair against the plausibility thresholds.
// The question text is stripped out of the answer first, since container
// patterns include it.
func (e *Extractor) acceptPair(question, answer string) (model.FAQ, bool) {
	question = strings.TrimSpace(question)
	if question != "" {
		answer = strings.TrimSpace(strings.ReplaceAll(answer, question, ""))
	}
	if len(question) <= e.h.MinQuestionChars || len(answer) <= e.h.MinAnswerChars {
		return model.FAQ{}, false
	}
	return model.FAQ{Question: question, Answer: answer}, true
}
