package enhance

import (
	"strings"

	"github.com/storemark/storemark/internal/catalog"
	"github.com/storemark/storemark/internal/normalize"
	"github.com/storemark/storemark/internal/schema"
)

// stopWords are excluded from keyword extraction.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "this": {}, "that": {},
	"from": {}, "they": {}, "you": {}, "are": {}, "was": {}, "will": {},
	"have": {}, "has": {}, "had": {},
}

// fallbackDescription assembles a description from the product fields alone.
func fallbackDescription(p *catalog.Product, maxLength int) string {
	parts := make([]string, 0, 3)
	if p.Vendor != "" {
		parts = append(parts, p.Vendor)
	}
	parts = append(parts, p.Title)
	if p.ProductType != "" {
		parts = append(parts, "in "+p.ProductType)
	}
	return normalize.Truncate(strings.Join(parts, " "), maxLength)
}

// fallbackFAQ builds a two-entry FAQPage covering the product itself and a
// generic shipping question.
func fallbackFAQ(p *catalog.Product) schema.Document {
	answer := normalize.Truncate(normalize.StripMarkup(p.BodyHTML), 200)
	if answer == "" {
		answer = p.Title + schema.FallbackAnswerSuffix
	}
	return schema.BuildFAQPage([]schema.Document{
		schema.BuildQuestion("What is "+p.Title+"?", answer),
		schema.BuildQuestion(
			"Do you offer shipping?",
			"Yes, we offer shipping. Please check our shipping policy for details on delivery times and costs.",
		),
	})
}

// basicKeywords extracts distinct tokens of 3+ characters from the product's
// own text, preserving first-seen order.
func basicKeywords(p *catalog.Product, maxKeywords int) []string {
	var source []string
	source = append(source, strings.Fields(p.Title)...)
	source = append(source, strings.Fields(p.ProductType)...)
	source = append(source, p.Tags...)
	source = append(source, strings.Fields(p.Vendor)...)

	seen := make(map[string]struct{}, len(source))
	keywords := make([]string, 0, maxKeywords)
	for _, token := range source {
		token = strings.ToLower(strings.Trim(token, ".,;:!?()"))
		if len(token) < 3 {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}
