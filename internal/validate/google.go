package validate

import (
	"fmt"

	"github.com/storemark/storemark/internal/schema"
)

// GoogleResult reports Rich Results eligibility for one document.
// Eligibility is lost the moment any Google-required field is missing.
type GoogleResult struct {
	EligibleForRichResults bool     `json:"eligible_for_rich_results"`
	Errors                 []string `json:"errors"`
	Warnings               []string `json:"warnings"`
	SchemaType             string   `json:"schema_type"`
}

// googleRule is one entry of Google's rich-results requirements, stricter
// than the general schema.org rules.
type googleRule struct {
	required    []string
	recommended []string
}

var googleRules = map[string]googleRule{
	schema.TypeProduct: {
		required:    []string{"name", "image", "offers"},
		recommended: []string{"description", "brand", "sku", "aggregateRating"},
	},
	schema.TypeReview: {
		required:    []string{"reviewBody", "author", "reviewRating"},
		recommended: []string{"datePublished", "publisher"},
	},
	schema.TypeFAQPage: {
		required:    []string{"mainEntity"},
		recommended: []string{"name"},
	},
}

// Image dimension minimums Google documents for Product rich results. Not
// verifiable from a URL alone, so they surface as a warning.
const googleImageNote = "Google requires images of at least 160x90 pixels with 16:9, 4:3, or 1:1 aspect ratio; verify image dimensions manually"

// Google checks a document against Google's rich-results rule table. Types
// without a rule entry are eligible by default with a warning.
func Google(doc schema.Document) GoogleResult {
	schemaType := doc.Type()
	result := GoogleResult{EligibleForRichResults: true, SchemaType: schemaType}

	rule, ok := googleRules[schemaType]
	if !ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No Google rich-results rules for type %q", schemaType))
		return result
	}

	for _, field := range rule.required {
		if isEmpty(doc[field]) {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Missing Google-required field: %s", field))
			result.EligibleForRichResults = false
		}
	}
	for _, field := range rule.recommended {
		if isEmpty(doc[field]) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Google-recommended field missing: %s", field))
		}
	}

	if schemaType == schema.TypeProduct && !isEmpty(doc["image"]) {
		result.Warnings = append(result.Warnings, googleImageNote)
	}

	return result
}
