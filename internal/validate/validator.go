// Package validate checks JSON-LD documents for schema.org structural
// compliance and Google Rich Results eligibility. Every validator is a pure
// function of its input document.
package validate

import (
	"fmt"
	"regexp"

	"github.com/storemark/storemark/internal/schema"
)

// Result is the outcome of validating one document. Errors make the
// document invalid; warnings do not.
type Result struct {
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors"`
	Warnings   []string `json:"warnings"`
	SchemaType string   `json:"schema_type"`
}

func (r *Result) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Valid = false
}

func (r *Result) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

var (
	requiredProductFields      = []string{"name", "description", "image", "offers", "brand"}
	recommendedProductFields   = []string{"brand", "sku", "description", "category"}
	requiredOrganizationFields = []string{"name", "url"}
	recommendedOrgFields       = []string{"description", "contactPoint", "address", "sameAs"}
	requiredOfferFields        = []string{"price", "priceCurrency", "availability"}
)

var urlPattern = regexp.MustCompile(`(?i)^https?://(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|localhost|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})(?::\d+)?(?:/?|[/?]\S+)$`)

// Product validates a Product document: type tag, required fields, offer
// substructure (errors), and image shape (warnings only).
func Product(doc schema.Document) Result {
	result := Result{Valid: true, SchemaType: schema.TypeProduct}

	if doc.Type() != schema.TypeProduct {
		result.addError("Schema type must be 'Product'")
	}

	for _, field := range requiredProductFields {
		if isEmpty(doc[field]) {
			result.addError("Missing required field: %s", field)
		}
	}

	if offers, ok := doc["offers"]; ok {
		validateOffers(offers, &result)
	}
	if images, ok := doc["image"]; ok {
		validateImages(images, &result)
	}

	for _, field := range recommendedProductFields {
		if isEmpty(doc[field]) {
			result.addWarning("Recommended field missing: %s", field)
		}
	}

	return result
}

// Organization validates an Organization document.
func Organization(doc schema.Document) Result {
	result := Result{Valid: true, SchemaType: schema.TypeOrganization}

	if doc.Type() != schema.TypeOrganization {
		result.addError("Schema type must be 'Organization'")
	}

	for _, field := range requiredOrganizationFields {
		if isEmpty(doc[field]) {
			result.addError("Missing required field: %s", field)
		}
	}

	if raw, ok := doc["url"]; ok && !isEmpty(raw) {
		// A wrong-shaped url (number, object) is as invalid as a bad string.
		if url, isString := raw.(string); !isString || !IsValidURL(url) {
			result.addError("Invalid URL format")
		}
	}

	for _, field := range recommendedOrgFields {
		if _, ok := doc[field]; !ok {
			result.addWarning("Recommended field missing: %s", field)
		}
	}

	return result
}

// Breadcrumb validates a BreadcrumbList document. Each malformed list item
// yields its own itemized error.
func Breadcrumb(doc schema.Document) Result {
	result := Result{Valid: true, SchemaType: schema.TypeBreadcrumbList}

	if doc.Type() != schema.TypeBreadcrumbList {
		result.addError("Schema type must be 'BreadcrumbList'")
	}

	raw, ok := doc["itemListElement"]
	if !ok {
		result.addError("Missing required field: itemListElement")
		return result
	}

	items := asList(raw)
	if len(items) == 0 {
		result.addError("itemListElement must be a non-empty list")
		return result
	}

	for i, entry := range items {
		item, ok := asObject(entry)
		if !ok {
			result.addError("Breadcrumb item %d must be an object", i+1)
			continue
		}
		if typeOf(item) != schema.TypeListItem {
			result.addError("Breadcrumb item %d must have @type 'ListItem'", i+1)
		}
		if _, ok := item["position"]; !ok {
			result.addError("Breadcrumb item %d missing position", i+1)
		}
		if _, ok := item["name"]; !ok {
			result.addError("Breadcrumb item %d missing name", i+1)
		}
	}

	return result
}

// FAQ validates an FAQPage document including each Question's acceptedAnswer
// sub-object.
func FAQ(doc schema.Document) Result {
	result := Result{Valid: true, SchemaType: schema.TypeFAQPage}

	if doc.Type() != schema.TypeFAQPage {
		result.addError("Schema type must be 'FAQPage'")
	}

	raw, ok := doc["mainEntity"]
	if !ok {
		result.addError("Missing required field: mainEntity")
		return result
	}

	entities := asList(raw)
	if len(entities) == 0 {
		result.addError("mainEntity must be a non-empty list")
		return result
	}

	for i, raw := range entities {
		entity, ok := asObject(raw)
		if !ok {
			result.addError("FAQ item %d must be an object", i+1)
			continue
		}
		if typeOf(entity) != schema.TypeQuestion {
			result.addError("FAQ item %d must have @type 'Question'", i+1)
		}
		if _, ok := entity["name"]; !ok {
			result.addError("FAQ item %d missing question name", i+1)
		}

		rawAnswer, ok := entity["acceptedAnswer"]
		if !ok {
			result.addError("FAQ item %d missing acceptedAnswer", i+1)
			continue
		}
		answer, ok := asObject(rawAnswer)
		switch {
		case !ok:
			result.addError("FAQ item %d acceptedAnswer must be an object", i+1)
		case typeOf(answer) != schema.TypeAnswer:
			result.addError("FAQ item %d acceptedAnswer must have @type 'Answer'", i+1)
		default:
			if _, ok := answer["text"]; !ok {
				result.addError("FAQ item %d acceptedAnswer missing text", i+1)
			}
		}
	}

	return result
}

// ForType dispatches to the validator matching the document's @type.
// Unrecognized types are reported invalid.
func ForType(doc schema.Document) Result {
	switch doc.Type() {
	case schema.TypeProduct:
		return Product(doc)
	case schema.TypeOrganization:
		return Organization(doc)
	case schema.TypeBreadcrumbList:
		return Breadcrumb(doc)
	case schema.TypeFAQPage:
		return FAQ(doc)
	case schema.TypeCollectionPage:
		// No structural rules beyond the type tag.
		return Result{Valid: true, SchemaType: schema.TypeCollectionPage}
	}
	result := Result{Valid: true, SchemaType: doc.Type()}
	result.addError("Unsupported schema type: %q", doc.Type())
	return result
}

// validateOffers accepts a single offer object or a list of them. Offer
// problems are errors, not warnings.
func validateOffers(raw any, result *Result) {
	offers := asList(raw)
	if offers == nil {
		offers = []any{raw}
	}

	for i, entry := range offers {
		offer, ok := asObject(entry)
		if !ok {
			result.addError("Offer %d must be an object", i+1)
			continue
		}
		if typeOf(offer) != schema.TypeOffer {
			result.addError("Offer %d must have @type 'Offer'", i+1)
		}
		for _, field := range requiredOfferFields {
			if _, ok := offer[field]; !ok {
				result.addError("Offer %d missing required field: %s", i+1, field)
			}
		}
		if availability, ok := offer["availability"].(string); ok {
			if !isSchemaOrgURI(availability) {
				result.addError("Offer %d availability should use schema.org URL", i+1)
			}
		}
	}
}

// validateImages only ever produces warnings.
func validateImages(raw any, result *Result) {
	images := asList(raw)
	if images == nil {
		if raw == nil {
			images = []any{}
		} else {
			images = []any{raw}
		}
	}

	if len(images) == 0 {
		result.addWarning("No product images found")
		return
	}

	for i, entry := range images {
		switch img := entry.(type) {
		case string:
			if !IsValidURL(img) {
				result.addWarning("Image %d has invalid URL format", i+1)
			}
		case map[string]any, schema.Document:
			obj, _ := asObject(entry)
			if t := typeOf(obj); t != "" && t != schema.TypeImageObject {
				result.addWarning("Image %d should have @type 'ImageObject'", i+1)
			}
			if _, ok := obj["url"]; !ok {
				result.addWarning("Image %d missing URL", i+1)
			}
		}
	}
}

// IsValidURL reports whether s looks like an absolute http(s) URL.
func IsValidURL(s string) bool {
	return s != "" && urlPattern.MatchString(s)
}

func isSchemaOrgURI(s string) bool {
	return len(s) > len("https://schema.org/") && s[:len("https://schema.org/")] == "https://schema.org/"
}

// isEmpty mirrors truthiness checks on decoded JSON values: absent, nil,
// empty string, empty list, and empty object all count as missing.
func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case schema.Document:
		return len(val) == 0
	}
	return false
}

// asList normalizes list-valued fields regardless of whether they came from
// a builder ([]schema.Document) or a JSON decode ([]any).
func asList(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case []schema.Document:
		out := make([]any, len(val))
		for i, d := range val {
			out[i] = d
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, d := range val {
			out[i] = d
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	}
	return nil
}

func asObject(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, true
	case schema.Document:
		return val, true
	}
	return nil, false
}

func typeOf(obj map[string]any) string {
	t, _ := obj["@type"].(string)
	return t
}
