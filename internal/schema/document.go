// Package schema builds schema.org JSON-LD documents from catalog records.
// Documents are constructed once by typed builder functions and never
// mutated afterwards; validation operates on them as plain maps.
package schema

// Context is the schema.org vocabulary URI carried by every root document.
const Context = "https://schema.org"

// Document is a JSON-LD object. Every document with semantic meaning
// carries an @type from the closed vocabulary below; root documents also
// carry @context.
type Document map[string]any

// Schema.org types emitted by the builders.
const (
	TypeProduct           = "Product"
	TypeProductModel      = "ProductModel"
	TypeOrganization      = "Organization"
	TypeBreadcrumbList    = "BreadcrumbList"
	TypeFAQPage           = "FAQPage"
	TypeCollectionPage    = "CollectionPage"
	TypeWebSite           = "WebSite"
	TypeOffer             = "Offer"
	TypeBrand             = "Brand"
	TypeListItem          = "ListItem"
	TypeQuestion          = "Question"
	TypeAnswer            = "Answer"
	TypePostalAddress     = "PostalAddress"
	TypeContactPoint      = "ContactPoint"
	TypeQuantitativeValue = "QuantitativeValue"
	TypeAggregateRating   = "AggregateRating"
	TypeReview            = "Review"
	TypeImageObject       = "ImageObject"
)

// Availability sentinel URIs. Only InStock and OutOfStock are wired to
// inventory data; the remaining states exist in the vocabulary but no
// catalog field maps to them.
const (
	AvailabilityInStock      = Context + "/InStock"
	AvailabilityOutOfStock   = Context + "/OutOfStock"
	AvailabilityPreOrder     = Context + "/PreOrder"
	AvailabilityBackOrder    = Context + "/BackOrder"
	AvailabilityDiscontinued = Context + "/Discontinued"
)

// New returns a non-root document of the given type.
func New(schemaType string) Document {
	return Document{"@type": schemaType}
}

// NewRoot returns a root document carrying @context.
func NewRoot(schemaType string) Document {
	return Document{
		"@context": Context,
		"@type":    schemaType,
	}
}

// Type returns the document's @type, or "" when absent or not a string.
// Documents using the @graph form report the first typed graph entry.
func (d Document) Type() string {
	if t, ok := d["@type"].(string); ok {
		return t
	}
	if graph, ok := d["@graph"].([]any); ok {
		for _, item := range graph {
			if m, ok := item.(map[string]any); ok {
				if t, ok := m["@type"].(string); ok {
					return t
				}
			}
		}
	}
	return ""
}

// GetString returns the string value at key, or "".
func (d Document) GetString(key string) string {
	s, _ := d[key].(string)
	return s
}
