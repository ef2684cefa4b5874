// Package category maps raw catalog taxonomy, tags, and titles onto a fixed
// category vocabulary using an ordered keyword table.
package category

import (
	"strings"

	"github.com/storemark/storemark/internal/catalog"
)

// Other is the sentinel returned when no keyword matches.
const Other = "Other"

// Mapping associates a keyword with its category label.
type Mapping struct {
	Keyword  string
	Category string
}

// Table is scanned in order; the first keyword whose substring appears in
// the product text wins. The ordering is load-bearing: it defines tie-break
// precedence, so this stays a slice rather than a map.
var Table = []Mapping{
	{"apparel", "Apparel & Accessories"},
	{"clothing", "Apparel & Accessories"},
	{"shoes", "Apparel & Accessories"},
	{"accessories", "Apparel & Accessories"},
	{"jewelry", "Apparel & Accessories"},
	{"bags", "Apparel & Accessories"},
	{"electronics", "Electronics"},
	{"computers", "Electronics"},
	{"phones", "Electronics"},
	{"tablets", "Electronics"},
	{"audio", "Electronics"},
	{"cameras", "Electronics"},
	{"home", "Home & Garden"},
	{"furniture", "Home & Garden"},
	{"decor", "Home & Garden"},
	{"kitchen", "Home & Garden"},
	{"appliances", "Home & Garden"},
	{"garden", "Home & Garden"},
	{"beauty", "Health & Beauty"},
	{"cosmetics", "Health & Beauty"},
	{"skincare", "Health & Beauty"},
	{"health", "Health & Beauty"},
	{"wellness", "Health & Beauty"},
	{"supplements", "Health & Beauty"},
	{"books", "Media"},
	{"movies", "Media"},
	{"music", "Media"},
	{"games", "Toys & Games"},
	{"food", "Food & Beverages"},
	{"beverages", "Food & Beverages"},
	{"drinks", "Food & Beverages"},
	{"snacks", "Food & Beverages"},
	{"sports", "Sports & Recreation"},
	{"fitness", "Sports & Recreation"},
	{"outdoor", "Sports & Recreation"},
	{"recreation", "Sports & Recreation"},
	{"automotive", "Automotive"},
	{"car", "Automotive"},
	{"motorcycle", "Automotive"},
	{"parts", "Automotive"},
	{"toys", "Toys & Games"},
	{"baby", "Baby & Kids"},
	{"kids", "Baby & Kids"},
	{"children", "Baby & Kids"},
	{"pet", "Pet Supplies"},
	{"pets", "Pet Supplies"},
	{"office", "Office & Business"},
	{"business", "Office & Business"},
	{"industrial", "Industrial & Scientific"},
}

var knownLabels = buildLabelSet()

func buildLabelSet() map[string]struct{} {
	labels := make(map[string]struct{}, len(Table))
	for _, m := range Table {
		labels[m.Category] = struct{}{}
	}
	return labels
}

// Categorize returns a label from the fixed vocabulary, or Other. It is a
// total function: it never fails.
func Categorize(p *catalog.Product) string {
	return CategorizeText(p.ProductType, p.Tags, p.Title)
}

// CategorizeText scans the keyword table against a lowercase concatenation
// of the given fields.
func CategorizeText(productType string, tags []string, title string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(productType))
	for _, tag := range tags {
		b.WriteByte(' ')
		b.WriteString(strings.ToLower(tag))
	}
	b.WriteByte(' ')
	b.WriteString(strings.ToLower(title))
	text := b.String()

	for _, m := range Table {
		if strings.Contains(text, m.Keyword) {
			return m.Category
		}
	}
	return Other
}

// IsKnownLabel reports whether label is one of the table's category labels.
// Other is not a known label.
func IsKnownLabel(label string) bool {
	_, ok := knownLabels[label]
	return ok
}

// Labels returns the distinct category labels in table order.
func Labels() []string {
	seen := make(map[string]struct{}, len(knownLabels))
	var labels []string
	for _, m := range Table {
		if _, ok := seen[m.Category]; ok {
			continue
		}
		seen[m.Category] = struct{}{}
		labels = append(labels, m.Category)
	}
	return labels
}
