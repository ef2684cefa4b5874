package schema

import (
	"github.com/storemark/storemark/internal/catalog"
)

// BuildBreadcrumb constructs the BreadcrumbList for a product. The trail
// always starts with Home at position 1 and ends with the product; when the
// product belongs to a supplied collection, the first match by collection-
// list order inserts one collection entry in between. Positions are
// sequential with no gaps.
func BuildBreadcrumb(p *catalog.Product, collections []catalog.Collection, shop *catalog.Shop) Document {
	base := shop.BaseURL()

	items := []Document{
		listItem(1, "Home", base),
	}

	if match, ok := firstMatchingCollection(p, collections); ok {
		items = append(items, listItem(len(items)+1, match.Title, base+"/collections/"+match.Handle))
	}

	items = append(items, listItem(len(items)+1, p.Title, base+"/products/"+p.Handle))

	doc := NewRoot(TypeBreadcrumbList)
	doc["itemListElement"] = items
	return doc
}

// firstMatchingCollection scans the supplied collection list in order and
// returns the first one the product belongs to. First match wins; no
// attempt is made to pick a "most specific" collection.
func firstMatchingCollection(p *catalog.Product, collections []catalog.Collection) (catalog.Collection, bool) {
	if len(p.CollectionIDs) == 0 || len(collections) == 0 {
		return catalog.Collection{}, false
	}

	member := make(map[int64]bool, len(p.CollectionIDs))
	for _, id := range p.CollectionIDs {
		member[id] = true
	}
	for _, c := range collections {
		if member[c.ID] {
			return c, true
		}
	}
	return catalog.Collection{}, false
}

func listItem(position int, name, item string) Document {
	li := New(TypeListItem)
	li["position"] = position
	li["name"] = name
	li["item"] = item
	return li
}
