package schema

import (
	"github.com/storemark/storemark/internal/catalog"
	"github.com/storemark/storemark/internal/normalize"
)

// BuildCollectionPage constructs the CollectionPage schema for a collection,
// referencing the shop's WebSite through isPartOf.
func BuildCollectionPage(c *catalog.Collection, shop *catalog.Shop) Document {
	doc := NewRoot(TypeCollectionPage)
	doc["name"] = c.Title
	doc["description"] = normalize.StripMarkup(c.BodyHTML)
	doc["url"] = shop.BaseURL() + "/collections/" + c.Handle
	doc["isPartOf"] = Document{
		"@type": TypeWebSite,
		"name":  shop.Name,
		"url":   shop.BaseURL(),
	}
	return doc
}
