package schema

import (
	"github.com/storemark/storemark/internal/catalog"
)

// ProductOptions carries pre-computed inputs into the product builder. The
// generator resolves enhancement and categorization before calling so the
// builder stays a pure transform.
type ProductOptions struct {
	// Description is the normalized (optionally enhanced) body text.
	Description string
	// Category is the categorizer output.
	Category string
	// PriceValidMonths is the offer validity window (default 6).
	PriceValidMonths int
	// Rating, when non-nil, becomes the aggregateRating field. Absence of
	// rating data omits the field entirely.
	Rating Document
	// Keywords, when non-empty, become the keywords field.
	Keywords []string
}

// BuildProduct constructs the Product schema for a catalog product.
func BuildProduct(p *catalog.Product, shop *catalog.Shop, opts ProductOptions) Document {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, img.Src)
	}

	validUntil := PriceValidUntil(opts.PriceValidMonths)
	offers := make([]Document, 0, len(p.Variants))
	for _, v := range p.Variants {
		offers = append(offers, BuildOffer(v, shop, validUntil))
	}

	doc := NewRoot(TypeProduct)
	doc["name"] = p.Title
	doc["description"] = opts.Description
	doc["image"] = images
	doc["url"] = shop.BaseURL() + "/products/" + p.Handle
	doc["brand"] = Document{
		"@type": TypeBrand,
		"name":  brandName(p, shop),
	}
	doc["sku"] = productSKU(p)
	doc["offers"] = offers
	doc["category"] = opts.Category

	if opts.Rating != nil {
		doc["aggregateRating"] = opts.Rating
	}
	if len(opts.Keywords) > 0 {
		doc["keywords"] = opts.Keywords
	}

	// Variant listing only makes sense for variable products.
	if len(p.Variants) > 1 {
		doc["hasVariant"] = buildVariantModels(p.Variants)
	}

	for k, v := range extraProperties(p) {
		doc[k] = v
	}

	return doc
}

// brandName prefers the vendor, falling back to the shop name.
func brandName(p *catalog.Product, shop *catalog.Shop) string {
	if p.Vendor != "" {
		return p.Vendor
	}
	if shop.Name != "" {
		return shop.Name
	}
	return "Unknown"
}

// productSKU takes the first variant's SKU, falling back to the handle.
func productSKU(p *catalog.Product) string {
	if len(p.Variants) > 0 && p.Variants[0].SKU != "" {
		return p.Variants[0].SKU
	}
	return p.Handle
}

// buildVariantModels mirrors a minimal offer per variant.
func buildVariantModels(variants []catalog.Variant) []Document {
	models := make([]Document, 0, len(variants))
	for _, v := range variants {
		model := New(TypeProductModel)
		model["name"] = v.Title
		model["sku"] = v.SKU
		model["offers"] = Document{
			"@type":        TypeOffer,
			"price":        v.Price,
			"availability": availabilityFor(v),
		}
		models = append(models, model)
	}
	return models
}

// extraProperties merges additional schema.org fields extractable from the
// first variant.
func extraProperties(p *catalog.Product) Document {
	props := Document{}
	if len(p.Variants) > 0 && p.Variants[0].Weight > 0 {
		unit := p.Variants[0].WeightUnit
		if unit == "" {
			unit = "g"
		}
		props["weight"] = Document{
			"@type":    TypeQuantitativeValue,
			"value":    p.Variants[0].Weight,
			"unitCode": unit,
		}
	}
	return props
}

// BuildRating constructs an AggregateRating document from review totals.
// Returns nil when there are no reviews, so the field is simply omitted.
func BuildRating(averageRating string, reviewCount int) Document {
	if reviewCount <= 0 {
		return nil
	}
	doc := NewRoot(TypeAggregateRating)
	doc["ratingValue"] = averageRating
	doc["reviewCount"] = reviewCount
	doc["bestRating"] = "5"
	doc["worstRating"] = "1"
	return doc
}
