package schema

import (
	"time"

	"github.com/storemark/storemark/internal/catalog"
)

// DefaultPriceValidMonths is the price validity window applied when the
// caller does not configure one.
const DefaultPriceValidMonths = 6

// PriceValidUntil returns the offer expiry date, months from now, as a
// calendar date.
func PriceValidUntil(months int) string {
	if months <= 0 {
		months = DefaultPriceValidMonths
	}
	return time.Now().AddDate(0, 0, 30*months).Format("2006-01-02")
}

// BuildOffer constructs an Offer for one variant. The price string is
// carried verbatim; availability is a strict inventory > 0 test with no
// backorder or preorder distinction.
func BuildOffer(v catalog.Variant, shop *catalog.Shop, priceValidUntil string) Document {
	currency := shop.Currency
	if currency == "" {
		currency = "USD"
	}
	seller := shop.Name
	if seller == "" {
		seller = "Store"
	}

	offer := New(TypeOffer)
	offer["price"] = v.Price
	offer["priceCurrency"] = currency
	offer["availability"] = availabilityFor(v)
	offer["sku"] = v.SKU
	offer["priceValidUntil"] = priceValidUntil
	offer["seller"] = Document{
		"@type": TypeOrganization,
		"name":  seller,
	}
	return offer
}

func availabilityFor(v catalog.Variant) string {
	if v.InventoryQuantity > 0 {
		return AvailabilityInStock
	}
	return AvailabilityOutOfStock
}
