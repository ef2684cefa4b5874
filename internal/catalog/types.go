package catalog

import (
	"encoding/json"
	"strings"
)

// Product is a read-only catalog record fetched from the storefront API.
type Product struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	BodyHTML      string    `json:"body_html"`
	Vendor        string    `json:"vendor"`
	ProductType   string    `json:"product_type"`
	Handle        string    `json:"handle"`
	Tags          Tags      `json:"tags"`
	Images        []Image   `json:"images"`
	Variants      []Variant `json:"variants"`
	CollectionIDs []int64   `json:"collection_ids,omitempty"`
}

// Tags is a product tag list. The storefront API serializes tags as one
// comma-joined string; packages written by this tool carry a JSON array.
// Both shapes decode.
type Tags []string

// UnmarshalJSON accepts either a JSON array of strings or a comma-joined
// string, splitting and trimming the latter.
func (t *Tags) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var joined string
		if err := json.Unmarshal(data, &joined); err != nil {
			return err
		}
		*t = (*t)[:0]
		for _, tag := range strings.Split(joined, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				*t = append(*t, tag)
			}
		}
		return nil
	}
	return json.Unmarshal(data, (*[]string)(t))
}

// Image is a single product image.
type Image struct {
	Src string `json:"src"`
}

// Variant is a purchasable SKU-level option of a product.
type Variant struct {
	SKU               string  `json:"sku"`
	Title             string  `json:"title"`
	Price             string  `json:"price"`
	InventoryQuantity int     `json:"inventory_quantity"`
	Weight            float64 `json:"weight"`
	WeightUnit        string  `json:"weight_unit"`
}

// Shop holds storefront-level settings and contact details.
type Shop struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Domain      string `json:"domain"`
	Description string `json:"description"`
	Currency    string `json:"currency"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	Province    string `json:"province"`
	Zip         string `json:"zip"`
	Twitter     string `json:"twitter,omitempty"`
	Facebook    string `json:"facebook,omitempty"`
	Instagram   string `json:"instagram,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
}

// Collection is a curated grouping of products.
type Collection struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	BodyHTML  string `json:"body_html"`
	Handle    string `json:"handle"`
	SortOrder string `json:"sort_order"`
}

// BaseURL returns the canonical storefront URL for the shop.
func (s *Shop) BaseURL() string {
	return "https://" + s.Domain
}
