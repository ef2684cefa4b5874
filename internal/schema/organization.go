package schema

import (
	"github.com/storemark/storemark/internal/catalog"
	"github.com/storemark/storemark/internal/normalize"
)

// socialProfiles maps known social handles to their canonical profile URL
// templates. Absent handles are skipped silently.
var socialProfiles = []struct {
	handle func(*catalog.Shop) string
	prefix string
}{
	{func(s *catalog.Shop) string { return s.Twitter }, "https://twitter.com/"},
	{func(s *catalog.Shop) string { return s.Facebook }, "https://facebook.com/"},
	{func(s *catalog.Shop) string { return s.Instagram }, "https://instagram.com/"},
	{func(s *catalog.Shop) string { return s.LinkedIn }, "https://linkedin.com/company/"},
}

// BuildOrganization constructs the Organization schema for the shop.
func BuildOrganization(shop *catalog.Shop) Document {
	doc := NewRoot(TypeOrganization)
	doc["name"] = shop.Name
	doc["url"] = shop.BaseURL()
	doc["description"] = normalize.StripMarkup(shop.Description)

	if contact := buildContactPoint(shop); contact != nil {
		doc["contactPoint"] = contact
	}
	if address := buildAddress(shop); address != nil {
		doc["address"] = address
	}
	if links := buildSocialLinks(shop); len(links) > 0 {
		doc["sameAs"] = links
	}

	return doc
}

// buildContactPoint combines phone and email into one ContactPoint. Returns
// nil when neither is present, so the key is omitted entirely.
func buildContactPoint(shop *catalog.Shop) Document {
	if shop.Phone == "" && shop.Email == "" {
		return nil
	}
	contact := New(TypeContactPoint)
	contact["contactType"] = "customer service"
	if shop.Phone != "" {
		contact["telephone"] = shop.Phone
	}
	if shop.Email != "" {
		contact["email"] = shop.Email
	}
	return contact
}

// buildAddress returns a PostalAddress when any postal field is present.
// Partial addresses are legal: missing fields default to empty strings
// rather than being omitted.
func buildAddress(shop *catalog.Shop) Document {
	if shop.Address1 == "" && shop.City == "" && shop.Province == "" &&
		shop.Zip == "" && shop.Country == "" {
		return nil
	}
	address := New(TypePostalAddress)
	address["streetAddress"] = shop.Address1
	address["addressLocality"] = shop.City
	address["addressRegion"] = shop.Province
	address["postalCode"] = shop.Zip
	address["addressCountry"] = shop.Country
	return address
}

func buildSocialLinks(shop *catalog.Shop) []string {
	var links []string
	for _, p := range socialProfiles {
		if handle := p.handle(shop); handle != "" {
			links = append(links, p.prefix+handle)
		}
	}
	return links
}
