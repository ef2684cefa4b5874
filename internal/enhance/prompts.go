package enhance

import (
	"fmt"
	"strings"

	"github.com/storemark/storemark/internal/catalog"
	"github.com/storemark/storemark/internal/category"
	"github.com/storemark/storemark/internal/normalize"
)

const systemPrompt = "You are a helpful SEO and e-commerce expert."

func descriptionPrompt(p *catalog.Product, cleaned string) string {
	return fmt.Sprintf(`Improve this product description for SEO and user experience:

Original: %s
Product: %s
Category: %s
Brand: %s
Tags: %s

Requirements:
- 150-200 words
- Include relevant keywords naturally
- Focus on benefits and features
- Include call-to-action
- Optimize for search intent

Return only the improved description.`,
		normalize.Truncate(cleaned, 300), p.Title, p.ProductType, p.Vendor, joinTags(p, 5))
}

func synthesizeDescriptionPrompt(p *catalog.Product, maxLength int) string {
	return fmt.Sprintf(`Write a compelling product description for this product:

Name: %s
Brand: %s
Category: %s
Features: %s

Make it %d characters or less. Focus on benefits and key features.
Return only the description, nothing else.`,
		p.Title, p.Vendor, p.ProductType, joinTags(p, 5), maxLength)
}

func faqPrompt(p *catalog.Product) string {
	description := normalize.StripMarkup(p.BodyHTML)
	return fmt.Sprintf(`Generate 3-5 frequently asked questions for this product:

Product: %s
Description: %s
Category: %s
Brand: %s

Return as JSON: {"questions": [{"question": "...", "answer": "..."}]}`,
		p.Title, normalize.Truncate(description, 500), p.ProductType, p.Vendor)
}

func categorizePrompt(p *catalog.Product) string {
	description := normalize.StripMarkup(p.BodyHTML)
	return fmt.Sprintf(`Categorize this product into one of these categories:
%s

Product: %s
Type: %s
Description: %s
Tags: %s

Return only the category name, nothing else.`,
		strings.Join(category.Labels(), ", "), p.Title, p.ProductType,
		normalize.Truncate(description, 200), joinTags(p, 5))
}

func attributesPrompt(description string) string {
	return fmt.Sprintf(`Extract structured attributes from this product description:

%s

Return as JSON with these possible attributes:
{
    "material": "",
    "color": [],
    "size": [],
    "weight": "",
    "dimensions": "",
    "care_instructions": "",
    "features": [],
    "compatibility": [],
    "warranty": ""
}

Only include attributes explicitly mentioned.`, description)
}

func keywordsPrompt(p *catalog.Product) string {
	description := normalize.StripMarkup(p.BodyHTML)
	return fmt.Sprintf(`Extract 10-15 relevant SEO keywords for this product:

Product: %s
Description: %s
Category: %s

Return as comma-separated list focusing on:
- Product-specific terms
- Category keywords
- Feature-based keywords
- Use case keywords`,
		p.Title, normalize.Truncate(description, 300), p.ProductType)
}

func titlePrompt(p *catalog.Product, maxLength int) string {
	return fmt.Sprintf(`Optimize this product title for SEO. Keep it under %d characters.
Include the most important keywords while maintaining readability.

Original title: %s
Brand: %s
Category: %s

Return only the optimized title, nothing else.`,
		maxLength, p.Title, p.Vendor, p.ProductType)
}

func joinTags(p *catalog.Product, max int) string {
	tags := p.Tags
	if len(tags) > max {
		tags = tags[:max]
	}
	return strings.Join(tags, ", ")
}
