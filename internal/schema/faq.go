package schema

import (
	"github.com/storemark/storemark/internal/catalog"
	"github.com/storemark/storemark/internal/normalize"
)

// FallbackAnswerSuffix is the static answer used when a product has no
// description to derive one from.
const FallbackAnswerSuffix = " is available in our store."

// BuildFAQPage wraps question/answer entities into an FAQPage document.
func BuildFAQPage(entities []Document) Document {
	doc := NewRoot(TypeFAQPage)
	doc["mainEntity"] = entities
	return doc
}

// BuildQuestion constructs one Question entity with its accepted Answer.
func BuildQuestion(name, answerText string) Document {
	q := New(TypeQuestion)
	q["name"] = name
	q["acceptedAnswer"] = Document{
		"@type": TypeAnswer,
		"text":  answerText,
	}
	return q
}

// BuildBasicFAQ emits exactly one deterministic Q/A pair built from the
// product title and its truncated description, with a static fallback
// sentence if the description is empty.
func BuildBasicFAQ(p *catalog.Product) Document {
	description := normalize.StripMarkup(p.BodyHTML)

	answer := normalize.Truncate(description, 200)
	if answer == "" {
		answer = p.Title + FallbackAnswerSuffix
	}

	return BuildFAQPage([]Document{
		BuildQuestion("What is "+p.Title+"?", answer),
	})
}
