// Package enhance improves catalog content through a completion provider.
// Every operation is independently fallible and degrades to a deterministic
// substitute on any failure; enhancement errors never escape the adapter.
package enhance

import (
	"context"
	"errors"

	"github.com/storemark/storemark/internal/catalog"
	"github.com/storemark/storemark/internal/schema"
)

// ErrDisabled is returned by the no-op enhancer so callers fall back to
// their own deterministic paths.
var ErrDisabled = errors.New("enhancement disabled")

// Enhancer is the content-enhancement capability surface. Implementations
// either produce a usable value or an error meaning "no enhancement
// available"; they never abort generation.
type Enhancer interface {
	// EnhanceDescription rewrites a product description within maxLength.
	EnhanceDescription(ctx context.Context, original string, p *catalog.Product, maxLength int) (string, error)

	// GenerateFAQ produces an FAQPage document for the product.
	GenerateFAQ(ctx context.Context, p *catalog.Product) (schema.Document, error)

	// Categorize returns a category label for the product.
	Categorize(ctx context.Context, p *catalog.Product) (string, error)

	// ExtractAttributes pulls structured attributes from the description.
	ExtractAttributes(ctx context.Context, p *catalog.Product) (map[string]any, error)

	// GenerateKeywords returns up to maxKeywords search keywords.
	GenerateKeywords(ctx context.Context, p *catalog.Product, maxKeywords int) ([]string, error)

	// OptimizeTitle shortens a title to fit maxLength.
	OptimizeTitle(ctx context.Context, p *catalog.Product, maxLength int) (string, error)
}

// Noop is the enhancer used when AI features are disabled. Every call
// reports ErrDisabled.
type Noop struct{}

func (Noop) EnhanceDescription(context.Context, string, *catalog.Product, int) (string, error) {
	return "", ErrDisabled
}

func (Noop) GenerateFAQ(context.Context, *catalog.Product) (schema.Document, error) {
	return nil, ErrDisabled
}

func (Noop) Categorize(context.Context, *catalog.Product) (string, error) {
	return "", ErrDisabled
}

func (Noop) ExtractAttributes(context.Context, *catalog.Product) (map[string]any, error) {
	return nil, ErrDisabled
}

func (Noop) GenerateKeywords(context.Context, *catalog.Product, int) ([]string, error) {
	return nil, ErrDisabled
}

func (Noop) OptimizeTitle(context.Context, *catalog.Product, int) (string, error) {
	return "", ErrDisabled
}

// Verify interface
var _ Enhancer = Noop{}
