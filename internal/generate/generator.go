// Package generate runs the catalog-to-JSON-LD pipeline: fetch a catalog
// snapshot, build per-product schema documents, and assemble the output
// package consumed by validation and downstream tooling.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/storemark/storemark/internal/catalog"
	"github.com/storemark/storemark/internal/category"
	"github.com/storemark/storemark/internal/enhance"
	"github.com/storemark/storemark/internal/normalize"
	"github.com/storemark/storemark/internal/schema"
)

const descriptionMaxLength = 500

// Source is the catalog collaborator. catalog.Client satisfies it; tests
// substitute a fixture-backed implementation.
type Source interface {
	GetShopInfo(ctx context.Context) (*catalog.Shop, error)
	GetProducts(ctx context.Context, limit int) ([]catalog.Product, error)
	GetCollections(ctx context.Context) ([]catalog.Collection, error)
}

// Options controls what a generation run produces.
type Options struct {
	// MaxProducts caps the catalog fetch. Zero means no cap.
	MaxProducts int
	// IncludeCollections emits CollectionPage documents.
	IncludeCollections bool
	// IncludeFAQ emits a FAQPage per product.
	IncludeFAQ bool
	// PriceValidMonths sets the offer priceValidUntil window.
	PriceValidMonths int
}

// Package is the run output. Product entries preserve catalog fetch order.
type Package struct {
	Organization  schema.Document   `json:"organization"`
	Products      []ProductSchemas  `json:"products"`
	Collections   []schema.Document `json:"collections"`
	GeneratedAt   time.Time         `json:"generated_at"`
	ShopDomain    string            `json:"shop_domain"`
	TotalProducts int               `json:"total_products"`
	RunID         string            `json:"run_id"`
}

// ProductSchemas groups the documents generated for one product, keyed by
// schema name ("product", "breadcrumb", "faq").
type ProductSchemas struct {
	ID      int64                      `json:"id"`
	Handle  string                     `json:"handle"`
	Title   string                     `json:"title"`
	Schemas map[string]schema.Document `json:"schemas"`
}

// Generator orchestrates one run. It is not safe for concurrent use.
type Generator struct {
	source   Source
	enhancer enhance.Enhancer
	opts     Options
	logger   *slog.Logger
}

// NewGenerator creates a generator. A nil enhancer disables enhancement.
func NewGenerator(source Source, enhancer enhance.Enhancer, opts Options, logger *slog.Logger) (*Generator, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source is required")
	}
	if enhancer == nil {
		enhancer = enhance.Noop{}
	}
	if opts.PriceValidMonths <= 0 {
		opts.PriceValidMonths = schema.DefaultPriceValidMonths
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		source:   source,
		enhancer: enhancer,
		opts:     opts,
		logger:   logger,
	}, nil
}

// Run fetches the catalog snapshot and builds all schema documents. Fetch
// failures abort the run with no output; enhancement failures degrade per
// item and never abort.
func (g *Generator) Run(ctx context.Context) (*Package, error) {
	shop, err := g.source.GetShopInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shop info: %w", err)
	}

	collections, err := g.source.GetCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}

	products, err := g.source.GetProducts(ctx, g.opts.MaxProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	g.logger.Info("catalog snapshot fetched",
		"shop", shop.Domain,
		"products", len(products),
		"collections", len(collections))

	pkg := &Package{
		Organization:  schema.BuildOrganization(shop),
		Products:      make([]ProductSchemas, 0, len(products)),
		Collections:   []schema.Document{},
		GeneratedAt:   time.Now().UTC(),
		ShopDomain:    shop.Domain,
		TotalProducts: len(products),
		RunID:         uuid.NewString(),
	}

	for i := range products {
		p := &products[i]
		pkg.Products = append(pkg.Products, ProductSchemas{
			ID:      p.ID,
			Handle:  p.Handle,
			Title:   p.Title,
			Schemas: g.buildProductSchemas(ctx, p, shop, collections),
		})
	}

	if g.opts.IncludeCollections {
		for i := range collections {
			pkg.Collections = append(pkg.Collections, schema.BuildCollectionPage(&collections[i], shop))
		}
	}

	return pkg, nil
}

// buildProductSchemas builds every document for one product. Each
// enhancement call that fails falls back to the deterministic builder.
func (g *Generator) buildProductSchemas(ctx context.Context, p *catalog.Product, shop *catalog.Shop, collections []catalog.Collection) map[string]schema.Document {
	schemas := make(map[string]schema.Document, 3)

	description := g.describe(ctx, p)
	productOpts := schema.ProductOptions{
		Description:      description,
		Category:         g.categorize(ctx, p),
		PriceValidMonths: g.opts.PriceValidMonths,
		Keywords:         g.keywords(ctx, p),
	}
	schemas["product"] = schema.BuildProduct(p, shop, productOpts)
	schemas["breadcrumb"] = schema.BuildBreadcrumb(p, collections, shop)

	if g.opts.IncludeFAQ {
		schemas["faq"] = g.faq(ctx, p)
	}

	return schemas
}

// describe returns the enhanced description, or the cleaned body untouched
// when enhancement is unavailable. The length budget applies only to
// provider rewrites.
func (g *Generator) describe(ctx context.Context, p *catalog.Product) string {
	enhanced, err := g.enhancer.EnhanceDescription(ctx, p.BodyHTML, p, descriptionMaxLength)
	if err != nil {
		return normalize.StripMarkup(p.BodyHTML)
	}
	return enhanced
}

func (g *Generator) categorize(ctx context.Context, p *catalog.Product) string {
	label, err := g.enhancer.Categorize(ctx, p)
	if err != nil {
		return category.Categorize(p)
	}
	return label
}

func (g *Generator) keywords(ctx context.Context, p *catalog.Product) []string {
	keywords, err := g.enhancer.GenerateKeywords(ctx, p, 15)
	if err != nil {
		return nil
	}
	return keywords
}

func (g *Generator) faq(ctx context.Context, p *catalog.Product) schema.Document {
	doc, err := g.enhancer.GenerateFAQ(ctx, p)
	if err != nil {
		return schema.BuildBasicFAQ(p)
	}
	return doc
}
