package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/storemark/storemark/internal/schema"
)

const analyzerUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Analysis summarizes the structured data already present on a page.
type Analysis struct {
	URL              string            `json:"url"`
	FoundSchemas     int               `json:"found_schemas"`
	Schemas          []schema.Document `json:"schemas"`
	MicrodataItems   int               `json:"microdata_items"`
	RDFaItems        int               `json:"rdfa_items"`
	HasProductSchema bool              `json:"has_product_schema"`
	Completeness     Completeness      `json:"analysis"`
	Timestamp        time.Time         `json:"timestamp"`
}

// Completeness records which schema types a page already carries and which
// required fields its Product/Organization documents are missing.
type Completeness struct {
	HasProduct      bool     `json:"has_product"`
	HasOrganization bool     `json:"has_organization"`
	HasBreadcrumb   bool     `json:"has_breadcrumb"`
	HasFAQ          bool     `json:"has_faq"`
	HasReview       bool     `json:"has_review"`
	MissingFields   []string `json:"missing_fields"`
	TypesFound      []string `json:"schema_types_found"`
	TotalSchemas    int      `json:"total_schemas"`
}

// Analyzer inspects live pages for existing structured data.
type Analyzer struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAnalyzer creates a markup analyzer.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// AnalyzeURL fetches a page and analyzes its embedded markup.
func (a *Analyzer) AnalyzeURL(ctx context.Context, url string) (*Analysis, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", analyzerUserAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	analysis, err := a.AnalyzeMarkup(resp.Body)
	if err != nil {
		return nil, err
	}
	analysis.URL = url
	return analysis, nil
}

// AnalyzeMarkup parses an HTML document and extracts every embedded JSON-LD
// block. Malformed blocks are skipped with a logged warning. Microdata and
// RDFa presence is counted heuristically by attribute.
func (a *Analyzer) AnalyzeMarkup(r io.Reader) (*Analysis, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	analysis := &Analysis{Timestamp: time.Now().UTC()}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "script" && attrValue(n, "type") == "application/ld+json" {
				a.collectJSONLD(n, analysis)
			}
			if hasAttr(n, "itemscope") {
				analysis.MicrodataItems++
			}
			if hasAttr(n, "typeof") {
				analysis.RDFaItems++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	analysis.FoundSchemas = len(analysis.Schemas)
	analysis.Completeness = summarize(analysis.Schemas)
	analysis.HasProductSchema = analysis.Completeness.HasProduct
	return analysis, nil
}

func (a *Analyzer) collectJSONLD(n *html.Node, analysis *Analysis) {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	raw := strings.TrimSpace(sb.String())
	if raw == "" {
		return
	}

	var doc schema.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		a.logger.Warn("failed to parse JSON-LD script", "error", err)
		return
	}
	analysis.Schemas = append(analysis.Schemas, doc)
}

func summarize(schemas []schema.Document) Completeness {
	c := Completeness{TotalSchemas: len(schemas)}

	for _, doc := range schemas {
		schemaType := doc.Type()
		if schemaType != "" {
			c.TypesFound = append(c.TypesFound, schemaType)
		}

		switch schemaType {
		case schema.TypeProduct:
			c.HasProduct = true
			for _, field := range requiredProductFields {
				if _, ok := doc[field]; !ok {
					c.MissingFields = append(c.MissingFields, "Product."+field)
				}
			}
		case schema.TypeOrganization:
			c.HasOrganization = true
			for _, field := range requiredOrganizationFields {
				if _, ok := doc[field]; !ok {
					c.MissingFields = append(c.MissingFields, "Organization."+field)
				}
			}
		case schema.TypeBreadcrumbList:
			c.HasBreadcrumb = true
		case schema.TypeFAQPage:
			c.HasFAQ = true
		case schema.TypeReview, schema.TypeAggregateRating:
			c.HasReview = true
		}
	}

	return c
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}
