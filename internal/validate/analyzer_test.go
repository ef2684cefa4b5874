package validate

import (
	"log/slog"
	"strings"
	"testing"
)

const analyzerFixture = `<!DOCTYPE html>
<html>
<head>
<script type="application/ld+json">
{"@context": "https://schema.org", "@type": "Product", "name": "Gadget"}
</script>
<script type="application/ld+json">
{not valid json}
</script>
<script type="application/ld+json">
{"@context": "https://schema.org", "@type": "Organization", "name": "Acme", "url": "https://acme.example.com"}
</script>
</head>
<body>
<div itemscope itemtype="https://schema.org/Product"><span>x</span></div>
<p typeof="schema:Offer">y</p>
</body>
</html>`

func TestAnalyzeMarkup(t *testing.T) {
	analyzer := NewAnalyzer(slog.Default())
	analysis, err := analyzer.AnalyzeMarkup(strings.NewReader(analyzerFixture))
	if err != nil {
		t.Fatalf("AnalyzeMarkup failed: %v", err)
	}

	t.Run("malformed blocks skipped", func(t *testing.T) {
		if analysis.FoundSchemas != 2 {
			t.Errorf("FoundSchemas = %d, want 2", analysis.FoundSchemas)
		}
	})

	t.Run("microdata and rdfa counted", func(t *testing.T) {
		if analysis.MicrodataItems != 1 {
			t.Errorf("MicrodataItems = %d", analysis.MicrodataItems)
		}
		if analysis.RDFaItems != 1 {
			t.Errorf("RDFaItems = %d", analysis.RDFaItems)
		}
	})

	t.Run("completeness summary", func(t *testing.T) {
		c := analysis.Completeness
		if !c.HasProduct || !c.HasOrganization {
			t.Errorf("completeness = %+v", c)
		}
		if c.HasFAQ || c.HasBreadcrumb || c.HasReview {
			t.Errorf("unexpected types detected: %+v", c)
		}
		// The fixture Product is missing description, image, offers, brand.
		if !containsSubstring(c.MissingFields, "Product.offers") {
			t.Errorf("MissingFields = %v", c.MissingFields)
		}
	})

	t.Run("product flag set", func(t *testing.T) {
		if !analysis.HasProductSchema {
			t.Error("HasProductSchema should be true")
		}
	})
}

func TestAnalyzeMarkupEmptyPage(t *testing.T) {
	analyzer := NewAnalyzer(nil)
	analysis, err := analyzer.AnalyzeMarkup(strings.NewReader("<html><body>nothing</body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	if analysis.FoundSchemas != 0 || analysis.Completeness.TotalSchemas != 0 {
		t.Errorf("analysis = %+v", analysis)
	}
}
