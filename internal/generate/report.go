package generate

import (
	"fmt"

	"github.com/storemark/storemark/internal/schema"
	"github.com/storemark/storemark/internal/validate"
)

// Report is the validation outcome for a whole package. Results are keyed
// "{handle}/{schema-name}" for products, "organization" and
// "collection/{name}" otherwise.
type Report struct {
	Results map[string]validate.Result       `json:"results"`
	Google  map[string]validate.GoogleResult `json:"google,omitempty"`
	Summary Summary                          `json:"summary"`
}

// Summary aggregates counts across all validated documents.
type Summary struct {
	TotalValid    int `json:"total_valid"`
	TotalInvalid  int `json:"total_invalid"`
	TotalWarnings int `json:"total_warnings"`
	TotalErrors   int `json:"total_errors"`
}

// ValidateAll validates every document in the package. Validation never
// aborts; invalid documents are data in the report. When withGoogle is set,
// documents with a Google rule entry also get a rich-results verdict.
func ValidateAll(pkg *Package, withGoogle bool) *Report {
	report := &Report{Results: make(map[string]validate.Result)}
	if withGoogle {
		report.Google = make(map[string]validate.GoogleResult)
	}

	add := func(key string, doc schema.Document) {
		result := validate.ForType(doc)
		report.Results[key] = result
		report.Summary.TotalErrors += len(result.Errors)
		report.Summary.TotalWarnings += len(result.Warnings)
		if result.Valid {
			report.Summary.TotalValid++
		} else {
			report.Summary.TotalInvalid++
		}

		if withGoogle {
			switch doc.Type() {
			case schema.TypeProduct, schema.TypeReview, schema.TypeFAQPage:
				report.Google[key] = validate.Google(doc)
			}
		}
	}

	if pkg.Organization != nil {
		add("organization", pkg.Organization)
	}
	for _, p := range pkg.Products {
		for name, doc := range p.Schemas {
			add(fmt.Sprintf("%s/%s", p.Handle, name), doc)
		}
	}
	for i, doc := range pkg.Collections {
		name := doc.GetString("name")
		if name == "" {
			name = fmt.Sprintf("%d", i+1)
		}
		add("collection/"+name, doc)
	}

	return report
}
