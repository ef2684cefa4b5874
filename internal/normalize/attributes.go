package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Measurement is a numeric value with its unit as written in the source text.
type Measurement struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// materialVocabulary is the fixed set of recognized material names, matched
// case-insensitively as substrings. Order determines output order.
var materialVocabulary = []string{
	"cotton", "polyester", "silk", "wool", "linen", "leather", "suede",
	"denim", "cashmere", "bamboo", "organic cotton", "recycled polyester",
	"stainless steel", "aluminum", "brass", "copper", "silver", "gold",
	"plastic", "wood", "ceramic", "glass", "rubber",
}

var weightPattern = regexp.MustCompile(`weight[:\s]*(\d+(?:\.\d+)?)\s*(g|kg|lb|lbs|oz|ounces?|pounds?)`)

var dimensionPatterns = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"length", regexp.MustCompile(`length[:\s]*(\d+(?:\.\d+)?)\s*(cm|mm|in|inches?|ft|feet)`)},
	{"width", regexp.MustCompile(`width[:\s]*(\d+(?:\.\d+)?)\s*(cm|mm|in|inches?|ft|feet)`)},
	{"height", regexp.MustCompile(`height[:\s]*(\d+(?:\.\d+)?)\s*(cm|mm|in|inches?|ft|feet)`)},
	{"depth", regexp.MustCompile(`depth[:\s]*(\d+(?:\.\d+)?)\s*(cm|mm|in|inches?|ft|feet)`)},
	{"diameter", regexp.MustCompile(`diameter[:\s]*(\d+(?:\.\d+)?)\s*(cm|mm|in|inches?|ft|feet)`)},
}

// ExtractMaterials returns the title-cased material names mentioned in text,
// deduplicated, in vocabulary order.
func ExtractMaterials(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var found []string
	for _, material := range materialVocabulary {
		if !strings.Contains(lower, material) {
			continue
		}
		name := titleCase(material)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		found = append(found, name)
	}
	return found
}

// ExtractWeight returns the first weight mention in text, if any.
func ExtractWeight(text string) (Measurement, bool) {
	if text == "" {
		return Measurement{}, false
	}
	m := weightPattern.FindStringSubmatch(strings.ToLower(text))
	if m == nil {
		return Measurement{}, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Measurement{}, false
	}
	return Measurement{Value: value, Unit: m[2]}, true
}

// ExtractDimensions matches length/width/height/depth/diameter mentions
// independently. Dimensions not mentioned are absent from the result.
func ExtractDimensions(text string) map[string]Measurement {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	dims := make(map[string]Measurement)
	for _, d := range dimensionPatterns {
		m := d.pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		dims[d.name] = Measurement{Value: value, Unit: m[2]}
	}
	if len(dims) == 0 {
		return nil
	}
	return dims
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
