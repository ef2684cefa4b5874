package enhance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Response schemas for structured provider output. Parsed JSON is validated
// before acceptance; anything that fails validation triggers the
// deterministic fallback.
var (
	faqResponseSchema = jsonschema.MustCompileString("faq.json", `{
		"type": "object",
		"required": ["questions"],
		"properties": {
			"questions": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"question": {"type": "string"},
						"answer": {"type": "string"}
					}
				}
			}
		}
	}`)

	attributesResponseSchema = jsonschema.MustCompileString("attributes.json", `{
		"type": "object"
	}`)
)

// parseJSONResponse parses JSON from model output, tolerating markdown code
// fences and surrounding prose.
func parseJSONResponse(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty response")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONCandidate(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		var parsed any
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			normalized, mErr := json.Marshal(parsed)
			if mErr != nil {
				return nil, fmt.Errorf("failed to normalize response JSON: %w", mErr)
			}
			return normalized, nil
		}
	}

	return nil, fmt.Errorf("no parseable JSON in response")
}

// decodeValidated parses content and checks it against the given schema
// before decoding into out.
func decodeValidated(content string, s *jsonschema.Schema, out any) error {
	raw, err := parseJSONResponse(content)
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode response JSON: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("response does not match expected shape: %w", err)
	}

	return json.Unmarshal(raw, out)
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop first fence line.
	lines = lines[1:]
	// Drop trailing fence if present.
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func extractJSONCandidate(content string) string {
	trimmed := strings.TrimSpace(content)

	start := strings.IndexAny(trimmed, "{[")
	if start < 0 {
		return ""
	}

	closeChar := "}"
	if trimmed[start] == '[' {
		closeChar = "]"
	}

	end := strings.LastIndex(trimmed, closeChar)
	if end < start {
		return ""
	}
	return strings.TrimSpace(trimmed[start : end+1])
}
