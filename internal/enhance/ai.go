package enhance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/storemark/storemark/internal/catalog"
	"github.com/storemark/storemark/internal/category"
	"github.com/storemark/storemark/internal/normalize"
	"github.com/storemark/storemark/internal/providers"
	"github.com/storemark/storemark/internal/schema"
)

const (
	// minOriginalLength below which a description is synthesized instead
	// of rewritten.
	minOriginalLength = 10

	// minEnhancedLength below which a provider rewrite is rejected.
	minEnhancedLength = 20

	// minAttributeSourceLength below which attribute extraction is skipped.
	minAttributeSourceLength = 50

	// maxFAQEntities caps the accepted question count per product.
	maxFAQEntities = 5

	requestTimeout = 30 * time.Second
)

// refusalMarker flags provider responses that declined the task.
const refusalMarker = "I cannot"

// AIConfig configures the AI enhancer.
type AIConfig struct {
	Client providers.Client
	// Limiter paces provider calls. One limiter must be shared process-wide
	// since the provider quota is global.
	Limiter *providers.RateLimiter
	Logger  *slog.Logger
}

// AIEnhancer implements Enhancer on top of a completion provider. Each
// operation degrades to a deterministic substitute on any provider failure,
// malformed response, timeout, or empty content; callers never see an
// enhancement error.
type AIEnhancer struct {
	client  providers.Client
	limiter *providers.RateLimiter
	logger  *slog.Logger
}

// NewAIEnhancer creates an AI enhancer.
func NewAIEnhancer(cfg AIConfig) (*AIEnhancer, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("completion client is required")
	}
	if cfg.Limiter == nil {
		cfg.Limiter = providers.NewRateLimiter(60)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AIEnhancer{
		client:  cfg.Client,
		limiter: cfg.Limiter,
		logger:  logger,
	}, nil
}

// EnhanceDescription rewrites the original description for SEO. Originals
// shorter than 10 characters are synthesized from product context instead.
// Any rejection falls back to the truncated cleaned original.
func (e *AIEnhancer) EnhanceDescription(ctx context.Context, original string, p *catalog.Product, maxLength int) (string, error) {
	if len(strings.TrimSpace(original)) < minOriginalLength {
		return e.synthesizeDescription(ctx, p, maxLength), nil
	}

	cleaned := normalize.StripMarkup(original)
	fallback := normalize.Truncate(cleaned, maxLength)

	content, err := e.complete(ctx, descriptionPrompt(p, cleaned), 250)
	if err != nil {
		e.logger.Warn("description enhancement failed", "product", p.Handle, "error", err)
		return fallback, nil
	}

	enhanced := normalize.Truncate(strings.TrimSpace(content), maxLength)
	if len(enhanced) < minEnhancedLength || strings.Contains(enhanced, refusalMarker) {
		return fallback, nil
	}
	return enhanced, nil
}

// synthesizeDescription generates a description when the product has none.
func (e *AIEnhancer) synthesizeDescription(ctx context.Context, p *catalog.Product, maxLength int) string {
	content, err := e.complete(ctx, synthesizeDescriptionPrompt(p, maxLength), 150)
	if err == nil {
		content = strings.TrimSpace(content)
		if len(content) >= minEnhancedLength {
			return normalize.Truncate(content, maxLength)
		}
	} else {
		e.logger.Warn("description synthesis failed", "product", p.Handle, "error", err)
	}

	return fallbackDescription(p, maxLength)
}

// GenerateFAQ requests 3-5 question/answer pairs as structured JSON. Pairs
// missing either side are dropped; parse failure or zero valid entities
// falls back to a two-entry deterministic FAQ.
func (e *AIEnhancer) GenerateFAQ(ctx context.Context, p *catalog.Product) (schema.Document, error) {
	content, err := e.complete(ctx, faqPrompt(p), 400)
	if err != nil {
		e.logger.Warn("FAQ generation failed", "product", p.Handle, "error", err)
		return fallbackFAQ(p), nil
	}

	var parsed struct {
		Questions []struct {
			Question string `json:"question"`
			Answer   string `json:"answer"`
		} `json:"questions"`
	}
	if err := decodeValidated(content, faqResponseSchema, &parsed); err != nil {
		e.logger.Warn("FAQ response rejected", "product", p.Handle, "error", err)
		return fallbackFAQ(p), nil
	}

	entities := make([]schema.Document, 0, maxFAQEntities)
	for _, q := range parsed.Questions {
		if q.Question == "" || q.Answer == "" {
			continue
		}
		entities = append(entities, schema.BuildQuestion(q.Question, q.Answer))
		if len(entities) == maxFAQEntities {
			break
		}
	}
	if len(entities) == 0 {
		return fallbackFAQ(p), nil
	}

	return schema.BuildFAQPage(entities), nil
}

// Categorize tries the deterministic keyword table first; the provider is
// consulted only for unknown products, and its answer is accepted only when
// it exactly matches a known label.
func (e *AIEnhancer) Categorize(ctx context.Context, p *catalog.Product) (string, error) {
	basic := category.Categorize(p)
	if basic != category.Other {
		return basic, nil
	}

	content, err := e.complete(ctx, categorizePrompt(p), 50)
	if err != nil {
		e.logger.Warn("categorization failed", "product", p.Handle, "error", err)
		return basic, nil
	}

	label := strings.TrimSpace(content)
	if category.IsKnownLabel(label) {
		return label, nil
	}
	return basic, nil
}

// ExtractAttributes requests a fixed attribute shape from descriptions of
// at least 50 characters. Falsy values are dropped; any failure yields an
// empty mapping, never an error.
func (e *AIEnhancer) ExtractAttributes(ctx context.Context, p *catalog.Product) (map[string]any, error) {
	description := normalize.StripMarkup(p.BodyHTML)
	if len(description) < minAttributeSourceLength {
		return map[string]any{}, nil
	}

	content, err := e.complete(ctx, attributesPrompt(description), 300)
	if err != nil {
		e.logger.Warn("attribute extraction failed", "product", p.Handle, "error", err)
		return map[string]any{}, nil
	}

	var attributes map[string]any
	if err := decodeValidated(content, attributesResponseSchema, &attributes); err != nil {
		e.logger.Warn("attribute response rejected", "product", p.Handle, "error", err)
		return map[string]any{}, nil
	}

	for k, v := range attributes {
		if isFalsy(v) {
			delete(attributes, k)
		}
	}
	return attributes, nil
}

// GenerateKeywords requests a comma-separated keyword list. Entries are
// lower-cased, trimmed, and dropped when 2 characters or shorter; failure
// falls back to token extraction from the product's own text.
func (e *AIEnhancer) GenerateKeywords(ctx context.Context, p *catalog.Product, maxKeywords int) ([]string, error) {
	content, err := e.complete(ctx, keywordsPrompt(p), 200)
	if err != nil {
		e.logger.Warn("keyword generation failed", "product", p.Handle, "error", err)
		return basicKeywords(p, maxKeywords), nil
	}

	var keywords []string
	for _, k := range strings.Split(content, ",") {
		k = strings.ToLower(strings.TrimSpace(k))
		if len(k) > 2 {
			keywords = append(keywords, k)
		}
		if len(keywords) == maxKeywords {
			break
		}
	}
	if len(keywords) == 0 {
		return basicKeywords(p, maxKeywords), nil
	}
	return keywords, nil
}

// OptimizeTitle is a no-op when the title already fits. A provider rewrite
// is accepted only when it respects the budget; otherwise the original is
// truncated.
func (e *AIEnhancer) OptimizeTitle(ctx context.Context, p *catalog.Product, maxLength int) (string, error) {
	if len(p.Title) <= maxLength {
		return p.Title, nil
	}

	content, err := e.complete(ctx, titlePrompt(p, maxLength), 100)
	if err == nil {
		optimized := strings.TrimSpace(content)
		if optimized != "" && len(optimized) <= maxLength {
			return optimized, nil
		}
	} else {
		e.logger.Warn("title optimization failed", "product", p.Handle, "error", err)
	}

	return normalize.Truncate(p.Title, maxLength), nil
}

// complete paces and dispatches one provider call. The limiter is consulted
// before dispatch; a rate-limited failure drains the shared bucket so other
// callers back off too.
func (e *AIEnhancer) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}

	result, err := e.client.Complete(ctx, &providers.CompletionRequest{
		Prompt:      prompt,
		System:      systemPrompt,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
		Timeout:     requestTimeout,
	})
	if err != nil {
		if errors.Is(err, providers.ErrRateLimited) {
			e.limiter.Record429()
		}
		return "", err
	}

	content := strings.TrimSpace(result.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion")
	}
	return content, nil
}

func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case bool:
		return !val
	case float64:
		return val == 0
	}
	return false
}

// Verify interface
var _ Enhancer = (*AIEnhancer)(nil)
