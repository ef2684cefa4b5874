package enhance

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/storemark/storemark/internal/catalog"
	"github.com/storemark/storemark/internal/providers"
	"github.com/storemark/storemark/internal/schema"
)

func newTestEnhancer(t *testing.T, mock *providers.MockClient) *AIEnhancer {
	t.Helper()
	e, err := NewAIEnhancer(AIConfig{
		Client:  mock,
		Limiter: providers.NewRateLimiter(6000),
	})
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func testProduct() *catalog.Product {
	return &catalog.Product{
		Title:       "Ceramic Mug",
		Handle:      "ceramic-mug",
		Vendor:      "MugCo",
		ProductType: "Kitchen",
		Tags:        []string{"ceramic", "coffee"},
		BodyHTML:    "<p>A handmade ceramic mug with a comfortable handle, perfect for your morning coffee ritual.</p>",
	}
}

func TestEnhanceDescription(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts good rewrite", func(t *testing.T) {
		mock := providers.NewMockClient("A beautifully crafted ceramic mug that elevates every coffee break.")
		e := newTestEnhancer(t, mock)

		got, err := e.EnhanceDescription(ctx, testProduct().BodyHTML, testProduct(), 300)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(got, "A beautifully crafted") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("refusal falls back to cleaned original", func(t *testing.T) {
		mock := providers.NewMockClient("I cannot write marketing copy for this product.")
		e := newTestEnhancer(t, mock)

		got, err := e.EnhanceDescription(ctx, testProduct().BodyHTML, testProduct(), 300)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(got, "A handmade ceramic mug") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("too-short response falls back", func(t *testing.T) {
		mock := providers.NewMockClient("ok")
		e := newTestEnhancer(t, mock)

		got, _ := e.EnhanceDescription(ctx, testProduct().BodyHTML, testProduct(), 300)
		if !strings.HasPrefix(got, "A handmade ceramic mug") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("provider error falls back", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.Err = errors.New("provider down")
		e := newTestEnhancer(t, mock)

		got, err := e.EnhanceDescription(ctx, testProduct().BodyHTML, testProduct(), 300)
		if err != nil {
			t.Fatalf("enhancement errors must not propagate: %v", err)
		}
		if !strings.HasPrefix(got, "A handmade ceramic mug") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("short original synthesizes", func(t *testing.T) {
		mock := providers.NewMockClient("A fresh take on the classic ceramic mug, handmade for daily use.")
		e := newTestEnhancer(t, mock)

		got, _ := e.EnhanceDescription(ctx, "", testProduct(), 300)
		if !strings.HasPrefix(got, "A fresh take") {
			t.Errorf("got %q", got)
		}
	})

	t.Run("short original with failing provider uses deterministic text", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.Err = errors.New("provider down")
		e := newTestEnhancer(t, mock)

		got, _ := e.EnhanceDescription(ctx, "", testProduct(), 300)
		if got != "MugCo Ceramic Mug in Kitchen" {
			t.Errorf("got %q", got)
		}
	})
}

func TestGenerateFAQ(t *testing.T) {
	ctx := context.Background()

	t.Run("parses structured response", func(t *testing.T) {
		mock := providers.NewMockClient(`{"questions": [
			{"question": "Is it dishwasher safe?", "answer": "Yes."},
			{"question": "What size is it?", "answer": "350ml."},
			{"question": "", "answer": "dropped"}
		]}`)
		e := newTestEnhancer(t, mock)

		doc, err := e.GenerateFAQ(ctx, testProduct())
		if err != nil {
			t.Fatal(err)
		}
		entities := doc["mainEntity"].([]schema.Document)
		if len(entities) != 2 {
			t.Fatalf("len(entities) = %d, want 2 (empty pair dropped)", len(entities))
		}
		if entities[0]["name"] != "Is it dishwasher safe?" {
			t.Errorf("entities[0] = %v", entities[0])
		}
	})

	t.Run("code-fenced JSON accepted", func(t *testing.T) {
		mock := providers.NewMockClient("```json\n{\"questions\": [{\"question\": \"Q?\", \"answer\": \"A.\"}]}\n```")
		e := newTestEnhancer(t, mock)

		doc, _ := e.GenerateFAQ(ctx, testProduct())
		entities := doc["mainEntity"].([]schema.Document)
		if len(entities) != 1 {
			t.Fatalf("entities = %v", entities)
		}
	})

	t.Run("caps at five entities", func(t *testing.T) {
		mock := providers.NewMockClient(`{"questions": [
			{"question": "1?", "answer": "a"}, {"question": "2?", "answer": "a"},
			{"question": "3?", "answer": "a"}, {"question": "4?", "answer": "a"},
			{"question": "5?", "answer": "a"}, {"question": "6?", "answer": "a"}
		]}`)
		e := newTestEnhancer(t, mock)

		doc, _ := e.GenerateFAQ(ctx, testProduct())
		entities := doc["mainEntity"].([]schema.Document)
		if len(entities) != 5 {
			t.Errorf("len(entities) = %d, want 5", len(entities))
		}
	})

	t.Run("parse failure falls back to two-entry FAQ", func(t *testing.T) {
		mock := providers.NewMockClient("sorry, here is prose instead of JSON")
		e := newTestEnhancer(t, mock)

		doc, err := e.GenerateFAQ(ctx, testProduct())
		if err != nil {
			t.Fatal(err)
		}
		entities := doc["mainEntity"].([]schema.Document)
		if len(entities) != 2 {
			t.Fatalf("len(entities) = %d, want 2", len(entities))
		}
		if entities[0]["name"] != "What is Ceramic Mug?" {
			t.Errorf("entities[0] = %v", entities[0])
		}
		if entities[1]["name"] != "Do you offer shipping?" {
			t.Errorf("entities[1] = %v", entities[1])
		}
	})
}

func TestCategorizeEnhanced(t *testing.T) {
	ctx := context.Background()

	t.Run("basic match skips the provider", func(t *testing.T) {
		mock := providers.NewMockClient("Electronics")
		e := newTestEnhancer(t, mock)

		got, _ := e.Categorize(ctx, testProduct()) // "kitchen" matches deterministically
		if got != "Home & Garden" {
			t.Errorf("got %q", got)
		}
		if mock.RequestCount() != 0 {
			t.Errorf("provider consulted %d times, want 0", mock.RequestCount())
		}
	})

	t.Run("unknown product consults provider", func(t *testing.T) {
		mock := providers.NewMockClient("Electronics")
		e := newTestEnhancer(t, mock)

		p := &catalog.Product{Title: "Mystery", ProductType: "Unclassifiable"}
		got, _ := e.Categorize(ctx, p)
		if got != "Electronics" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("unknown label rejected", func(t *testing.T) {
		mock := providers.NewMockClient("Gizmos & Doodads")
		e := newTestEnhancer(t, mock)

		p := &catalog.Product{Title: "Mystery", ProductType: "Unclassifiable"}
		got, _ := e.Categorize(ctx, p)
		if got != "Other" {
			t.Errorf("got %q", got)
		}
	})
}

func TestExtractAttributes(t *testing.T) {
	ctx := context.Background()

	t.Run("falsy values dropped", func(t *testing.T) {
		mock := providers.NewMockClient(`{"material": "ceramic", "color": [], "warranty": "", "features": ["handmade"]}`)
		e := newTestEnhancer(t, mock)

		attrs, err := e.ExtractAttributes(ctx, testProduct())
		if err != nil {
			t.Fatal(err)
		}
		if attrs["material"] != "ceramic" {
			t.Errorf("attrs = %v", attrs)
		}
		if _, ok := attrs["color"]; ok {
			t.Error("empty list should be dropped")
		}
		if _, ok := attrs["warranty"]; ok {
			t.Error("empty string should be dropped")
		}
	})

	t.Run("short description skipped without provider call", func(t *testing.T) {
		mock := providers.NewMockClient(`{"material": "x"}`)
		e := newTestEnhancer(t, mock)

		p := &catalog.Product{Title: "X", BodyHTML: "<p>tiny</p>"}
		attrs, _ := e.ExtractAttributes(ctx, p)
		if len(attrs) != 0 {
			t.Errorf("attrs = %v", attrs)
		}
		if mock.RequestCount() != 0 {
			t.Errorf("provider consulted %d times, want 0", mock.RequestCount())
		}
	})

	t.Run("parse failure yields empty mapping", func(t *testing.T) {
		mock := providers.NewMockClient("no json here")
		e := newTestEnhancer(t, mock)

		attrs, err := e.ExtractAttributes(ctx, testProduct())
		if err != nil {
			t.Fatal(err)
		}
		if len(attrs) != 0 {
			t.Errorf("attrs = %v", attrs)
		}
	})
}

func TestGenerateKeywords(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes provider list", func(t *testing.T) {
		mock := providers.NewMockClient("Ceramic Mug, COFFEE, a, handmade pottery ")
		e := newTestEnhancer(t, mock)

		got, _ := e.GenerateKeywords(ctx, testProduct(), 10)
		want := []string{"ceramic mug", "coffee", "handmade pottery"}
		if len(got) != len(want) {
			t.Fatalf("got %v", got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("failure falls back to token extraction", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.Err = errors.New("provider down")
		e := newTestEnhancer(t, mock)

		got, err := e.GenerateKeywords(ctx, testProduct(), 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) == 0 {
			t.Fatal("fallback keywords empty")
		}
		for _, k := range got {
			if k != strings.ToLower(k) || len(k) < 3 {
				t.Errorf("bad keyword %q", k)
			}
		}
	})
}

func TestOptimizeTitle(t *testing.T) {
	ctx := context.Background()

	t.Run("fitting title untouched", func(t *testing.T) {
		mock := providers.NewMockClient("should not be used")
		e := newTestEnhancer(t, mock)

		got, _ := e.OptimizeTitle(ctx, testProduct(), 60)
		if got != "Ceramic Mug" {
			t.Errorf("got %q", got)
		}
		if mock.RequestCount() != 0 {
			t.Error("provider should not be consulted")
		}
	})

	t.Run("over-budget rewrite rejected", func(t *testing.T) {
		mock := providers.NewMockClient(strings.Repeat("long ", 20))
		e := newTestEnhancer(t, mock)

		p := testProduct()
		p.Title = "An Extremely Long Ceramic Mug Title That Overflows The Budget"
		got, _ := e.OptimizeTitle(ctx, p, 30)
		if len(got) > 33 {
			t.Errorf("got %q (len %d)", got, len(got))
		}
	})
}

func TestNoopReportsDisabled(t *testing.T) {
	var e Enhancer = Noop{}
	if _, err := e.Categorize(context.Background(), testProduct()); !errors.Is(err, ErrDisabled) {
		t.Errorf("err = %v, want ErrDisabled", err)
	}
	if _, err := e.GenerateFAQ(context.Background(), testProduct()); !errors.Is(err, ErrDisabled) {
		t.Errorf("err = %v, want ErrDisabled", err)
	}
}
