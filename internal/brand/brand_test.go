package brand

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dope-playground/brandscout/internal/llm"
	"github.com/dope-playground/brandscout/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeImages serves every URL not listed in missing.
type fakeImages struct {
	missing map[string]bool
	calls   [][]string
}

func (f *fakeImages) FetchAll(_ context.Context, urls []string) []models.FetchedImage {
	f.calls = append(f.calls, urls)
	var out []models.FetchedImage
	for _, u := range urls {
		if f.missing[u] {
			continue
		}
		out = append(out, models.FetchedImage{URL: u, MIMEType: "image/png", Data: []byte(u)})
	}
	return out
}

type fakeGenerator struct {
	mu       sync.Mutex
	response string
	err      error
	requests []llm.Request
}

func (g *fakeGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.response, g.err
}

func TestClassify_RestitchesByIndex(t *testing.T) {
	urls := []string{"https://a.test/logo.png", "https://a.test/broken.png", "https://a.test/crew.jpg"}
	images := &fakeImages{missing: map[string]bool{urls[1]: true}}
	gen := &fakeGenerator{response: `[
		{"url": "logo.png", "primaryClassification": "logo", "contextualTags": ["brand"], "will_use_in_brand_color_extraction_tool": true},
		{"url": "https://hallucinated.test/x.jpg", "primaryClassification": "employee", "contextualTags": ["team"], "will_use_in_brand_color_extraction_tool": false}
	]`}

	got := NewClassifier(gen, images).Classify(context.Background(), urls)

	require.Len(t, got, 2)
	assert.Equal(t, urls[0], got[0].URL)
	assert.Equal(t, models.ImageLogo, got[0].PrimaryClassification)
	assert.True(t, got[0].UseForBrandColors)
	assert.Equal(t, urls[2], got[1].URL)
	assert.Equal(t, models.ImageEmployee, got[1].PrimaryClassification)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Len(t, req.Images, 2)
	assert.Contains(t, req.Prompt, "Image 1: "+urls[0])
	assert.Contains(t, req.Prompt, "Image 2: "+urls[2])
	assert.NotContains(t, req.Prompt, urls[1])
}

func TestClassify_ShortResponseIsPadded(t *testing.T) {
	urls := []string{"https://a.test/1.png", "https://a.test/2.png", "https://a.test/3.png"}
	gen := &fakeGenerator{response: `[{"url": "x", "primaryClassification": "product", "contextualTags": [], "will_use_in_brand_color_extraction_tool": true}]`}

	got := NewClassifier(gen, &fakeImages{}).Classify(context.Background(), urls)

	require.Len(t, got, 3)
	for i, u := range urls {
		assert.Equal(t, u, got[i].URL)
	}
	assert.Equal(t, models.ImageProduct, got[0].PrimaryClassification)
	assert.Equal(t, models.UnclassifiedImage(urls[1]), got[1])
	assert.Equal(t, models.UnclassifiedImage(urls[2]), got[2])
}

func TestClassify_FailureFallsBack(t *testing.T) {
	urls := []string{"https://a.test/1.png", "https://a.test/2.png"}
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{name: "call error", gen: &fakeGenerator{err: errors.New("boom")}},
		{name: "unparsable", gen: &fakeGenerator{response: "I see a logo"}},
		{name: "not an array", gen: &fakeGenerator{response: `{"url": "x", "primaryClassification": "logo"}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewClassifier(tt.gen, &fakeImages{}).Classify(context.Background(), urls)
			require.Len(t, got, 2)
			for i, u := range urls {
				assert.Equal(t, models.UnclassifiedImage(u), got[i])
			}
		})
	}
}

func TestClassify_BadEntryOnlyAffectsItsIndex(t *testing.T) {
	urls := []string{"https://a.test/logo.png", "https://a.test/banner.jpg", "https://a.test/truck.jpg"}
	gen := &fakeGenerator{response: `[
		{"url": "a", "primaryClassification": "logo", "contextualTags": ["brand"], "will_use_in_brand_color_extraction_tool": true},
		{"url": "b", "primaryClassification": "banner", "contextualTags": [], "will_use_in_brand_color_extraction_tool": true},
		{"url": "c", "primaryClassification": "product", "contextualTags": ["van"]}
	]`}

	got := NewClassifier(gen, &fakeImages{}).Classify(context.Background(), urls)

	require.Len(t, got, 3)
	assert.Equal(t, models.ClassifiedImage{
		URL:                   urls[0],
		PrimaryClassification: models.ImageLogo,
		ContextualTags:        []string{"brand"},
		UseForBrandColors:     true,
	}, got[0])
	assert.Equal(t, models.UnclassifiedImage(urls[1]), got[1])
	assert.Equal(t, models.UnclassifiedImage(urls[2]), got[2])
}

func TestClassify_NothingToClassify(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("must not be called")}

	got := NewClassifier(gen, &fakeImages{}).Classify(context.Background(), nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	urls := []string{"https://a.test/gone.png"}
	got = NewClassifier(gen, &fakeImages{missing: map[string]bool{urls[0]: true}}).Classify(context.Background(), urls)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, gen.requests)
}

func TestExtractColors(t *testing.T) {
	classified := []models.ClassifiedImage{
		{URL: "https://a.test/logo.png", PrimaryClassification: models.ImageLogo, UseForBrandColors: true},
		{URL: "https://a.test/crew.jpg", PrimaryClassification: models.ImageEmployee},
		{URL: "https://a.test/truck.jpg", PrimaryClassification: models.ImageProduct, UseForBrandColors: true},
	}

	t.Run("valid colors", func(t *testing.T) {
		images := &fakeImages{}
		gen := &fakeGenerator{response: `{"brandColors": ["#1A73E8", "not-a-color", "#ff6600", "#00AA44", "#123456"]}`}

		palette := NewColorExtractor(gen, images).Extract(context.Background(), classified)

		assert.Equal(t, models.BrandPalette{"#1A73E8", "#ff6600", "#00AA44"}, palette)
		require.Len(t, images.calls, 1)
		assert.Equal(t, []string{"https://a.test/logo.png", "https://a.test/truck.jpg"}, images.calls[0])
	})

	fallbacks := []struct {
		name       string
		classified []models.ClassifiedImage
		images     *fakeImages
		gen        *fakeGenerator
	}{
		{
			name:       "no eligible images",
			classified: []models.ClassifiedImage{models.UnclassifiedImage("https://a.test/x.png")},
			images:     &fakeImages{},
			gen:        &fakeGenerator{response: `{"brandColors": ["#111111", "#222222", "#333333"]}`},
		},
		{
			name:       "fetch failed",
			classified: classified,
			images:     &fakeImages{missing: map[string]bool{"https://a.test/logo.png": true, "https://a.test/truck.jpg": true}},
			gen:        &fakeGenerator{response: `{"brandColors": ["#111111", "#222222", "#333333"]}`},
		},
		{
			name:       "too few valid colors",
			classified: classified,
			images:     &fakeImages{},
			gen:        &fakeGenerator{response: `{"brandColors": ["#111111", "red", "#FFF"]}`},
		},
		{
			name:       "model error",
			classified: classified,
			images:     &fakeImages{},
			gen:        &fakeGenerator{err: errors.New("boom")},
		},
		{
			name:       "garbage",
			classified: classified,
			images:     &fakeImages{},
			gen:        &fakeGenerator{response: "blue and orange"},
		},
	}
	for _, tt := range fallbacks {
		t.Run(tt.name, func(t *testing.T) {
			palette := NewColorExtractor(tt.gen, tt.images).Extract(context.Background(), tt.classified)
			assert.Equal(t, models.FallbackPalette, palette)
			for _, c := range palette {
				assert.True(t, models.IsHexColor(c))
			}
		})
	}
}
