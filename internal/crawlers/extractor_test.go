package crawlers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dope-playground/brandscout/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const homeURL = "https://acme.test/"

func newExtractorDriver() *fakeDriver {
	return &fakeDriver{pages: map[string]fakePage{
		homeURL: {
			images: []string{"/img/logo.png", "/img/logo.png", "data:image/png;base64,xx"},
			fonts:  []string{`"Acme Display", serif`},
			text:   "Best Roofing Service in Springfield\nFamily owned since 1998.",
		},
	}}
}

func TestPageExtractor_Success(t *testing.T) {
	d := newExtractorDriver()
	require.NoError(t, d.Navigate(context.Background(), homeURL))

	gen := &fakeGenerator{response: "```json\n" + `{
		"tone": "friendly",
		"yearFounded": "1998",
		"headlines": ["Best Roofing Service in Springfield"],
		"serviceAreas": ["Springfield"],
		"ctas": null
	}` + "\n```"}
	e := NewPageExtractor(gen, 2000)

	rec, images := e.Extract(context.Background(), d, homeURL, models.PageTypeHomepage)

	require.False(t, rec.Failed(), rec.Error)
	assert.Equal(t, models.PageTypeHomepage, rec.PageType)
	assert.Equal(t, homeURL, rec.URL)
	require.NotNil(t, rec.Tone)
	assert.Equal(t, "friendly", *rec.Tone)
	require.NotNil(t, rec.YearFounded)
	assert.Equal(t, "1998", *rec.YearFounded)
	assert.Equal(t, []string{"Best Roofing Service in Springfield"}, rec.Headlines)
	assert.Nil(t, rec.CTAs)

	assert.Equal(t, []string{"https://acme.test/img/logo.png"}, rec.Images)
	assert.Equal(t, rec.Images, images)
	assert.Equal(t, []string{"Acme Display"}, rec.Fonts)
	assert.Equal(t, 1, d.imageReads)

	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Contains(t, req.Prompt, "Family owned since 1998.")
	assert.Contains(t, req.Prompt, homeURL)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.1, *req.Temperature, 1e-6)
	assert.NotNil(t, req.Schema)
}

func TestPageExtractor_ModelImagesAreIgnored(t *testing.T) {
	d := newExtractorDriver()
	require.NoError(t, d.Navigate(context.Background(), homeURL))

	gen := &fakeGenerator{response: `{"images": ["https://elsewhere.test/fake.png"], "fonts": ["Comic Sans"]}`}
	rec, _ := NewPageExtractor(gen, 2000).Extract(context.Background(), d, homeURL, "about")

	require.False(t, rec.Failed(), rec.Error)
	assert.Equal(t, []string{"https://acme.test/img/logo.png"}, rec.Images)
	assert.Equal(t, []string{"Acme Display"}, rec.Fonts)
}

func TestPageExtractor_Failures(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		text string
	}{
		{name: "model error", gen: &fakeGenerator{err: errors.New("quota exceeded")}, text: "hello"},
		{name: "no json", gen: &fakeGenerator{response: "sorry, I cannot help"}, text: "hello"},
		{name: "schema mismatch", gen: &fakeGenerator{response: `{"headlines": "not an array"}`}, text: "hello"},
		{name: "blank page", gen: &fakeGenerator{response: `{}`}, text: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeDriver{pages: map[string]fakePage{homeURL: {text: tt.text, images: []string{"/img/van.jpg"}}}}
			require.NoError(t, d.Navigate(context.Background(), homeURL))

			rec, images := NewPageExtractor(tt.gen, 2000).Extract(context.Background(), d, homeURL, "services")

			assert.True(t, rec.Failed())
			assert.Equal(t, []string{"https://acme.test/img/van.jpg"}, images)
			assert.Equal(t, "services", rec.PageType)
			assert.Equal(t, homeURL, rec.URL)

			raw, err := json.Marshal(rec)
			require.NoError(t, err)
			var fields map[string]any
			require.NoError(t, json.Unmarshal(raw, &fields))
			assert.Len(t, fields, 3)
			assert.Contains(t, fields, "error")
		})
	}
}

func TestPageExtractor_TruncatesText(t *testing.T) {
	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'a'
	}
	d := &fakeDriver{pages: map[string]fakePage{homeURL: {text: string(long)}}}
	require.NoError(t, d.Navigate(context.Background(), homeURL))

	gen := &fakeGenerator{response: `{}`}
	NewPageExtractor(gen, 1000).Extract(context.Background(), d, homeURL, "homepage")

	require.Len(t, gen.requests, 1)
	assert.NotContains(t, gen.requests[0].Prompt, string(long[:1001]))
	assert.Contains(t, gen.requests[0].Prompt, string(long[:1000]))
}
