package crawlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/dope-playground/brandscout/internal/llm"
	"github.com/dope-playground/brandscout/internal/models"
	"github.com/rs/zerolog/log"
)

// extractionTemperature keeps page extraction close to the source wording.
const extractionTemperature = 0.1

// PageExtractor turns the page currently loaded in a PageDriver into a
// PageRecord: images and fonts from the DOM, everything else from one
// schema-constrained model call over the page's visible text.
type PageExtractor struct {
	generator   llm.Generator
	maxPageText int
}

// NewPageExtractor creates an extractor. maxPageText caps the characters of
// page text sent to the model.
func NewPageExtractor(generator llm.Generator, maxPageText int) *PageExtractor {
	return &PageExtractor{generator: generator, maxPageText: maxPageText}
}

// Extract never fails: a failed model call or text read yields an error record.
// The page's images are returned alongside the record, error records included,
// so callers do not read the DOM a second time.
func (e *PageExtractor) Extract(ctx context.Context, d PageDriver, pageURL, pageType string) (models.PageRecord, []string) {
	images, err := CollectImages(ctx, d)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("reading images failed")
	}
	fonts, err := CollectFonts(ctx, d)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("reading fonts failed")
	}

	record, err := e.extractFacts(ctx, d, pageURL, pageType)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Str("page_type", pageType).Msg("page extraction failed")
		return models.NewErrorRecord(pageType, pageURL, err), images
	}

	record.PageType = pageType
	record.URL = pageURL
	record.Error = ""
	record.Images = images
	record.Fonts = fonts
	return record, images
}

func (e *PageExtractor) extractFacts(ctx context.Context, d PageDriver, pageURL, pageType string) (models.PageRecord, error) {
	var record models.PageRecord

	text, err := d.VisibleText(ctx)
	if err != nil {
		return record, fmt.Errorf("read page text: %w", err)
	}
	text = truncateRunes(strings.TrimSpace(text), e.maxPageText)
	if text == "" {
		return record, fmt.Errorf("page has no visible text")
	}

	req := llm.Request{
		Prompt:      buildExtractionPrompt(pageURL, pageType, text),
		Schema:      extractionSchema,
		Temperature: llm.Float32(extractionTemperature),
	}
	if err := llm.GenerateJSON(ctx, e.generator, req, &record); err != nil {
		return record, fmt.Errorf("extract facts: %w", err)
	}
	return record, nil
}

// CollectImages reads image references from the loaded page and returns
// them resolved, filtered and deduplicated.
func CollectImages(ctx context.Context, d PageDriver) ([]string, error) {
	raw, err := d.ImageSources(ctx)
	if err != nil {
		return []string{}, err
	}
	return FilterImageURLs(raw, d.CurrentURL()), nil
}

// CollectFonts reads font-family declarations from the loaded page and
// returns the filtered family names.
func CollectFonts(ctx context.Context, d PageDriver) ([]string, error) {
	raw, err := d.FontFamilies(ctx)
	if err != nil {
		return []string{}, err
	}
	return FilterFonts(raw), nil
}
