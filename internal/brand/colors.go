package brand

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dope-playground/brandscout/internal/llm"
	"github.com/dope-playground/brandscout/internal/models"
	"github.com/dope-playground/brandscout/internal/utils"
	"github.com/rs/zerolog/log"
)

const colorTemperature = 0.2

var colorSchema = llm.Object("Brand colors found in the images",
	llm.Prop("brandColors", llm.Array("Exactly three 6-digit hex colors such as #1A73E8, most prominent first",
		llm.String("hex color"))),
).Require("brandColors")

type colorResponse struct {
	BrandColors []string `json:"brandColors"`
}

// ColorExtractor derives a three-color brand palette from classified images.
type ColorExtractor struct {
	generator llm.Generator
	images    ImageSource
}

func NewColorExtractor(generator llm.Generator, images ImageSource) *ColorExtractor {
	return &ColorExtractor{generator: generator, images: images}
}

// Extract always returns three valid hex colors. Any failure, or fewer than
// three valid colors from the model, yields models.FallbackPalette.
func (e *ColorExtractor) Extract(ctx context.Context, classified []models.ClassifiedImage) models.BrandPalette {
	palette, err := e.extract(ctx, classified)
	if err != nil {
		if errors.Is(err, ErrNoImages) {
			utils.Infof("no brand-relevant images, using fallback palette")
		} else {
			log.Warn().Err(err).Msg("brand color extraction failed, using fallback palette")
		}
		return models.FallbackPalette
	}
	return palette
}

func (e *ColorExtractor) extract(ctx context.Context, classified []models.ClassifiedImage) (models.BrandPalette, error) {
	var urls []string
	for _, img := range classified {
		if img.UseForBrandColors {
			urls = append(urls, img.URL)
		}
	}

	fetched, err := fetchImages(ctx, e.images, urls)
	if err != nil {
		return models.BrandPalette{}, err
	}
	utils.Debugf("extracting brand colors from %d images", len(fetched))

	var resp colorResponse
	req := llm.Request{
		Prompt:      buildColorPrompt(fetched),
		Schema:      colorSchema,
		Images:      toLLMImages(fetched),
		Temperature: llm.Float32(colorTemperature),
	}
	if err := llm.GenerateJSON(ctx, e.generator, req, &resp); err != nil {
		return models.BrandPalette{}, err
	}
	return pickPalette(resp.BrandColors)
}

// pickPalette keeps the first three valid hex colors.
func pickPalette(candidates []string) (models.BrandPalette, error) {
	var palette models.BrandPalette
	n := 0
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if !models.IsHexColor(c) {
			log.Debug().Str("color", c).Msg("discarding invalid hex color")
			continue
		}
		palette[n] = c
		n++
		if n == len(palette) {
			return palette, nil
		}
	}
	return models.BrandPalette{}, fmt.Errorf("model returned %d valid colors, need %d", n, len(palette))
}

func buildColorPrompt(fetched []models.FetchedImage) string {
	var sb strings.Builder
	sb.WriteString("These images are logos and branded assets of one business.\n")
	sb.WriteString("Identify the 3 colors that define the brand: logo colors, button and call-to-action colors, accent colors.\n")
	sb.WriteString("Ignore pure black (#000000) and pure white (#FFFFFF) and photographic backgrounds.\n")
	sb.WriteString("Answer with 6-digit hex codes only.\n\n")
	for i, img := range fetched {
		fmt.Fprintf(&sb, "Image %d: %s\n", i+1, img.URL)
	}
	return sb.String()
}
