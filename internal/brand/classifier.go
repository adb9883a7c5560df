// Package brand labels the images collected by a crawl and derives a
// three-color brand palette from the brand-relevant subset.
package brand

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dope-playground/brandscout/internal/llm"
	"github.com/dope-playground/brandscout/internal/models"
	"github.com/dope-playground/brandscout/internal/utils"
	"github.com/rs/zerolog/log"
)

// ErrNoImages means none of the requested images could be fetched.
var ErrNoImages = errors.New("brand: no images available")

// ImageSource downloads images. Failed downloads are left out of the result.
type ImageSource interface {
	FetchAll(ctx context.Context, urls []string) []models.FetchedImage
}

const classificationTemperature = 0.2

var classificationSchema = llm.Array("One entry per image, in the order the images were given",
	llm.Object("Classification of one image",
		llm.Prop("url", llm.String("Source URL of the image as listed in the prompt")),
		llm.Prop("primaryClassification", llm.Enum("Main role of the image", models.ImageVocabulary...)),
		llm.Prop("contextualTags", llm.Array("Short descriptive tags", llm.String("tag"))),
		llm.Prop("will_use_in_brand_color_extraction_tool", llm.Boolean(
			"True when the image carries brand colors: logos, mascots, branded products, stamps. False for photos of people, job sites and stock imagery")),
	).Require("url", "primaryClassification", "contextualTags", "will_use_in_brand_color_extraction_tool"),
)

// Classifier labels images with one multi-image model call.
type Classifier struct {
	generator llm.Generator
	images    ImageSource
}

func NewClassifier(generator llm.Generator, images ImageSource) *Classifier {
	return &Classifier{generator: generator, images: images}
}

// Classify returns one ClassifiedImage per successfully fetched URL, in input
// order. The URL of each entry is always the fetched URL at that position,
// whatever the model echoed back. A failed call classifies every image as
// unclassified; an entry that does not match the schema only affects its own
// position. Empty input, or nothing fetchable, yields an empty slice.
func (c *Classifier) Classify(ctx context.Context, urls []string) []models.ClassifiedImage {
	fetched, err := fetchImages(ctx, c.images, urls)
	if err != nil {
		if errors.Is(err, ErrNoImages) && len(urls) > 0 {
			log.Warn().Int("requested", len(urls)).Msg("no images could be fetched for classification")
		}
		return []models.ClassifiedImage{}
	}
	utils.Infof("classifying %d of %d images", len(fetched), len(urls))

	req := llm.Request{
		Prompt:      buildClassificationPrompt(fetched),
		Schema:      classificationSchema,
		Images:      toLLMImages(fetched),
		Temperature: llm.Float32(classificationTemperature),
	}
	items, err := llm.GenerateItems(ctx, c.generator, req)
	if err != nil {
		log.Warn().Err(err).Int("images", len(fetched)).Msg("image classification failed, using fallback")
		return unclassified(fetched)
	}
	labels := decodeLabels(items)
	if len(labels) != len(fetched) {
		log.Warn().Int("expected", len(fetched)).Int("got", len(labels)).Msg("classification count mismatch")
	}
	return restitch(fetched, labels)
}

// decodeLabels decodes each model entry on its own. Entries that fail the
// schema become unclassified placeholders; restitch fills in their URL.
func decodeLabels(items []json.RawMessage) []models.ClassifiedImage {
	labels := make([]models.ClassifiedImage, len(items))
	for i, item := range items {
		var label models.ClassifiedImage
		if err := llm.DecodeItem(item, classificationSchema.Items, &label); err != nil {
			log.Warn().Err(err).Int("index", i).Msg("discarding malformed classification entry")
			labels[i] = models.UnclassifiedImage("")
			continue
		}
		labels[i] = label
	}
	return labels
}

// restitch pairs labels with fetched images by position.
func restitch(fetched []models.FetchedImage, labels []models.ClassifiedImage) []models.ClassifiedImage {
	out := make([]models.ClassifiedImage, len(fetched))
	for i, img := range fetched {
		if i >= len(labels) {
			out[i] = models.UnclassifiedImage(img.URL)
			continue
		}
		label := labels[i]
		label.URL = img.URL
		if label.ContextualTags == nil {
			label.ContextualTags = []string{}
		}
		out[i] = label
	}
	return out
}

func unclassified(fetched []models.FetchedImage) []models.ClassifiedImage {
	out := make([]models.ClassifiedImage, len(fetched))
	for i, img := range fetched {
		out[i] = models.UnclassifiedImage(img.URL)
	}
	return out
}

func buildClassificationPrompt(fetched []models.FetchedImage) string {
	var sb strings.Builder
	sb.WriteString("Classify each of the attached images from a small business website.\n\n")
	sb.WriteString("primaryClassification must be one of: ")
	sb.WriteString(strings.Join(models.ImageVocabulary, ", "))
	sb.WriteString(".\n")
	sb.WriteString("contextualTags are a few short lowercase tags describing what the image shows.\n")
	sb.WriteString("Set will_use_in_brand_color_extraction_tool to true only for images whose colors represent the brand.\n")
	sb.WriteString("Return exactly one entry per image, in the same order as listed below.\n\n")
	for i, img := range fetched {
		fmt.Fprintf(&sb, "Image %d: %s\n", i+1, img.URL)
	}
	return sb.String()
}

func toLLMImages(fetched []models.FetchedImage) []llm.Image {
	out := make([]llm.Image, len(fetched))
	for i, img := range fetched {
		out[i] = llm.Image{MIMEType: img.MIMEType, Data: img.Data}
	}
	return out
}

func fetchImages(ctx context.Context, src ImageSource, urls []string) ([]models.FetchedImage, error) {
	if len(urls) == 0 {
		return nil, ErrNoImages
	}
	fetched := src.FetchAll(ctx, urls)
	if len(fetched) == 0 {
		return nil, ErrNoImages
	}
	return fetched, nil
}
