package models

import "regexp"

// Image roles a classifier may assign.
const (
	ImageLogo           = "logo"
	ImageMascot         = "mascot"
	ImageJobSite        = "job_site"
	ImageBeforeAfter    = "before_and_after"
	ImageEmployee       = "employee"
	ImageProduct        = "product"
	ImageProductSubtype = "product-subtype"
	ImageStamp          = "stamp"
	ImageAwards         = "awards_certs_recognition"
	ImageOther          = "other"
)

// ImageVocabulary lists the primary classifications in prompt order.
var ImageVocabulary = []string{
	ImageLogo,
	ImageMascot,
	ImageJobSite,
	ImageBeforeAfter,
	ImageEmployee,
	ImageProduct,
	ImageProductSubtype,
	ImageStamp,
	ImageAwards,
	ImageOther,
}

// UnclassifiedTag marks images the classifier could not label.
const UnclassifiedTag = "unclassified"

// ClassifiedImage is the semantic role of one input image.
type ClassifiedImage struct {
	URL                   string   `json:"url"`
	PrimaryClassification string   `json:"primaryClassification"`
	ContextualTags        []string `json:"contextualTags"`
	UseForBrandColors     bool     `json:"will_use_in_brand_color_extraction_tool"`
}

// UnclassifiedImage is the fallback classification for url.
func UnclassifiedImage(url string) ClassifiedImage {
	return ClassifiedImage{
		URL:                   url,
		PrimaryClassification: ImageOther,
		ContextualTags:        []string{UnclassifiedTag},
		UseForBrandColors:     false,
	}
}

// BrandPalette is always exactly three hex colors.
type BrandPalette [3]string

// FallbackPalette is returned whenever brand colors cannot be derived.
var FallbackPalette = BrandPalette{"#1a1a1a", "#ffffff", "#000000"}

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether s is a 6-digit hex color like #1A2b3C.
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// Slice returns the palette as a slice for JSON consumers.
func (p BrandPalette) Slice() []string {
	return []string{p[0], p[1], p[2]}
}
