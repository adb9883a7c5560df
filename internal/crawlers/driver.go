package crawlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/dope-playground/brandscout/internal/models"
)

// ErrNotNavigated is returned by driver reads before the first Navigate.
var ErrNotNavigated = errors.New("page driver: no page loaded")

// RawAnchor is an <a href> as it appears in the DOM, before resolution.
type RawAnchor struct {
	Href  string `json:"href"`
	Text  string `json:"text"`
	Title string `json:"title"`
}

// PageDriver is the page-automation capability: one browser context,
// one page at a time. Reads apply to the most recently loaded page.
type PageDriver interface {
	Navigate(ctx context.Context, url string) error
	CurrentURL() string
	Anchors(ctx context.Context) ([]RawAnchor, error)
	// ImageSources returns img src values and CSS background-image url()
	// references, unresolved and unfiltered.
	ImageSources(ctx context.Context) ([]string, error)
	// FontFamilies returns raw font-family declarations from stylesheets,
	// inline styles and @font-face rules.
	FontFamilies(ctx context.Context) ([]string, error)
	VisibleText(ctx context.Context) (string, error)
	Close() error
}

// NewDriver builds the driver for cfg.Mode.
func NewDriver(cfg models.CrawlConfig, headers models.HeaderProvider) (PageDriver, error) {
	switch cfg.Mode {
	case models.ModeStatic:
		return NewStaticDriver(cfg, headers)
	case models.ModeDynamic, "":
		return NewRodDriver(cfg, headers)
	default:
		return nil, fmt.Errorf("unknown crawl mode: %s", cfg.Mode)
	}
}
