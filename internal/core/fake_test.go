package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/dope-playground/brandscout/internal/crawlers"
	"github.com/dope-playground/brandscout/internal/llm"
	"github.com/dope-playground/brandscout/internal/models"
)

type fakePage struct {
	anchors []crawlers.RawAnchor
	images  []string
	text    string
}

// fakeDriver serves pages from a map; unknown URLs fail to navigate.
type fakeDriver struct {
	pages      map[string]fakePage
	current    string
	visits     []string
	imageReads int
	closed     bool
}

func (f *fakeDriver) Navigate(_ context.Context, url string) error {
	f.visits = append(f.visits, url)
	if _, ok := f.pages[url]; !ok {
		return fmt.Errorf("net::ERR_NAME_NOT_RESOLVED at %s", url)
	}
	f.current = url
	return nil
}

func (f *fakeDriver) CurrentURL() string { return f.current }

func (f *fakeDriver) Anchors(context.Context) ([]crawlers.RawAnchor, error) {
	return f.pages[f.current].anchors, nil
}

func (f *fakeDriver) ImageSources(context.Context) ([]string, error) {
	f.imageReads++
	return f.pages[f.current].images, nil
}

func (f *fakeDriver) FontFamilies(context.Context) ([]string, error) {
	return []string{"Montserrat, sans-serif"}, nil
}

func (f *fakeDriver) VisibleText(context.Context) (string, error) {
	return f.pages[f.current].text, nil
}

func (f *fakeDriver) Close() error {
	f.closed = true
	return nil
}

// fakeGenerator answers with respond, recording every request.
type fakeGenerator struct {
	mu       sync.Mutex
	respond  func(req llm.Request) (string, error)
	requests []llm.Request
}

func (g *fakeGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.respond(req)
}

// pageGenerator returns the same facts for every page.
func pageGenerator() *fakeGenerator {
	return &fakeGenerator{respond: func(req llm.Request) (string, error) {
		return `{"headlines": ["Roofing Done Right"], "tone": "Friendly"}`, nil
	}}
}

type fakeImages struct{}

func (fakeImages) FetchAll(_ context.Context, urls []string) []models.FetchedImage {
	out := make([]models.FetchedImage, 0, len(urls))
	for _, u := range urls {
		out = append(out, models.FetchedImage{URL: u, MIMEType: "image/png", Data: []byte("png")})
	}
	return out
}

// fakeRunner fails for URLs listed in failures.
type fakeRunner struct {
	failures map[string]bool
	calls    []string
}

func (r *fakeRunner) Run(_ context.Context, targetURL string) (*models.CrawlReport, error) {
	r.calls = append(r.calls, targetURL)
	if r.failures[targetURL] {
		return nil, fmt.Errorf("boom")
	}
	return &models.CrawlReport{
		TargetURL: targetURL,
		Response: models.ScraperToolResponse{
			PagesScraped: 3,
			Data:         models.AggregatedResult{Images: []string{"a", "b"}},
		},
	}, nil
}

type fakeWriter struct {
	written []string
}

func (w *fakeWriter) WriteReport(report *models.CrawlReport) (string, error) {
	w.written = append(w.written, report.TargetURL)
	return "/tmp/" + report.TargetURL, nil
}
