package crawlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/dope-playground/brandscout/internal/llm"
)

type fakePage struct {
	anchors []RawAnchor
	images  []string
	fonts   []string
	text    string
}

type fakeDriver struct {
	pages      map[string]fakePage
	current    string
	visits     []string
	imageReads int
}

func (f *fakeDriver) Navigate(_ context.Context, url string) error {
	f.visits = append(f.visits, url)
	if _, ok := f.pages[url]; !ok {
		return fmt.Errorf("no such page: %s", url)
	}
	f.current = url
	return nil
}

func (f *fakeDriver) CurrentURL() string { return f.current }

func (f *fakeDriver) page() (fakePage, error) {
	if f.current == "" {
		return fakePage{}, ErrNotNavigated
	}
	return f.pages[f.current], nil
}

func (f *fakeDriver) Anchors(context.Context) ([]RawAnchor, error) {
	p, err := f.page()
	return p.anchors, err
}

func (f *fakeDriver) ImageSources(context.Context) ([]string, error) {
	f.imageReads++
	p, err := f.page()
	return p.images, err
}

func (f *fakeDriver) FontFamilies(context.Context) ([]string, error) {
	p, err := f.page()
	return p.fonts, err
}

func (f *fakeDriver) VisibleText(context.Context) (string, error) {
	p, err := f.page()
	return p.text, err
}

func (f *fakeDriver) Close() error { return nil }

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
