package crawlers

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dope-playground/brandscout/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ImageFetcher downloads images for classification and color extraction.
type ImageFetcher struct {
	client  *http.Client
	headers models.HeaderProvider
	workers int
}

// NewImageFetcher creates a fetcher. workers <= 0 sizes the pool from
// current system resources.
func NewImageFetcher(headers models.HeaderProvider, timeout time.Duration, workers int) *ImageFetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if workers <= 0 {
		workers = NewResourceMonitor(DefaultResourceMonitorConfig()).CalculateMaxWorkers()
	}
	return &ImageFetcher{
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
			Timeout: timeout,
		},
		headers: headers,
		workers: workers,
	}
}

// Fetch downloads one image. Non-2xx responses and empty bodies are errors.
func (f *ImageFetcher) Fetch(ctx context.Context, imageURL string) (models.FetchedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return models.FetchedImage{}, fmt.Errorf("build request: %w", err)
	}
	if f.headers != nil {
		hdrs, err := f.headers.GetHeaders()
		if err != nil {
			return models.FetchedImage{}, fmt.Errorf("load headers: %w", err)
		}
		for name, values := range hdrs {
			if len(values) > 0 {
				req.Header.Set(name, values[0])
			}
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return models.FetchedImage{}, fmt.Errorf("GET %s: %w", imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.FetchedImage{}, fmt.Errorf("GET %s: HTTP %d", imageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, models.MaxImageSize+1))
	if err != nil {
		return models.FetchedImage{}, fmt.Errorf("read %s: %w", imageURL, err)
	}
	if len(body) > models.MaxImageSize {
		return models.FetchedImage{}, fmt.Errorf("image %s exceeds %d bytes", imageURL, models.MaxImageSize)
	}
	body, err = decompressBody(resp.Header.Get("Content-Encoding"), body)
	if err != nil {
		return models.FetchedImage{}, fmt.Errorf("decode %s: %w", imageURL, err)
	}
	img := models.FetchedImage{
		URL:      imageURL,
		MIMEType: models.ImageMIME(resp.Header.Get("Content-Type")),
		Data:     body,
	}
	if img.Size() == 0 {
		return models.FetchedImage{}, fmt.Errorf("image %s is empty", imageURL)
	}
	return img, nil
}

// FetchAll downloads urls concurrently and returns the successes in input
// order. Failures are logged and skipped.
func (f *ImageFetcher) FetchAll(ctx context.Context, urls []string) []models.FetchedImage {
	results := make([]*models.FetchedImage, len(urls))

	var g errgroup.Group
	g.SetLimit(f.workers)
	for i, u := range urls {
		g.Go(func() error {
			img, err := f.Fetch(ctx, u)
			if err != nil {
				log.Warn().Err(err).Str("url", u).Msg("skipping image")
				return nil
			}
			results[i] = &img
			return nil
		})
	}
	_ = g.Wait()

	fetched := make([]models.FetchedImage, 0, len(urls))
	total := 0
	for _, r := range results {
		if r != nil {
			fetched = append(fetched, *r)
			total += r.Size()
		}
	}
	log.Debug().Int("requested", len(urls)).Int("fetched", len(fetched)).Int("bytes", total).Msg("images downloaded")
	return fetched
}
