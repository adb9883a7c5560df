package core

import (
	"context"
	"fmt"
	"time"

	"github.com/dope-playground/brandscout/internal/brand"
	"github.com/dope-playground/brandscout/internal/crawlers"
	"github.com/dope-playground/brandscout/internal/llm"
	"github.com/dope-playground/brandscout/internal/models"
	"github.com/dope-playground/brandscout/internal/utils"
)

// DriverFactory builds the page driver for one crawl.
type DriverFactory func(cfg models.CrawlConfig, headers models.HeaderProvider) (crawlers.PageDriver, error)

// Session runs complete crawls: scrape, classify images, extract colors.
// Every dependency with external state is created per Run and released
// when it returns.
type Session struct {
	config  *Config
	headers models.HeaderProvider

	newDriver DriverFactory
	generator llm.Generator
	images    brand.ImageSource
	progress  ProgressFunc
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithDriverFactory replaces crawlers.NewDriver.
func WithDriverFactory(f DriverFactory) SessionOption {
	return func(s *Session) { s.newDriver = f }
}

// WithGenerator uses g instead of building one from the llm config.
func WithGenerator(g llm.Generator) SessionOption {
	return func(s *Session) { s.generator = g }
}

// WithImageSource replaces the HTTP image fetcher.
func WithImageSource(src brand.ImageSource) SessionOption {
	return func(s *Session) { s.images = src }
}

// WithProgress reports page visits of every crawl to fn.
func WithProgress(fn ProgressFunc) SessionOption {
	return func(s *Session) { s.progress = fn }
}

func NewSession(config *Config, headers models.HeaderProvider, opts ...SessionOption) *Session {
	s := &Session{
		config:    config,
		headers:   headers,
		newDriver: crawlers.NewDriver,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run crawls targetURL and returns the report. Errors are returned only for
// invalid input or when the driver or model client cannot be created.
func (s *Session) Run(ctx context.Context, targetURL string) (*models.CrawlReport, error) {
	task, err := models.NewCrawlTask(targetURL, s.config.Crawl)
	if err != nil {
		return nil, err
	}
	task.Status = models.TaskStatusRunning
	utils.Debugf("task %s started for %s", task.ID, task.Domain)

	report, err := s.run(ctx, task)
	task.Finish(err)
	if err != nil {
		utils.Errorf("task %s %s: %v", task.ID, task.Status, err)
		return nil, err
	}
	return report, nil
}

func (s *Session) run(ctx context.Context, task *models.CrawlTask) (*models.CrawlReport, error) {
	startTime := time.Now()

	generator := s.generator
	if generator == nil {
		g, err := llm.New(ctx, s.config.LLM)
		if err != nil {
			return nil, fmt.Errorf("create model client: %w", err)
		}
		generator = g
	}

	driver, err := s.newDriver(task.Config, s.headers)
	if err != nil {
		return nil, fmt.Errorf("create %s driver: %w", task.Config.Mode, err)
	}
	defer func() {
		if err := driver.Close(); err != nil {
			utils.Warnf("closing page driver: %v", err)
		}
	}()

	crawler := NewCrawler(driver, crawlers.NewPageExtractor(generator, task.Config.MaxPageText), task.Config)
	crawler.OnProgress(s.progress)

	resp, err := crawler.ScrapeSite(ctx, task.TargetURL)
	if err != nil {
		return nil, err
	}

	report := &models.CrawlReport{
		TaskID:           task.ID,
		TargetURL:        task.TargetURL,
		Domain:           task.Domain,
		Mode:             task.Config.Mode,
		StartTime:        startTime,
		Response:         resp,
		ClassifiedImages: []models.ClassifiedImage{},
		BrandColors:      models.FallbackPalette.Slice(),
		Config:           task.Config,
	}

	if s.config.Brand.Enabled {
		s.runBrand(ctx, generator, resp.Data.Images, report)
	} else {
		utils.Info("brand analysis disabled, using fallback palette")
		report.BrandSkipped = true
	}

	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(startTime).Seconds()
	return report, nil
}

// runBrand classifies the first brand.max_images images and derives the palette.
func (s *Session) runBrand(ctx context.Context, generator llm.Generator, images []string, report *models.CrawlReport) {
	if limit := s.config.Brand.MaxImages; limit > 0 && len(images) > limit {
		images = images[:limit]
	}

	source := s.images
	if source == nil {
		workers := s.config.Crawl.ImageWorkers
		if workers <= 0 {
			workers = crawlers.NewResourceMonitor(s.config.Resource.MonitorConfig()).CalculateMaxWorkers()
		}
		timeout := time.Duration(s.config.Crawl.PageTimeout) * time.Second
		source = crawlers.NewImageFetcher(s.headers, timeout, workers)
	}

	utils.Infof("🎨 Classifying %d images", len(images))
	report.ClassifiedImages = brand.NewClassifier(generator, source).Classify(ctx, images)
	report.BrandColors = brand.NewColorExtractor(generator, source).Extract(ctx, report.ClassifiedImages).Slice()
	utils.Infof("🎨 Brand colors: %v", report.BrandColors)
}
