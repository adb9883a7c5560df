package core

import (
	"context"
	"fmt"
	"time"

	"github.com/dope-playground/brandscout/internal/crawlers"
	"github.com/dope-playground/brandscout/internal/models"
	"github.com/dope-playground/brandscout/internal/utils"
	"github.com/rs/zerolog/log"
)

// ProgressFunc receives the number of pages visited so far and the number
// planned for the crawl.
type ProgressFunc func(visited, planned int)

// Crawler runs one bounded crawl of a site over a single PageDriver.
type Crawler struct {
	driver    crawlers.PageDriver
	extractor *crawlers.PageExtractor
	config    models.CrawlConfig
	progress  ProgressFunc
}

// plannedPage is one entry of the fetch list.
type plannedPage struct {
	URL      string
	PageType string
}

// NewCrawler creates a crawler. The driver is owned by the caller.
func NewCrawler(driver crawlers.PageDriver, extractor *crawlers.PageExtractor, config models.CrawlConfig) *Crawler {
	return &Crawler{
		driver:    driver,
		extractor: extractor,
		config:    config,
	}
}

// OnProgress registers fn to be called after every visited page.
func (c *Crawler) OnProgress(fn ProgressFunc) {
	c.progress = fn
}

// ScrapeSite crawls targetURL:
//  1. load the homepage, discover same-origin links and bucket them
//  2. extract the homepage
//  3. plan the first HighPriorityLimit high and MediumPriorityLimit medium links
//  4. visit and extract every planned page, recording failures as error records
//  5. collect images from every visited page and deduplicate them
//  6. aggregate the records and attach images and low priority links
//
// Only an invalid target URL is returned as an error; every other failure
// degrades into the response.
func (c *Crawler) ScrapeSite(ctx context.Context, targetURL string) (models.ScraperToolResponse, error) {
	baseURL, err := models.Origin(targetURL)
	if err != nil {
		return models.ScraperToolResponse{}, fmt.Errorf("invalid target URL: %w", err)
	}

	startTime := time.Now()
	utils.Infof("🚀 Scraping %s", targetURL)

	buckets := models.NewLinkBuckets()
	var records []models.PageRecord
	var images []string

	if err := c.driver.Navigate(ctx, targetURL); err != nil {
		log.Warn().Err(err).Str("url", targetURL).Msg("homepage navigation failed")
		records = append(records, models.NewErrorRecord(models.PageTypeHomepage, targetURL, err))
		c.report(1, 1)
		return c.buildResponse(records, images, buckets), nil
	}

	buckets = c.discover(ctx, baseURL)
	utils.Infof("🔗 Found %d links (high %d, medium %d, low %d)",
		buckets.Total(), len(buckets.High), len(buckets.Medium), len(buckets.Low))

	plan := c.planFetchList(buckets)
	planned := len(plan) + 1

	record, pageImages := c.extractor.Extract(ctx, c.driver, targetURL, models.PageTypeHomepage)
	records = append(records, record)
	if !c.config.SeparateImagePass {
		images = append(images, pageImages...)
	}
	c.report(len(records), planned)

	for _, page := range plan {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Int("remaining", planned-len(records)).Msg("crawl cancelled")
			break
		}

		utils.Debugf("visiting %s (%s)", page.URL, page.PageType)
		if err := c.driver.Navigate(ctx, page.URL); err != nil {
			log.Warn().Err(err).Str("url", page.URL).Msg("navigation failed, skipping page")
			records = append(records, models.NewErrorRecord(page.PageType, page.URL, err))
			c.report(len(records), planned)
			continue
		}

		record, pageImages := c.extractor.Extract(ctx, c.driver, page.URL, page.PageType)
		records = append(records, record)
		if !c.config.SeparateImagePass {
			images = append(images, pageImages...)
		}
		c.report(len(records), planned)
	}

	if c.config.SeparateImagePass {
		visit := append([]plannedPage{{URL: targetURL, PageType: models.PageTypeHomepage}}, plan...)
		images = c.imagePass(ctx, visit)
	}

	resp := c.buildResponse(records, images, buckets)
	utils.Infof("✅ Scraped %d pages, %d images, %d fonts in %.2fs",
		resp.PagesScraped, len(resp.Data.Images), len(resp.Data.Fonts), time.Since(startTime).Seconds())
	return resp, nil
}

// discover reads anchors from the loaded homepage.
func (c *Crawler) discover(ctx context.Context, baseURL string) models.LinkBuckets {
	anchors, err := c.driver.Anchors(ctx)
	if err != nil {
		log.Warn().Err(err).Str("url", c.driver.CurrentURL()).Msg("reading links failed")
		return models.NewLinkBuckets()
	}
	links := crawlers.DiscoverLinks(anchors, c.driver.CurrentURL(), baseURL)
	return crawlers.CategorizeLinks(links)
}

// planFetchList takes the first high and medium links up to the configured
// limits. Negative limits count as zero. Low priority links are never visited.
func (c *Crawler) planFetchList(buckets models.LinkBuckets) []plannedPage {
	high := buckets.High[:min(len(buckets.High), max(0, c.config.HighPriorityLimit))]
	medium := buckets.Medium[:min(len(buckets.Medium), max(0, c.config.MediumPriorityLimit))]

	plan := make([]plannedPage, 0, len(high)+len(medium))
	for _, link := range high {
		plan = append(plan, plannedPage{URL: link.URL, PageType: crawlers.PageType(link)})
	}
	for _, link := range medium {
		plan = append(plan, plannedPage{URL: link.URL, PageType: crawlers.PageType(link)})
	}
	return plan
}

func (c *Crawler) collectImages(ctx context.Context, pageURL string) []string {
	images, err := crawlers.CollectImages(ctx, c.driver)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("reading images failed")
	}
	return images
}

// imagePass re-visits every page only to read its images.
func (c *Crawler) imagePass(ctx context.Context, pages []plannedPage) []string {
	utils.Infof("🖼️  Collecting images from %d pages", len(pages))
	var images []string
	for _, page := range pages {
		if ctx.Err() != nil {
			break
		}
		if err := c.driver.Navigate(ctx, page.URL); err != nil {
			log.Warn().Err(err).Str("url", page.URL).Msg("image pass navigation failed")
			continue
		}
		images = append(images, c.collectImages(ctx, page.URL)...)
	}
	return images
}

func (c *Crawler) buildResponse(records []models.PageRecord, images []string, buckets models.LinkBuckets) models.ScraperToolResponse {
	data := Aggregate(records)
	data.Images = crawlers.DedupeStrings(images)
	data.LowPriorityLinks = buckets.Low

	return models.ScraperToolResponse{
		TotalLinksFound: buckets.Total(),
		PagesScraped:    len(records),
		Data:            data,
		LinkCategories:  buckets.Counts(),
	}
}

func (c *Crawler) report(visited, planned int) {
	if c.progress != nil {
		c.progress(visited, planned)
	}
}
