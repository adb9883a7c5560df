package models

// AggregatedResult merges every PageRecord of one crawl. Array fields are
// lower-cased, trimmed, exact-duplicate-free and never nil.
type AggregatedResult struct {
	MarketingFacts

	Tones       []string `json:"tones"`
	YearFounded *string  `json:"yearFounded"`

	// Images is replaced wholesale by the DOM-collected cross-page image list.
	Images []string `json:"images"`
	Fonts  []string `json:"fonts"`

	ScrapedURLs        []string         `json:"scrapedUrls"`
	ScrapedPagesLength int              `json:"scrapedPagesLength"`
	LowPriorityLinks   []DiscoveredLink `json:"lowPriorityLinks"`
}

// ScraperToolResponse is what a crawl returns to its caller.
type ScraperToolResponse struct {
	TotalLinksFound int                `json:"totalLinksFound"`
	PagesScraped    int                `json:"pagesScraped"`
	Data            AggregatedResult   `json:"data"`
	LinkCategories  LinkCategoryCounts `json:"linkCategories"`
}
