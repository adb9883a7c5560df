package models

// DiscoveredLink is a same-origin anchor found on a rendered page.
type DiscoveredLink struct {
	URL   string `json:"url"`
	Text  string `json:"text"`
	Title string `json:"title"`
}

// Priority is the crawl-scheduling class of a link.
type Priority string

const (
	PriorityHigh   Priority = "high_priority"
	PriorityMedium Priority = "medium_priority"
	PriorityLow    Priority = "low_priority"
)

// LinkBuckets holds every discovered link in exactly one priority bucket,
// preserving discovery order within each bucket.
type LinkBuckets struct {
	High   []DiscoveredLink `json:"high_priority"`
	Medium []DiscoveredLink `json:"medium_priority"`
	Low    []DiscoveredLink `json:"low_priority"`
}

// NewLinkBuckets returns buckets with non-nil slices so they encode as [].
func NewLinkBuckets() LinkBuckets {
	return LinkBuckets{
		High:   make([]DiscoveredLink, 0),
		Medium: make([]DiscoveredLink, 0),
		Low:    make([]DiscoveredLink, 0),
	}
}

// Add appends a link to the bucket for p.
func (b *LinkBuckets) Add(p Priority, link DiscoveredLink) {
	switch p {
	case PriorityHigh:
		b.High = append(b.High, link)
	case PriorityMedium:
		b.Medium = append(b.Medium, link)
	default:
		b.Low = append(b.Low, link)
	}
}

// Total returns the number of links across all buckets.
func (b LinkBuckets) Total() int {
	return len(b.High) + len(b.Medium) + len(b.Low)
}

func (b LinkBuckets) Counts() LinkCategoryCounts {
	return LinkCategoryCounts{
		High:   len(b.High),
		Medium: len(b.Medium),
		Low:    len(b.Low),
	}
}

// LinkCategoryCounts per-bucket counts reported in the scraper response.
type LinkCategoryCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}
