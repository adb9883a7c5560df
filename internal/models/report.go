package models

import (
	"encoding/json"
	"time"
)

// CrawlReport is the full output of one crawl session.
type CrawlReport struct {
	TaskID    string    `json:"task_id"`
	TargetURL string    `json:"target_url"`
	Domain    string    `json:"domain"`
	Mode      CrawlMode `json:"mode"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  float64   `json:"duration"` // seconds

	Response         ScraperToolResponse `json:"response"`
	ClassifiedImages []ClassifiedImage   `json:"classified_images"`
	BrandColors      []string            `json:"brand_colors"`
	BrandSkipped     bool                `json:"brand_skipped,omitempty"`

	Config CrawlConfig `json:"config"`
}

// ToJSON encodes the report with indentation.
func (r *CrawlReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FromJSON decodes a report written by ToJSON.
func (r *CrawlReport) FromJSON(data []byte) error {
	return json.Unmarshal(data, r)
}
