package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dope-playground/brandscout/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Report file names inside <output>/<domain>/reports.
const (
	BrandReportFile  = "brand_report.json"
	ScrapeResultFile = "scrape_result.json"
)

// Reporter writes crawl reports under outputDir.
type Reporter struct {
	outputDir string
}

func NewReporter(outputDir string) *Reporter {
	return &Reporter{outputDir: outputDir}
}

// ReportDir returns the directory reports for domain are written to.
func (r *Reporter) ReportDir(domain string) string {
	return filepath.Join(r.outputDir, domain, "reports")
}

// WriteReport writes the full report and the bare scraper response, and
// returns the path of the full report.
func (r *Reporter) WriteReport(report *models.CrawlReport) (string, error) {
	if report.Domain == "" {
		return "", fmt.Errorf("report has no domain")
	}
	dir := r.ReportDir(report.Domain)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	data, err := report.ToJSON()
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	reportPath := filepath.Join(dir, BrandReportFile)
	if err := os.WriteFile(reportPath, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	Debugf("saved report: %s", reportPath)

	if err := r.saveJSON(dir, ScrapeResultFile, report.Response); err != nil {
		return "", err
	}

	Infof("✅ Reports written to %s", dir)
	return reportPath, nil
}

func (r *Reporter) saveJSON(dir, filename string, data interface{}) error {
	path := filepath.Join(dir, filename)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}

	Debugf("saved report: %s", path)
	return nil
}

// NewProgressBar creates the bar shown while pages are visited.
func NewProgressBar(max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
