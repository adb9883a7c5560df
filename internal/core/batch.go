package core

import (
	"context"
	"fmt"
	"time"

	"github.com/dope-playground/brandscout/internal/models"
	"github.com/dope-playground/brandscout/internal/utils"
)

// Runner runs one crawl. *Session implements it.
type Runner interface {
	Run(ctx context.Context, targetURL string) (*models.CrawlReport, error)
}

// ReportWriter persists a finished report.
type ReportWriter interface {
	WriteReport(report *models.CrawlReport) (string, error)
}

// BatchCrawler crawls a list of sites one after another.
type BatchCrawler struct {
	runner        Runner
	writer        ReportWriter
	batchDelay    time.Duration
	continueOnErr bool
}

// BatchResult is the outcome for one URL.
type BatchResult struct {
	URL          string
	Success      bool
	Error        error
	ReportPath   string
	PagesScraped int
	Images       int
	ProcessedAt  time.Time
	Duration     float64
}

// BatchSummary aggregates a batch.
type BatchSummary struct {
	TotalURLs     int
	SuccessCount  int
	FailCount     int
	TotalPages    int
	TotalImages   int
	TotalDuration float64
	Results       []BatchResult
}

func NewBatchCrawler(runner Runner, writer ReportWriter, batchDelay int, continueOnErr bool) *BatchCrawler {
	return &BatchCrawler{
		runner:        runner,
		writer:        writer,
		batchDelay:    time.Duration(batchDelay) * time.Second,
		continueOnErr: continueOnErr,
	}
}

// CrawlBatch processes urls in order. Without continue-on-error the first
// failure stops the batch. A cancelled context stops it between targets.
func (bc *BatchCrawler) CrawlBatch(ctx context.Context, urls []string) *BatchSummary {
	utils.Infof("🚀 Starting batch of %d URLs", len(urls))

	summary := &BatchSummary{
		TotalURLs: len(urls),
		Results:   make([]BatchResult, 0, len(urls)),
	}
	startTime := time.Now()

	for i, targetURL := range urls {
		if ctx.Err() != nil {
			utils.Warn("batch cancelled")
			break
		}
		utils.Infof("==================== [%d/%d] %s ====================", i+1, len(urls), targetURL)

		result := bc.crawlSingleURL(ctx, targetURL)
		summary.Results = append(summary.Results, result)

		if result.Success {
			summary.SuccessCount++
			summary.TotalPages += result.PagesScraped
			summary.TotalImages += result.Images
		} else {
			summary.FailCount++
			utils.Errorf("❌ %s failed: %v", targetURL, result.Error)
			if !bc.continueOnErr {
				utils.Warn("batch stopped (--continue-on-error=false)")
				break
			}
		}

		if i < len(urls)-1 && bc.batchDelay > 0 {
			utils.Debugf("waiting %.0fs before next URL", bc.batchDelay.Seconds())
			select {
			case <-ctx.Done():
			case <-time.After(bc.batchDelay):
			}
		}
	}

	summary.TotalDuration = time.Since(startTime).Seconds()
	bc.printSummary(summary)
	return summary
}

func (bc *BatchCrawler) crawlSingleURL(ctx context.Context, targetURL string) BatchResult {
	result := BatchResult{URL: targetURL, ProcessedAt: time.Now()}
	startTime := time.Now()

	report, err := bc.runner.Run(ctx, targetURL)
	if err != nil {
		result.Error = fmt.Errorf("crawl: %w", err)
		result.Duration = time.Since(startTime).Seconds()
		return result
	}

	if bc.writer != nil {
		path, err := bc.writer.WriteReport(report)
		if err != nil {
			result.Error = fmt.Errorf("write report: %w", err)
			result.Duration = time.Since(startTime).Seconds()
			return result
		}
		result.ReportPath = path
	}

	result.Success = true
	result.PagesScraped = report.Response.PagesScraped
	result.Images = len(report.Response.Data.Images)
	result.Duration = time.Since(startTime).Seconds()
	return result
}

func (bc *BatchCrawler) printSummary(summary *BatchSummary) {
	utils.Info("==================================================")
	utils.Info("📊 Batch summary")
	utils.Infof("URLs: %d", summary.TotalURLs)
	utils.Infof("✅ Succeeded: %d", summary.SuccessCount)
	utils.Infof("❌ Failed: %d", summary.FailCount)
	utils.Infof("📄 Pages scraped: %d", summary.TotalPages)
	utils.Infof("🖼️  Images found: %d", summary.TotalImages)
	utils.Infof("⏱️  Total time: %.2fs", summary.TotalDuration)
	utils.Info("==================================================")

	if summary.FailCount > 0 {
		utils.Warn("Failed URLs:")
		for _, result := range summary.Results {
			if !result.Success {
				utils.Warnf("  - %s: %v", result.URL, result.Error)
			}
		}
	}
}
