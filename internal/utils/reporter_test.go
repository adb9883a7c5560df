package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dope-playground/brandscout/internal/models"
)

func TestReporter_WriteReport(t *testing.T) {
	dir := t.TempDir()
	reporter := NewReporter(dir)

	report := &models.CrawlReport{
		TaskID:    "task-1",
		TargetURL: "https://acme.test/",
		Domain:    "acme.test",
		Mode:      models.ModeStatic,
		StartTime: time.Now(),
		EndTime:   time.Now(),
		Response: models.ScraperToolResponse{
			TotalLinksFound: 4,
			PagesScraped:    2,
			Data:            models.AggregatedResult{Images: []string{"https://acme.test/logo.png"}},
		},
		BrandColors: models.FallbackPalette.Slice(),
	}

	path, err := reporter.WriteReport(report)
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if want := filepath.Join(dir, "acme.test", "reports", BrandReportFile); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	var loaded models.CrawlReport
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if err := loaded.FromJSON(data); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if loaded.TaskID != "task-1" || loaded.Response.PagesScraped != 2 || len(loaded.BrandColors) != 3 {
		t.Errorf("unexpected report contents: %+v", loaded)
	}

	raw, err := os.ReadFile(filepath.Join(reporter.ReportDir("acme.test"), ScrapeResultFile))
	if err != nil {
		t.Fatalf("read scrape result: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(raw, &resp); err != nil {
		t.Fatalf("decode scrape result: %v", err)
	}
	for _, key := range []string{"totalLinksFound", "pagesScraped", "data", "linkCategories"} {
		if _, ok := resp[key]; !ok {
			t.Errorf("scrape result missing %q", key)
		}
	}
}

func TestReporter_RequiresDomain(t *testing.T) {
	if _, err := NewReporter(t.TempDir()).WriteReport(&models.CrawlReport{}); err == nil {
		t.Error("expected error for report without domain")
	}
}

func TestReadURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# targets\nhttps://acme.test\n\n  http://roofing.test/home  \nftp://files.test\nnot a url\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadURLsFromFile(path)
	if err != nil {
		t.Fatalf("ReadURLsFromFile: %v", err)
	}
	want := []string{"https://acme.test", "http://roofing.test/home"}
	if len(urls) != len(want) {
		t.Fatalf("got %v, want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %s, want %s", i, urls[i], want[i])
		}
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(empty, []byte("# nothing\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadURLsFromFile(empty); err == nil {
		t.Error("expected error for file without URLs")
	}
}
