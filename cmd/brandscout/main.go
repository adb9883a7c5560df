package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dope-playground/brandscout/internal/config"
	"github.com/dope-playground/brandscout/internal/core"
	"github.com/dope-playground/brandscout/internal/models"
	"github.com/dope-playground/brandscout/internal/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

var (
	configFile string
	verbose    bool
	logLevel   string

	headers        []string
	validateConfig bool

	targetURL string
	urlFile   string
	mode      string
	headless  bool
	waitTime  int
	highLimit int
	medLimit  int
	noBrand   bool
	outputDir string

	batchDelay      int
	continueOnError bool

	forceInit bool
)

// appConfig is loaded once in PersistentPreRunE.
var appConfig *core.Config

var rootCmd = &cobra.Command{
	Use:   "brandscout",
	Short: "Scrape a business website for marketing facts and brand assets",
	Long: `brandscout visits a company's homepage and its most relevant pages,
extracts marketing facts (headlines, services, offers, testimonials, service
areas and more), classifies the site's images and derives three brand colors.

Examples:
  brandscout -u https://example.com
  brandscout -u https://example.com --mode static --no-brand
  brandscout -f urls.txt --batch-delay 5
  brandscout -u https://example.com -H "Cookie: consent=true"

The model API key is read from the environment variable named by
llm.api_key_env (GEMINI_API_KEY by default).

Version: ` + Version + `
Built: ` + BuildTime,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		appConfig = cfg

		logConfig := utils.LogConfig{
			Level:      cfg.Logging.Level,
			LogDir:     cfg.Logging.LogDir,
			MaxSize:    cfg.Logging.Rotation.MaxSize,
			MaxBackups: cfg.Logging.Rotation.MaxBackups,
			MaxAge:     cfg.Logging.Rotation.MaxAge,
			Compress:   cfg.Logging.Rotation.Compress,
		}
		if logLevel != "" {
			logConfig.Level = logLevel
		}
		if verbose {
			logConfig.Level = "debug"
		}
		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	RunE: runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	headerManager, err := core.NewHeaderManager(appConfig.Headers, headers)
	if err != nil {
		return fmt.Errorf("parse headers: %w", err)
	}

	if validateConfig {
		return printHeaderCheck(headerManager)
	}

	if targetURL == "" && urlFile == "" {
		return cmd.Help()
	}

	appConfig.MergeCLIFlags(collectOverrides(cmd))
	if err := ValidateFlags(targetURL, urlFile, appConfig); err != nil {
		return err
	}
	if _, err := headerManager.GetHeaders(); err != nil {
		return fmt.Errorf("invalid headers: %w", err)
	}
	utils.Debugf("effective headers: %v", headerManager.GetSafeHeaders())

	ctx := cmd.Context()
	session := core.NewSession(appConfig, headerManager, core.WithProgress(newProgressReporter()))
	reporter := utils.NewReporter(appConfig.Output.BaseDir)

	if urlFile != "" {
		urls, err := utils.ReadURLsFromFile(urlFile)
		if err != nil {
			return err
		}
		summary := core.NewBatchCrawler(session, reporter, batchDelay, continueOnError).CrawlBatch(ctx, urls)
		if summary.SuccessCount == 0 {
			return fmt.Errorf("all %d URLs failed", summary.TotalURLs)
		}
		utils.Info("✨ Batch finished")
		return nil
	}

	report, err := session.Run(ctx, targetURL)
	if err != nil {
		return fmt.Errorf("crawl %s: %w", targetURL, err)
	}
	path, err := reporter.WriteReport(report)
	if err != nil {
		return err
	}
	printSummary(report, path)
	return nil
}

// collectOverrides returns only the flags the user actually set.
func collectOverrides(cmd *cobra.Command) core.CLIOverrides {
	flags := cmd.Flags()
	o := core.CLIOverrides{NoBrand: noBrand}
	if flags.Changed("mode") {
		o.Mode = &mode
	}
	if flags.Changed("headless") {
		o.Headless = &headless
	}
	if flags.Changed("wait") {
		o.WaitTime = &waitTime
	}
	if flags.Changed("high") {
		o.High = &highLimit
	}
	if flags.Changed("medium") {
		o.Medium = &medLimit
	}
	if flags.Changed("output") {
		o.OutputDir = &outputDir
	}
	if logLevel != "" {
		o.LogLevel = &logLevel
	}
	return o
}

// newProgressReporter draws one bar per crawl.
func newProgressReporter() core.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(visited, planned int) {
		if bar == nil || visited == 1 {
			bar = utils.NewProgressBar(planned, "pages")
		}
		bar.ChangeMax(planned)
		_ = bar.Set(visited)
		if visited >= planned {
			_ = bar.Finish()
		}
	}
}

func printHeaderCheck(hm *core.HeaderManager) error {
	utils.Info("🔍 Validating HTTP headers...")
	if err := hm.Validate(); err != nil {
		return fmt.Errorf("header validation failed: %w", err)
	}
	safe := hm.GetSafeHeaders()
	utils.Infof("✅ Headers valid (%d):", len(safe))
	for name, value := range safe {
		utils.Infof("  %s: %s", name, value)
	}
	return nil
}

func printSummary(report *models.CrawlReport, path string) {
	resp := report.Response
	fmt.Println("\n==================================================")
	fmt.Printf("📊 %s\n", report.TargetURL)
	fmt.Println("==================================================")
	fmt.Printf("🔗 Links found: %d (high %d, medium %d, low %d)\n",
		resp.TotalLinksFound, resp.LinkCategories.High, resp.LinkCategories.Medium, resp.LinkCategories.Low)
	fmt.Printf("📄 Pages scraped: %d\n", resp.PagesScraped)
	fmt.Printf("📰 Headlines: %d\n", len(resp.Data.Headlines))
	fmt.Printf("🛠️  Services: %d\n", len(resp.Data.AllServices))
	fmt.Printf("🖼️  Images: %d (%d classified)\n", len(resp.Data.Images), len(report.ClassifiedImages))
	fmt.Printf("🔤 Fonts: %v\n", resp.Data.Fonts)
	fmt.Printf("🎨 Brand colors: %v\n", report.BrandColors)
	fmt.Printf("⏱️  Duration: %.2fs\n", report.Duration)
	fmt.Printf("📁 Report: %s\n", path)
	fmt.Println("==================================================")
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Write the default configuration file",
	Args:  cobra.MaximumNArgs(1),
	// the config file may not exist yet
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFile
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteTemplate(path, forceInit); err != nil {
			return err
		}
		fmt.Printf("✅ Wrote %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("brandscout %s\n", Version)
		fmt.Printf("Built: %s\n", BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringSliceVarP(&headers, "header", "H", []string{}, "extra HTTP header 'Name: Value', repeatable")
	rootCmd.PersistentFlags().BoolVar(&validateConfig, "validate-config", false, "validate headers and exit")

	rootCmd.Flags().StringVarP(&targetURL, "url", "u", "", "site to scrape")
	rootCmd.Flags().StringVarP(&urlFile, "url-file", "f", "", "file with one URL per line")
	rootCmd.Flags().StringVarP(&mode, "mode", "m", string(models.ModeDynamic), "page driver (dynamic|static)")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "run Chrome headless")
	rootCmd.Flags().IntVarP(&waitTime, "wait", "w", 2, "seconds to wait after each page load")
	rootCmd.Flags().IntVar(&highLimit, "high", models.DefaultHighPriorityLimit, "high priority pages to visit")
	rootCmd.Flags().IntVar(&medLimit, "medium", models.DefaultMediumPriorityLimit, "medium priority pages to visit")
	rootCmd.Flags().BoolVar(&noBrand, "no-brand", false, "skip image classification and brand colors")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "output", "output directory")

	rootCmd.Flags().IntVar(&batchDelay, "batch-delay", 1, "seconds between URLs in batch mode")
	rootCmd.Flags().BoolVar(&continueOnError, "continue-on-error", true, "keep going after a failed URL")

	initConfigCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(versionCmd, initConfigCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
