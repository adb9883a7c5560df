package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dope-playground/brandscout/internal/crawlers"
	"github.com/dope-playground/brandscout/internal/llm"
	"github.com/dope-playground/brandscout/internal/models"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Crawl    models.CrawlConfig `mapstructure:"crawl"`
	LLM      llm.Config         `mapstructure:"llm"`
	Brand    BrandConfig        `mapstructure:"brand"`
	Logging  LoggingConfig      `mapstructure:"logging"`
	Output   OutputConfig       `mapstructure:"output"`
	Headers  map[string]string  `mapstructure:"headers"`
	Resource ResourceConfig     `mapstructure:"resource"`
}

// BrandConfig controls the image classification and palette steps.
type BrandConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	MaxImages int  `mapstructure:"max_images"` // images sent to the classifier
}

type LoggingConfig struct {
	Level    string         `mapstructure:"level"`
	LogDir   string         `mapstructure:"log_dir"`
	Rotation RotationConfig `mapstructure:"rotation"`
}

type RotationConfig struct {
	MaxSize    int  `mapstructure:"max_size"`
	MaxBackups int  `mapstructure:"max_backups"`
	MaxAge     int  `mapstructure:"max_age"`
	Compress   bool `mapstructure:"compress"`
}

type OutputConfig struct {
	BaseDir string `mapstructure:"base_dir"`
}

// ResourceConfig bounds worker counts derived from system resources.
type ResourceConfig struct {
	SafetyThreshold  int64 `mapstructure:"safety_threshold"` // MB kept free
	CPULoadThreshold int   `mapstructure:"cpu_load_threshold"`
	MaxWorkersLimit  int   `mapstructure:"max_workers_limit"`
}

// MonitorConfig converts the section for crawlers.NewResourceMonitor.
func (r ResourceConfig) MonitorConfig() crawlers.ResourceMonitorConfig {
	mc := crawlers.DefaultResourceMonitorConfig()
	if r.SafetyThreshold > 0 {
		mc.SafetyThreshold = r.SafetyThreshold * 1024 * 1024
	}
	if r.CPULoadThreshold > 0 {
		mc.CPULoadThreshold = r.CPULoadThreshold
	}
	if r.MaxWorkersLimit > 0 {
		mc.MaxWorkersLimit = r.MaxWorkersLimit
	}
	return mc
}

// LoadConfig reads configPath, or config.yaml from ./configs, . and
// ~/.brandscout. A missing file leaves every value at its default.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".brandscout"))
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &models.ConfigError{FilePath: configPath, Cause: err}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if config.Headers == nil {
		config.Headers = make(map[string]string)
	}
	return &config, nil
}

// setDefaults mirrors configs/config.yaml.
func setDefaults(v *viper.Viper) {
	defaults := models.DefaultCrawlConfig()
	v.SetDefault("crawl.mode", string(defaults.Mode))
	v.SetDefault("crawl.headless", defaults.Headless)
	v.SetDefault("crawl.wait_time", defaults.WaitTime)
	v.SetDefault("crawl.page_timeout", defaults.PageTimeout)
	v.SetDefault("crawl.high_priority_limit", defaults.HighPriorityLimit)
	v.SetDefault("crawl.medium_priority_limit", defaults.MediumPriorityLimit)
	v.SetDefault("crawl.separate_image_pass", defaults.SeparateImagePass)
	v.SetDefault("crawl.max_page_text", defaults.MaxPageText)
	v.SetDefault("crawl.image_workers", defaults.ImageWorkers)

	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", llm.DefaultGeminiModel)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.api_key_env", llm.DefaultAPIKeyEnv)
	v.SetDefault("llm.temperature", 0.2)

	v.SetDefault("brand.enabled", true)
	v.SetDefault("brand.max_images", 20)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.log_dir", "logs")
	v.SetDefault("logging.rotation.max_size", 10)
	v.SetDefault("logging.rotation.max_backups", 3)
	v.SetDefault("logging.rotation.max_age", 28)
	v.SetDefault("logging.rotation.compress", true)

	v.SetDefault("output.base_dir", "output")

	v.SetDefault("resource.safety_threshold", 500)
	v.SetDefault("resource.cpu_load_threshold", 90)
	v.SetDefault("resource.max_workers_limit", 8)
}

// Validate checks the sections a crawl depends on.
func (c *Config) Validate() error {
	if err := c.Crawl.Validate(); err != nil {
		return err
	}
	if c.Brand.MaxImages < 0 {
		return fmt.Errorf("brand.max_images must not be negative, got %d", c.Brand.MaxImages)
	}
	if c.Output.BaseDir == "" {
		return fmt.Errorf("output.base_dir must not be empty")
	}
	return nil
}

// CLIOverrides carries flag values that take precedence over the file.
// Nil pointers leave the configured value untouched.
type CLIOverrides struct {
	Mode      *string
	Headless  *bool
	WaitTime  *int
	High      *int
	Medium    *int
	NoBrand   bool
	OutputDir *string
	LogLevel  *string
}

// MergeCLIFlags applies CLI overrides.
func (c *Config) MergeCLIFlags(o CLIOverrides) {
	if o.Mode != nil {
		c.Crawl.Mode = models.CrawlMode(*o.Mode)
	}
	if o.Headless != nil {
		c.Crawl.Headless = *o.Headless
	}
	if o.WaitTime != nil {
		c.Crawl.WaitTime = *o.WaitTime
	}
	if o.High != nil {
		c.Crawl.HighPriorityLimit = *o.High
	}
	if o.Medium != nil {
		c.Crawl.MediumPriorityLimit = *o.Medium
	}
	if o.NoBrand {
		c.Brand.Enabled = false
	}
	if o.OutputDir != nil {
		c.Output.BaseDir = *o.OutputDir
	}
	if o.LogLevel != nil {
		c.Logging.Level = *o.LogLevel
	}
}
