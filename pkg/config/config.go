package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the Untappd photo scraper
type Config struct {
	// Target and credentials
	Untappd UntappdConfig `yaml:"untappd" json:"untappd"`

	// Browser session settings
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Gallery pagination settings
	Crawl CrawlConfig `yaml:"crawl" json:"crawl"`

	// Download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// UntappdConfig holds target-site specific configuration
type UntappdConfig struct {
	CredentialsFile string `yaml:"credentials_file" json:"credentials_file"`
	DefaultUser     string `yaml:"default_user" json:"default_user"`
	UserAgent       string `yaml:"user_agent" json:"user_agent"`
}

// BrowserConfig holds rendering session configuration
type BrowserConfig struct {
	Headless          bool          `yaml:"headless" json:"headless"`
	NavigationSettle  time.Duration `yaml:"navigation_settle" json:"navigation_settle"`
	LoadMoreSettle    time.Duration `yaml:"load_more_settle" json:"load_more_settle"`
	ScrollSettle      time.Duration `yaml:"scroll_settle" json:"scroll_settle"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout" json:"navigation_timeout"`
}

// CrawlConfig holds pagination configuration
type CrawlConfig struct {
	// MaxPhotos caps the crawl; 0 means no cap
	MaxPhotos int `yaml:"max_photos" json:"max_photos"`
	// MaxLoadMoreAttempts is the hard ceiling on "show more" activations
	MaxLoadMoreAttempts int `yaml:"max_load_more_attempts" json:"max_load_more_attempts"`
}

// DownloadConfig holds download-specific configuration
type DownloadConfig struct {
	// Delay is the politeness pause after every attempted download
	Delay             time.Duration `yaml:"delay" json:"delay"`
	DownloadTimeout   time.Duration `yaml:"download_timeout" json:"download_timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	BaseDirectory     string `yaml:"base_directory" json:"base_directory"`
	CreateUserFolders bool   `yaml:"create_user_folders" json:"create_user_folders"`
	FileNamePattern   string `yaml:"file_name_pattern" json:"file_name_pattern"`
	WriteManifest     bool   `yaml:"write_manifest" json:"write_manifest"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Untappd: UntappdConfig{
			CredentialsFile: "creds.txt",
			UserAgent:       "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		},
		Browser: BrowserConfig{
			Headless:          false,
			NavigationSettle:  3 * time.Second,
			LoadMoreSettle:    5 * time.Second,
			ScrollSettle:      1 * time.Second,
			NavigationTimeout: 60 * time.Second,
		},
		Crawl: CrawlConfig{
			MaxPhotos:           0,
			MaxLoadMoreAttempts: 100,
		},
		Download: DownloadConfig{
			Delay:             2 * time.Second,
			DownloadTimeout:   30 * time.Second,
			RequestsPerMinute: 0, // 0 means fixed delay pacing only
		},
		Output: OutputConfig{
			BaseDirectory:     ".",
			CreateUserFolders: true,
			FileNamePattern:   "photo_%04d.jpg",
			WriteManifest:     true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if credsFile := os.Getenv("UTSCRAPER_CREDENTIALS_FILE"); credsFile != "" {
		c.Untappd.CredentialsFile = credsFile
	}
	if user := os.Getenv("UTSCRAPER_TARGET_USER"); user != "" {
		c.Untappd.DefaultUser = user
	}
	if userAgent := os.Getenv("UTSCRAPER_USER_AGENT"); userAgent != "" {
		c.Untappd.UserAgent = userAgent
	}
	if outputDir := os.Getenv("UTSCRAPER_OUTPUT_DIR"); outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if delay := os.Getenv("UTSCRAPER_DOWNLOAD_DELAY"); delay != "" {
		d, err := time.ParseDuration(delay)
		if err != nil {
			return fmt.Errorf("invalid UTSCRAPER_DOWNLOAD_DELAY: %w", err)
		}
		c.Download.Delay = d
	}
	if maxPhotos := os.Getenv("UTSCRAPER_MAX_PHOTOS"); maxPhotos != "" {
		val, err := strconv.Atoi(maxPhotos)
		if err != nil {
			return fmt.Errorf("invalid UTSCRAPER_MAX_PHOTOS: %w", err)
		}
		if val > 0 {
			c.Crawl.MaxPhotos = val
		}
	}
	if headless := os.Getenv("UTSCRAPER_HEADLESS"); headless != "" {
		c.Browser.Headless = strings.ToLower(headless) == "true"
	}
	if logLevel := os.Getenv("UTSCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".utscraper.yaml",
		".utscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "utscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "utscraper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".utscraper.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Untappd.CredentialsFile == "" {
		errs = append(errs, errors.New("credentials file path is required"))
	}

	if c.Browser.NavigationSettle < 0 || c.Browser.LoadMoreSettle < 0 {
		errs = append(errs, errors.New("settle delays cannot be negative"))
	}
	if c.Browser.NavigationTimeout <= 0 {
		errs = append(errs, errors.New("navigation timeout must be positive"))
	}

	if c.Crawl.MaxPhotos < 0 {
		errs = append(errs, errors.New("max photos cannot be negative"))
	}
	if c.Crawl.MaxLoadMoreAttempts <= 0 {
		errs = append(errs, errors.New("max load-more attempts must be positive"))
	}

	if c.Download.Delay < 0 {
		errs = append(errs, errors.New("download delay cannot be negative"))
	}
	if c.Download.DownloadTimeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}

	if c.Output.BaseDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if !strings.Contains(c.Output.FileNamePattern, "%") {
		errs = append(errs, errors.New("file name pattern must contain a sequence verb"))
	}

	// Keep in sync with the levels the logger accepts.
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "warning": true,
		"error": true, "fatal": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if credsFile, ok := flags["creds-file"].(string); ok && credsFile != "" {
		c.Untappd.CredentialsFile = credsFile
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if maxPhotos, ok := flags["max-photos"].(int); ok && maxPhotos > 0 {
		c.Crawl.MaxPhotos = maxPhotos
	}
	if delay, ok := flags["delay"].(time.Duration); ok && delay > 0 {
		c.Download.Delay = delay
	}
	if headless, ok := flags["headless"].(bool); ok {
		c.Browser.Headless = headless
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".utscraper.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
