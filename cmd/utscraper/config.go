package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"utscraper/pkg/config"
	"utscraper/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage Untappd Scraper configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (UTSCRAPER_*)
  - Configuration file
  - Default values (lowest priority)`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file is created in the current directory as 'utscraper.yaml' unless a
different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration the tool would run with, merged from all
sources in priority order.`,
	Run: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = "utscraper.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	exampleConfig := `# Untappd Scraper Configuration File
#
# Every option here can also be set with an environment variable
# prefixed UTSCRAPER_, for example UTSCRAPER_CREDENTIALS_FILE.

untappd:
  # Plain text login file: email on the first line, password on the
  # second. Shown as a hint during the manual browser sign-in.
  credentials_file: "creds.txt"

  # Default profile to crawl when none is given on the command line
  default_user: ""

  # User agent presented by the browser session and asset downloads
  user_agent: ""

browser:
  # Headless runs without a window; manual login needs a visible one
  headless: false

  # Pause after loading the gallery page
  navigation_settle: 3s

  # Pause after activating a "show more" control
  load_more_settle: 5s

  # Pause after scrolling to the bottom of the page
  scroll_settle: 1s

  # Upper bound on any single browser operation
  navigation_timeout: 60s

crawl:
  # Stop after this many photos; 0 means no cap
  max_photos: 0

  # Hard ceiling on "show more" activations
  max_load_more_attempts: 100

download:
  # Politeness pause between downloads
  delay: 2s

  # Per-download HTTP timeout
  download_timeout: 30s

  # When set above 0, rate limit downloads per minute instead of the
  # fixed delay
  requests_per_minute: 0

output:
  # Base directory for downloads
  base_directory: "."

  # Create a folder named after the crawled user
  create_user_folders: true

  # fmt pattern applied to each photo's 1-based position
  file_name_pattern: "photo_%04d.jpg"

  # Write a photos.json manifest next to the downloads
  write_manifest: true

logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log file path; empty logs to the console only
  file: ""
`

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Create your credentials file (email, then password, one per line)")
	fmt.Println("2. Start downloading with 'utscraper crawl <username>'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (UTSCRAPER_*)")
	if configFile != "" {
		fmt.Printf("3. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("3. Configuration file: (not specified)")
	}
	fmt.Println("4. Default values")
}
