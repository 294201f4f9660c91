package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"utscraper/pkg/ui"
)

// errReported marks failures that were already rendered to the terminal.
// Execute still exits non-zero for them but does not print them again.
var errReported = errors.New("already reported")

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	headless   bool
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "utscraper",
	Short: "Download photo galleries from Untappd user profiles",
	Long: `Untappd Scraper is a command-line tool for downloading the full photo
gallery of an Untappd user.

It drives a real browser session so you can complete the Untappd login
(including any captcha) by hand, then walks the gallery's "show more"
pagination and downloads every check-in photo in original quality.

Beer and brewery logo assets are filtered out automatically, downloads
resume by skipping files already on disk, and a photos.json manifest
records what was fetched.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != "version" && cmd.Name() != "help" && cmd.Name() != "completion" && !quiet {
			ui.PrintLogo()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ./utscraper.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&headless, "headless", false, "run the browser without a window (login must already be cached)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output, keeping errors and warnings")

	rootCmd.SetVersionTemplate(`Untappd Scraper {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
