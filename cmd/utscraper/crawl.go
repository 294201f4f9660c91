package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"utscraper/pkg/auth"
	"utscraper/pkg/browser"
	"utscraper/pkg/config"
	"utscraper/pkg/crawler"
	"utscraper/pkg/downloader"
	"utscraper/pkg/logger"
	"utscraper/pkg/metadata"
	"utscraper/pkg/ratelimit"
	"utscraper/pkg/storage"
	"utscraper/pkg/ui"
	"utscraper/pkg/untappd"
)

var (
	// Crawl command flags
	outputDir     string
	maxPhotos     int
	downloadDelay time.Duration
	credsFile     string
	noManifest    bool
)

// crawlCmd represents the crawl command
var crawlCmd = &cobra.Command{
	Use:   "crawl <username>",
	Short: "Download all gallery photos from an Untappd user profile",
	Long: `Download all photos from an Untappd user's photo gallery.

A browser window opens on the Untappd login page. Complete the login by
hand (including any captcha), then press Enter in this terminal. The
crawler walks the gallery's "show more" pagination, collects every
check-in photo, and downloads them sequentially into a folder named
after the user.

Files already on disk are skipped, so an interrupted run can simply be
started again.`,
	Example: `  # Download every photo from a profile
  utscraper crawl goosinsky

  # Cap the crawl at 200 photos in a custom directory
  utscraper crawl goosinsky --max-photos 200 --output ./beer-photos

  # Slow down between downloads
  utscraper crawl goosinsky --delay 5s`,
	Args: cobra.MaximumNArgs(1),
	// Failures return through RunE; the deferred browser teardown must
	// run on every exit path.
	RunE:          runCrawl,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for downloads (default: current directory)")
	crawlCmd.Flags().IntVar(&maxPhotos, "max-photos", 0, "stop after this many photos (0 = no cap)")
	crawlCmd.Flags().DurationVar(&downloadDelay, "delay", 0, "pause between downloads (default: 2s)")
	crawlCmd.Flags().StringVar(&credsFile, "creds-file", "", "credentials file with email and password on separate lines")
	crawlCmd.Flags().BoolVar(&noManifest, "no-manifest", false, "skip writing the photos.json manifest")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	var username string
	if len(args) > 0 {
		username = strings.TrimSpace(args[0])
	}

	// Build flags map from command line
	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if maxPhotos > 0 {
		flags["max-photos"] = maxPhotos
	}
	if downloadDelay > 0 {
		flags["delay"] = downloadDelay
	}
	if credsFile != "" {
		flags["creds-file"] = credsFile
	}
	if cmd.Flags().Changed("headless") || headless {
		flags["headless"] = headless
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		return errReported
	}

	if username == "" {
		username = cfg.Untappd.DefaultUser
	}
	if username == "" {
		ui.PrintError("No profile given", "pass a username or set untappd.default_user in the config")
		return errReported
	}
	if !quiet {
		ui.PrintInfo("Target profile", username)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		return errReported
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("Untappd Scraper starting")

	// Credentials are only shown as a login hint; the sign-in itself is
	// done by hand in the browser window.
	credManager, err := auth.NewManager(cfg.Untappd.CredentialsFile)
	if err != nil {
		ui.PrintError("Failed to initialize credential manager", err.Error())
		return errReported
	}
	creds, err := credManager.Retrieve()
	if err != nil {
		ui.PrintError("No Untappd credentials found", err.Error())
		fmt.Println("\nEither create a credentials file (email on the first line,")
		fmt.Printf("password on the second) at %q, or store them with:\n", cfg.Untappd.CredentialsFile)
		fmt.Println("  utscraper auth login")
		return errReported
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.NewSession(ctx, browser.Options{
		Headless:  cfg.Browser.Headless,
		UserAgent: cfg.Untappd.UserAgent,
		OpTimeout: cfg.Browser.NavigationTimeout,
	}, log)
	if err != nil {
		ui.PrintError("Failed to start browser session", err.Error())
		return errReported
	}
	defer session.Close()

	c := crawler.New(session, crawler.Options{
		NavigationSettle: cfg.Browser.NavigationSettle,
		ScrollSettle:     cfg.Browser.ScrollSettle,
		LoadMoreSettle:   cfg.Browser.LoadMoreSettle,
		MaxAttempts:      cfg.Crawl.MaxLoadMoreAttempts,
		Events:           crawlEvents(),
		Logger:           log,
	})

	awaitAuth := func(ctx context.Context) error {
		fmt.Println()
		ui.PrintInfo("Login email", creds.Email)
		return ui.AwaitEnter(ctx, os.Stdin,
			"Log in to Untappd in the browser window, then press Enter here to continue...")
	}

	records, err := c.Crawl(ctx, username, cfg.Crawl.MaxPhotos, awaitAuth)
	if err != nil {
		if ctx.Err() != nil {
			ui.PrintWarning("Crawl interrupted", fmt.Sprintf("%d photos collected before stopping", len(records)))
			return errReported
		}
		log.WithError(err).WithField("username", username).Error("Crawl failed")
		ui.PrintError("CRAWL FAILED", err.Error())
		return errReported
	}

	if len(records) == 0 {
		ui.PrintWarning("No photos found", username)
		return nil
	}
	if !quiet {
		ui.PrintSuccess(fmt.Sprintf("Collected %d photos", len(records)))
	}

	// Resolve output directory
	dir := cfg.Output.BaseDirectory
	if cfg.Output.CreateUserFolders {
		dir = filepath.Join(dir, username)
	}
	manager, err := storage.NewManager(dir)
	if err != nil {
		ui.PrintError("Failed to prepare output directory", err.Error())
		return errReported
	}

	var limiter ratelimit.Limiter
	if cfg.Download.RequestsPerMinute > 0 {
		limiter = ratelimit.NewTokenBucket(cfg.Download.RequestsPerMinute, time.Minute)
	} else {
		limiter = ratelimit.NewFixedInterval(cfg.Download.Delay)
	}

	client := untappd.NewClient(cfg.Download.DownloadTimeout, cfg.Untappd.UserAgent, log)
	fetcher := downloader.NewFetcher(client, manager, downloader.Options{
		FileNamePattern: cfg.Output.FileNamePattern,
		Limiter:         limiter,
		Logger:          log,
		OnResult: func(r downloader.Result) {
			switch r.Status {
			case downloader.StatusDownloaded:
				if !quiet {
					fmt.Printf("  %s %s\n", ui.Green("✓"), r.Filename)
				}
			case downloader.StatusSkipped:
				if !quiet {
					fmt.Printf("  %s %s (already present)\n", ui.Dim("-"), r.Filename)
				}
			case downloader.StatusFailed:
				fmt.Printf("  %s %s: %v\n", ui.Red("✗"), r.Filename, r.Error)
			}
		},
	})

	summary, err := fetcher.FetchAll(ctx, records)
	if err != nil {
		if ctx.Err() != nil {
			ui.PrintWarning("Download interrupted",
				fmt.Sprintf("%d downloaded, %d skipped", summary.Downloaded, summary.Skipped))
			return errReported
		}
		ui.PrintError("DOWNLOAD FAILED", err.Error())
		return errReported
	}

	if cfg.Output.WriteManifest && !noManifest {
		manifest := metadata.NewManifest(username, records, cfg.Output.FileNamePattern)
		if err := manifest.Save(manager.OutputDir()); err != nil {
			log.WithError(err).Warn("Failed to write manifest")
			ui.PrintWarning("Failed to write manifest", err.Error())
		}
	}

	log.WithFields(map[string]interface{}{
		"username":   username,
		"downloaded": summary.Downloaded,
		"skipped":    summary.Skipped,
		"failed":     summary.Failed,
	}).Info("Crawl completed")

	if !quiet {
		ui.PrintSuccess(fmt.Sprintf("Done: %d downloaded, %d skipped, %d failed in %s",
			summary.Downloaded, summary.Skipped, summary.Failed, manager.OutputDir()))
	}
	if summary.Failed > 0 {
		ui.PrintError("INCOMPLETE", fmt.Sprintf("%d photos failed to download", summary.Failed))
		return errReported
	}
	return nil
}

// crawlEvents renders crawl progress to the terminal
func crawlEvents() crawler.Events {
	var spin *ui.Spinner
	if !quiet {
		spin = ui.NewSpinner("loading photo gallery...")
	}

	return crawler.Events{
		PhaseChanged: func(phase crawler.Phase) {
			switch phase {
			case crawler.PhaseNavigate:
				spin.Start()
			case crawler.PhaseExtract:
				spin.Stop()
				if !quiet {
					ui.PrintHighlight("[WALKING PAGINATION]")
				}
			case crawler.PhaseDone:
				spin.Stop()
			}
		},
		PassCompleted: func(stats crawler.PassStats) {
			if !quiet {
				fmt.Printf("  Loaded photos: %d (+%d new)\n", stats.Total, stats.New)
			}
		},
		Finished: func(reason crawler.TerminationReason, total int) {
			switch reason {
			case crawler.ReasonCapReached:
				if !quiet {
					ui.PrintInfo("Photo cap reached", fmt.Sprintf("%d", total))
				}
			case crawler.ReasonAttemptLimit:
				ui.PrintWarning("Pagination attempt ceiling reached", fmt.Sprintf("%d photos collected", total))
			}
		},
	}
}
