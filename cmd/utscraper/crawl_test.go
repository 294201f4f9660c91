package main

import (
	"errors"
	"io"
	"os"
	"testing"

	"utscraper/pkg/crawler"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to read captured output: %v", err)
	}
	return string(data)
}

func TestCrawlCommandReturnsErrorsForDeferredTeardown(t *testing.T) {
	// The browser session and signal context are released by defers in
	// runCrawl, so failures must surface as returned errors, never as a
	// direct process exit that would skip them.
	if crawlCmd.RunE == nil {
		t.Fatal("Expected crawl command to report failures through RunE")
	}
	if crawlCmd.Run != nil {
		t.Error("Expected crawl command to have no plain Run handler")
	}
}

func TestRunCrawlBadConfigReturnsReportedError(t *testing.T) {
	oldConfig := configFile
	oldQuiet := quiet
	configFile = "/nonexistent/utscraper.yaml"
	quiet = true
	defer func() {
		configFile = oldConfig
		quiet = oldQuiet
	}()

	var err error
	captureStdout(t, func() {
		err = runCrawl(crawlCmd, []string{"goosinsky"})
	})
	if err == nil {
		t.Fatal("Expected an error for a missing explicit config file")
	}
	if !errors.Is(err, errReported) {
		t.Errorf("Expected an already-reported error, got %v", err)
	}
}

func TestCrawlEventsQuietSuppressesProgress(t *testing.T) {
	oldQuiet := quiet
	quiet = true
	defer func() { quiet = oldQuiet }()

	events := crawlEvents()
	out := captureStdout(t, func() {
		events.PhaseChanged(crawler.PhaseExtract)
		events.PassCompleted(crawler.PassStats{Total: 5, New: 2})
		events.Finished(crawler.ReasonCapReached, 5)
	})
	if out != "" {
		t.Errorf("Expected no progress output in quiet mode, got %q", out)
	}
}

func TestCrawlEventsPrintsProgress(t *testing.T) {
	oldQuiet := quiet
	quiet = false
	defer func() { quiet = oldQuiet }()

	events := crawlEvents()
	out := captureStdout(t, func() {
		events.PassCompleted(crawler.PassStats{Total: 5, New: 2})
	})
	if out != "  Loaded photos: 5 (+2 new)\n" {
		t.Errorf("Unexpected pass output: %q", out)
	}
}
