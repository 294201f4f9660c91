package downloader

import (
	"context"
	"fmt"
	"io"
	"time"

	"utscraper/pkg/errors"
	"utscraper/pkg/logger"
	"utscraper/pkg/ratelimit"
	"utscraper/pkg/untappd"
)

// AssetClient fetches an asset URL as a stream
type AssetClient interface {
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// AssetStorage persists fetched assets and answers existence checks
type AssetStorage interface {
	Exists(filename string) bool
	SaveFile(r io.Reader, filename string) error
}

// Status classifies the outcome of a single fetch
type Status string

const (
	StatusDownloaded Status = "downloaded"
	StatusSkipped    Status = "skipped"
	StatusFailed     Status = "failed"
)

// Result is the outcome of fetching one photo record
type Result struct {
	Record   untappd.PhotoRecord
	Filename string
	Status   Status
	Error    error
	Duration time.Duration
}

// Summary aggregates a whole fetch run
type Summary struct {
	Results    []Result
	Downloaded int
	Skipped    int
	Failed     int
}

// Options configures a Fetcher
type Options struct {
	// FileNamePattern is the fmt pattern applied to the 1-based record
	// index, e.g. "photo_%04d.jpg"
	FileNamePattern string
	// Limiter paces consecutive network fetches. Skipped records do not
	// consume the limiter. May be nil.
	Limiter ratelimit.Limiter
	// OnResult, when set, is invoked after each record is resolved
	OnResult func(Result)
	// Logger defaults to the global logger
	Logger logger.Logger
}

// Fetcher downloads photo records one at a time, in gallery order.
// Filenames are derived from each record's position, so a re-run over the
// same record list resolves to the same names and already present files
// are skipped rather than fetched again.
type Fetcher struct {
	client  AssetClient
	storage AssetStorage
	opts    Options
	logger  logger.Logger
}

// NewFetcher creates a sequential Fetcher
func NewFetcher(client AssetClient, storage AssetStorage, opts Options) *Fetcher {
	if opts.Logger == nil {
		opts.Logger = logger.GetLogger()
	}
	if opts.FileNamePattern == "" {
		opts.FileNamePattern = "photo_%04d.jpg"
	}

	return &Fetcher{
		client:  client,
		storage: storage,
		opts:    opts,
		logger:  opts.Logger,
	}
}

// FetchAll processes records in order. A failed record is recorded and
// logged but never aborts the run; only context cancellation stops the
// loop early, returning the partial summary alongside the error.
func (f *Fetcher) FetchAll(ctx context.Context, records []untappd.PhotoRecord) (*Summary, error) {
	summary := &Summary{}

	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return summary, errors.Wrap(errors.ErrorTypeInterrupted, err, "fetch cancelled")
		}

		result := f.fetchOne(ctx, record, i)
		summary.Results = append(summary.Results, result)

		switch result.Status {
		case StatusDownloaded:
			summary.Downloaded++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
		}

		if f.opts.OnResult != nil {
			f.opts.OnResult(result)
		}
	}

	return summary, nil
}

// fetchOne resolves a single record. idx is the record's zero-based
// position; the on-disk name uses the 1-based index.
func (f *Fetcher) fetchOne(ctx context.Context, record untappd.PhotoRecord, idx int) Result {
	start := time.Now()
	result := Result{
		Record:   record,
		Filename: fmt.Sprintf(f.opts.FileNamePattern, idx+1),
	}

	if f.storage.Exists(result.Filename) {
		f.logger.WithField("file", result.Filename).Debug("already present, skipping")
		result.Status = StatusSkipped
		result.Duration = time.Since(start)
		return result
	}

	if f.opts.Limiter != nil {
		f.opts.Limiter.Wait()
	}

	body, err := f.client.Download(ctx, record.ImageURL)
	if err != nil {
		return f.fail(result, start, errors.Wrap(errors.ErrorTypeDownload, err, "download %s", record.ID))
	}
	defer body.Close()

	if err := f.storage.SaveFile(body, result.Filename); err != nil {
		return f.fail(result, start, errors.Wrap(errors.ErrorTypeDownload, err, "save %s", result.Filename))
	}

	f.logger.WithFields(map[string]interface{}{
		"photo_id": record.ID,
		"file":     result.Filename,
	}).Debug("photo downloaded")

	result.Status = StatusDownloaded
	result.Duration = time.Since(start)
	return result
}

func (f *Fetcher) fail(result Result, start time.Time, err error) Result {
	f.logger.WithError(err).WithFields(map[string]interface{}{
		"photo_id": result.Record.ID,
		"file":     result.Filename,
	}).Error("photo fetch failed")

	result.Status = StatusFailed
	result.Error = err
	result.Duration = time.Since(start)
	return result
}
