// Package downloader fetches gallery photo assets one at a time.
//
// The fetcher resolves each record to a position-based filename, skips
// files already on disk, and contains per-item failures so one bad asset
// never aborts the rest of the run.
package downloader
