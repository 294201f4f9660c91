// Package ratelimit provides request pacing for the Untappd photo scraper.
//
// Two implementations sit behind the Limiter interface:
//
// Fixed Interval:
//   - Enforces a constant pause between consecutive requests
//   - Used as the politeness delay between image downloads
//
// Token Bucket:
//   - Fixed capacity bucket that refills after a specified period
//   - Available for requests-per-minute pacing when configured
//
// Usage:
//
//	// Two seconds between downloads
//	limiter := ratelimit.NewFixedInterval(2 * time.Second)
//
//	limiter.Wait() // returns immediately the first time
//	// ... download ...
//	limiter.Wait() // blocks until 2s after the previous Wait
package ratelimit
