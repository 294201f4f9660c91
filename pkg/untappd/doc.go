// Package untappd contains the Untappd-specific pieces of the scraper: the
// gallery page structure (item anchors and their embedded JSON payloads),
// URL construction for the site's pages, and the HTTP client used to
// retrieve image assets.
//
// Gallery pages are client-rendered; this package only parses HTML that a
// rendering session has already produced. Each gallery item is an anchor
// carrying a stable photo id, with a hidden per-item JSON payload holding
// the original-resolution image URL.
package untappd
