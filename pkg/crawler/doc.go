// Package crawler implements the gallery pagination loop: drive a rendering
// session through repeated "show more" activations, re-scan the full
// rendered document after each one, deduplicate items by their stable photo
// id, and stop on cap, exhaustion, or the hard attempt ceiling.
//
// Authentication is manual-in-the-loop: the crawler opens the login page
// and blocks on an AuthWaiter until the operator signals that sign-in has
// completed. Progress is reported through the Events callback sink so the
// caller decides how (or whether) to render it.
package crawler
