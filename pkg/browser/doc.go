// Package browser wraps a chromedp-driven Chrome session behind the small
// surface the gallery crawler needs: navigate, read the rendered document,
// scroll, and script-activate a control. The session runs headful by
// default because authentication is performed by a human operator in the
// opened window.
package browser
