package ui

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows progress during the long settle and download phases.
// All methods are safe to call on a nil Spinner so quiet mode can simply
// pass one that was never created.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a stopped spinner with the given suffix text
func NewSpinner(suffix string) *Spinner {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = " " + suffix
	return &Spinner{s: s}
}

// Start begins the spinner animation
func (sp *Spinner) Start() {
	if sp == nil || sp.s == nil {
		return
	}
	sp.s.Start()
}

// Stop halts the animation and clears the line
func (sp *Spinner) Stop() {
	if sp == nil || sp.s == nil {
		return
	}
	sp.s.Stop()
}

// SetSuffix updates the text shown next to the spinner
func (sp *Spinner) SetSuffix(text string) {
	if sp == nil || sp.s == nil {
		return
	}
	sp.s.Suffix = " " + text
}
