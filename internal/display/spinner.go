package display

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner is a terminal progress indicator for long backend calls.
type Spinner struct {
	s *spinner.Spinner
}

// NewSpinner creates a stopped spinner carrying the given message.
func NewSpinner(message string) *Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	_ = s.Color("cyan")
	return &Spinner{s: s}
}

// Start begins the animation.
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop halts the animation and clears the line.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

// UpdateMessage swaps the message while the spinner keeps running.
func (sp *Spinner) UpdateMessage(message string) {
	sp.s.Suffix = " " + message
}
