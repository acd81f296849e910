//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/seqcalc/internal/orchestration"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so that DisplayProgress can be tested
// without a terminal. It defines the essential controls: starting, stopping,
// and updating the status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState tracks which of several concurrent operations have
// finished.
type ProgressState struct {
	done   []bool
	failed int
}

// NewProgressState creates a state for numOperations operations.
func NewProgressState(numOperations int) *ProgressState {
	return &ProgressState{done: make([]bool, numOperations)}
}

// Update marks the operation of u as finished. Out of range indexes are
// ignored.
func (ps *ProgressState) Update(u orchestration.ProgressUpdate) {
	if u.Index < 0 || u.Index >= len(ps.done) || ps.done[u.Index] {
		return
	}
	ps.done[u.Index] = true
	if u.Failed {
		ps.failed++
	}
}

// Completed returns the number of finished operations.
func (ps *ProgressState) Completed() int {
	n := 0
	for _, d := range ps.done {
		if d {
			n++
		}
	}
	return n
}

// Failed returns the number of finished operations that failed.
func (ps *ProgressState) Failed() int { return ps.failed }

// Fraction returns the completed share (0.0 to 1.0).
func (ps *ProgressState) Fraction() float64 {
	if len(ps.done) == 0 {
		return 0.0
	}
	return float64(ps.Completed()) / float64(len(ps.done))
}

// suffix renders the spinner text for the current state.
func (ps *ProgressState) suffix() string {
	s := fmt.Sprintf(" %s %d/%d operations", progressBar(ps.Fraction(), ProgressBarWidth), ps.Completed(), len(ps.done))
	if ps.failed > 0 {
		s += fmt.Sprintf(" (%d failed)", ps.failed)
	}
	return s
}

// progressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - length: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress shows a spinner with a progress bar until progressChan is
// closed, then stops the spinner and calls wg.Done.
//
// Parameters:
//   - wg: The WaitGroup to signal on completion.
//   - progressChan: The channel of finished-operation updates.
//   - numOperations: The number of operations being evaluated.
//   - out: The writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numOperations int, out io.Writer) {
	defer wg.Done()
	if numOperations <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressState(numOperations)
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(state.suffix())
	s.Start()
	defer s.Stop()

	for u := range progressChan {
		state.Update(u)
		s.UpdateSuffix(state.suffix())
	}
}
