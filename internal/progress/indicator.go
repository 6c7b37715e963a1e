package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Indicator shows the current step and its outcome.
// It is safe for use from the watch loop and the signal handler at once.
type Indicator struct {
	mu      sync.Mutex
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
	active  string
}

// NewIndicator creates an indicator writing to out.
func NewIndicator(out io.Writer, caps TerminalCapabilities) *Indicator {
	return &Indicator{
		out:     out,
		caps:    caps,
		symbols: SelectSymbols(caps),
	}
}

// Start begins a step. Any step still running is stopped silently.
func (ind *Indicator) Start(message string) {
	ind.mu.Lock()
	defer ind.mu.Unlock()

	ind.stopLocked()
	ind.active = message

	if !ind.caps.IsTTY {
		fmt.Fprintf(ind.out, "%s...\n", message)
		return
	}

	ind.spin = spinner.New(spinner.CharSets[ind.symbols.SpinnerSet], spinnerInterval, spinner.WithWriter(ind.out))
	ind.spin.Suffix = " " + message
	ind.spin.Start()
}

// Succeed ends the current step with a checkmark. An empty message reuses
// the one passed to Start.
func (ind *Indicator) Succeed(message string) {
	ind.finish(ind.symbols.Checkmark, message)
}

// Fail ends the current step with a failure marker.
func (ind *Indicator) Fail(message string) {
	ind.finish(ind.symbols.Failure, message)
}

func (ind *Indicator) finish(symbol, message string) {
	ind.mu.Lock()
	defer ind.mu.Unlock()

	if message == "" {
		message = ind.active
	}
	ind.stopLocked()
	ind.active = ""
	fmt.Fprintf(ind.out, "%s %s\n", symbol, message)
}

func (ind *Indicator) stopLocked() {
	if ind.spin != nil {
		ind.spin.Stop()
		ind.spin = nil
	}
}
