// Package progress holds the comparison progress vocabulary, its fraction
// heuristic and a plain terminal progress bar.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Bar renders a single-line progress bar. It is safe for concurrent use.
// The filled portion never shrinks.
type Bar struct {
	width      int
	writer     io.Writer
	mu         sync.Mutex
	fraction   float64
	message    string
	lastUpdate time.Time
	finished   bool
}

func New(w io.Writer) *Bar {
	return &Bar{
		width:  40,
		writer: w,
	}
}

// Report updates the bar from a progress message, estimating the fraction
// from its text.
func (b *Bar) Report(msg string) {
	b.Update(msg, Estimate(msg))
}

func (b *Bar) Update(msg string, fraction float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished {
		return
	}
	b.message = msg
	b.fraction = max(b.fraction, min(max(fraction, 0), 1))

	// Update at most every 100ms to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) > 100*time.Millisecond || b.fraction == 1 {
		b.lastUpdate = now
		b.render()
	}
}

// render must be called with mu already locked
func (b *Bar) render() {
	filled := int(float64(b.width) * b.fraction)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", b.width-filled)

	// Clear the line and write progress
	fmt.Fprintf(b.writer, "\r\033[K[%s] %3d%% %s", bar, int(b.fraction*100), b.message)
}

func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished {
		return
	}
	b.finished = true
	b.fraction = 1
	b.render()
	fmt.Fprintf(b.writer, "\n")
}
