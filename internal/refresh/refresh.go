// Package refresh runs comparisons off the interactive loop and streams
// their progress back over a channel.
package refresh

import (
	"context"
	"log/slog"
	"sync"

	"dualdiff/internal/compare"
	"dualdiff/internal/logging"
	"dualdiff/internal/progress"
)

// Kind distinguishes progress from the terminal messages of a refresh.
type Kind int

const (
	Progress Kind = iota
	Complete
	Failed
)

// Message is one item of the refresh stream. Every refresh sends zero or
// more Progress messages followed by exactly one Complete or Failed.
type Message struct {
	Kind       Kind
	Text       string
	Fraction   float64
	Comparison *compare.Comparison
	Err        error
}

// RunFunc produces a comparison, reporting progress messages one at a time
// as it goes.
type RunFunc func(ctx context.Context, left, right string, report func(string)) (*compare.Comparison, error)

// Status is the result of one Drain.
type Status struct {
	// Progress is the latest progress message seen, if any.
	Progress *Message
	// Done is the terminal message, if the refresh ended.
	Done *Message
}

// Worker runs at most one refresh at a time. Start, Drain and InFlight are
// meant to be called from a single goroutine.
type Worker struct {
	run    RunFunc
	log    *slog.Logger
	buffer int

	mu       sync.Mutex
	inFlight bool
	ch       chan Message
	done     chan struct{}
	closed   bool
}

// New returns a worker that refreshes with run.
func New(run RunFunc, logger *slog.Logger) *Worker {
	return &Worker{
		run:    run,
		log:    logging.OrDiscard(logger),
		buffer: 64,
		done:   make(chan struct{}),
	}
}

// InFlight reports whether a refresh has started and its terminal message
// has not been drained yet.
func (w *Worker) InFlight() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

// Start begins a refresh of left and right on its own goroutine. It does
// nothing and returns false while another refresh is in flight. There is
// no cancellation once started.
func (w *Worker) Start(left, right string) bool {
	w.mu.Lock()
	if w.inFlight || w.closed {
		w.mu.Unlock()
		return false
	}
	w.inFlight = true
	ch := make(chan Message, w.buffer)
	w.ch = ch
	w.mu.Unlock()

	w.log.Debug("refresh started", "left", left, "right", right)

	go func() {
		var tracker progress.Tracker
		report := func(msg string) {
			offer(ch, Message{Kind: Progress, Text: msg, Fraction: tracker.Next(msg)})
		}

		c, err := w.run(context.Background(), left, right, report)
		if err != nil {
			w.log.Error("refresh failed", "error", err)
			w.send(ch, Message{Kind: Failed, Text: "Error: " + err.Error(), Err: err})
			return
		}
		w.send(ch, Message{Kind: Complete, Text: progress.MsgComplete, Fraction: 1, Comparison: c})
	}()

	return true
}

// offer queues a progress message without blocking. When the queue is full
// the oldest progress message is dropped; only the latest one is shown.
// Only the refresh goroutine sends on ch, so everything queued before the
// terminal message is progress.
func offer(ch chan Message, m Message) {
	for {
		select {
		case ch <- m:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// send blocks until the message is queued or the worker is closed.
func (w *Worker) send(ch chan<- Message, m Message) {
	select {
	case ch <- m:
	case <-w.done:
	}
}

// Drain takes every queued message without blocking. It keeps only the
// latest progress message and stops at the terminal one, which clears the
// in-flight flag.
func (w *Worker) Drain() Status {
	w.mu.Lock()
	ch := w.ch
	w.mu.Unlock()

	var st Status
	if ch == nil {
		return st
	}

	for {
		select {
		case m := <-ch:
			if m.Kind == Progress {
				st.Progress = &m
				continue
			}
			st.Done = &m
			w.mu.Lock()
			w.inFlight = false
			w.ch = nil
			w.mu.Unlock()
			w.log.Debug("refresh finished", "failed", m.Kind == Failed)
			return st
		default:
			return st
		}
	}
}

// Close releases a goroutine blocked on sending. Call it at shutdown only;
// later Starts are no-ops.
func (w *Worker) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.done)
}
