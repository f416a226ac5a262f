// Package ui is the two-panel terminal interface over a session.
package ui

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"dualdiff/internal/logging"
	"dualdiff/internal/session"
	"dualdiff/internal/view"
)

// Layout constants
const (
	chromeHeight = 5 // title, toolbar, status line and panel borders
	metaWidth    = 5 + 1 + 12
)

type Options struct {
	// PollInterval is how often a running refresh is drained.
	PollInterval time.Duration
	// Watch, when set, requests a refresh on every value.
	Watch  <-chan struct{}
	Logger *slog.Logger

	// Now and Location fix the clock used for modification times.
	Now      func() time.Time
	Location *time.Location
	// Clipboard receives yanked paths. Default: the system clipboard.
	Clipboard func(string) error
}

// Model is the main application model
type Model struct {
	s    *session.Session
	keys KeyMap
	bar  progress.Model

	poll      time.Duration
	watch     <-chan struct{}
	log       *slog.Logger
	now       func() time.Time
	loc       *time.Location
	clipboard func(string) error

	width  int
	height int
	offset [2]int
}

type (
	pollMsg     struct{}
	settledMsg  struct{}
	watchMsg    struct{}
	launchedMsg struct{ err error }
)

// New creates the model for s.
func New(s *session.Session, opts Options) Model {
	m := Model{
		s:         s,
		keys:      DefaultKeyMap(),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		poll:      opts.PollInterval,
		watch:     opts.Watch,
		log:       logging.OrDiscard(opts.Logger),
		now:       opts.Now,
		loc:       opts.Location,
		clipboard: opts.Clipboard,
		width:     80,
		height:    24,
	}
	if m.poll <= 0 {
		m.poll = 100 * time.Millisecond
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.loc == nil {
		m.loc = time.Local
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}
	return m
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(s *session.Session, opts Options) error {
	p := tea.NewProgram(New(s, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init initializes the model (required by bubbletea)
func (m Model) Init() tea.Cmd {
	return waitWatch(m.watch)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.poll, func(time.Time) tea.Msg { return pollMsg{} })
}

func waitWatch(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return watchMsg{}
	}
}

// refresh starts a refresh and the polling that follows it. A refresh
// already in flight makes it a no-op.
func (m Model) refresh() tea.Cmd {
	if !m.s.StartRefresh() {
		return nil
	}
	return m.tick()
}

func (m Model) listHeight() int {
	return max(1, m.height-chromeHeight)
}

// scroll keeps each panel's cursor inside its visible window.
func (m *Model) scroll() {
	visible := m.listHeight()
	sel := m.s.Selection()
	for p := range m.offset {
		n := len(m.s.Rows(p))
		i := sel.Index[p]
		off := m.offset[p]
		switch {
		case i == view.None:
			off = 0
		case i < off:
			off = i
		case i >= off+visible:
			off = i - visible + 1
		}
		m.offset[p] = max(0, min(off, n-visible))
	}
}
