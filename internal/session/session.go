// Package session holds the interactive state of a comparison: the current
// snapshot, the visible rows of both panels, the cursors and the refresh
// and copy flows that replace the snapshot.
package session

import (
	"log/slog"
	"os/exec"
	"path/filepath"

	"dualdiff/internal/compare"
	"dualdiff/internal/copier"
	"dualdiff/internal/launcher"
	"dualdiff/internal/logging"
	"dualdiff/internal/refresh"
	"dualdiff/internal/tree"
	"dualdiff/internal/view"
)

type Options struct {
	Settle copier.Settle
	Launch launcher.Options
	Logger *slog.Logger
}

// Session is driven from a single goroutine. The snapshot is only ever
// replaced when a finished refresh is polled.
type Session struct {
	snap   *compare.Comparison
	filter view.FilterMode
	rows   [2][]view.Row
	sel    view.Selection

	worker *refresh.Worker
	saved  *savedState

	progress refresh.Message
	status   string
	pending  *CopyInfo

	settle copier.Settle
	launch launcher.Options
	log    *slog.Logger
}

// savedState is what a refresh must carry over to the snapshot it produces.
type savedState struct {
	left, right *tree.Node
	leftDir     string
	sel         view.Selection
	filter      view.FilterMode
}

// New starts a session on snapshot c. Both roots are expanded.
func New(c *compare.Comparison, worker *refresh.Worker, opts Options) *Session {
	s := &Session{
		snap:   c,
		worker: worker,
		settle: opts.Settle,
		launch: opts.Launch,
		log:    logging.OrDiscard(opts.Logger),
	}
	c.Left.Expanded = true
	c.Right.Expanded = true
	s.reflow()
	s.sel = view.NewSelection(s.lens())
	return s
}

func (s *Session) Snapshot() *compare.Comparison { return s.snap }
func (s *Session) Rows(panel int) []view.Row      { return s.rows[panel] }
func (s *Session) Selection() view.Selection      { return s.sel }
func (s *Session) Filter() view.FilterMode        { return s.filter }

// Status is the latest one-line message for the user.
func (s *Session) Status() string { return s.status }

// Notify replaces the status line.
func (s *Session) Notify(msg string) { s.status = msg }

// Refreshing reports whether a refresh is in flight.
func (s *Session) Refreshing() bool { return s.worker.InFlight() }

// Progress returns the latest progress text and fraction of the refresh in
// flight.
func (s *Session) Progress() (string, float64) {
	return s.progress.Text, s.progress.Fraction
}

func (s *Session) lens() [2]int {
	return [2]int{len(s.rows[0]), len(s.rows[1])}
}

func (s *Session) reflow() {
	s.rows[0] = view.Flatten(s.snap.Left, s.filter)
	s.rows[1] = view.Flatten(s.snap.Right, s.filter)
}

// Selected returns the row under the active panel's cursor.
func (s *Session) Selected() (view.Row, bool) {
	i, ok := s.sel.Selected()
	rows := s.rows[s.sel.Active]
	if !ok || i >= len(rows) {
		return view.Row{}, false
	}
	return rows[i], true
}

func (s *Session) Move(delta int) { s.sel.Move(delta, s.lens()) }
func (s *Session) First()         { s.sel.First(s.lens()) }
func (s *Session) Last()          { s.sel.Last(s.lens()) }

// PageDown and PageUp move by half a viewport of the given height.
func (s *Session) PageDown(height int) { s.Move(view.HalfPage(height)) }
func (s *Session) PageUp(height int)   { s.Move(-view.HalfPage(height)) }

func (s *Session) SwitchPanel(p int) { s.sel.SwitchPanel(p, s.lens()) }

// SetFilter changes the filter and re-flattens both panels, keeping the
// cursors in range.
func (s *Session) SetFilter(f view.FilterMode) {
	s.filter = f
	s.reflow()
	s.clampSelection(s.sel)
}

// Toggle flips the selected directory in both trees.
func (s *Session) Toggle() bool {
	row, ok := s.Selected()
	if !ok || !row.Node.IsDir {
		return false
	}
	active, other := s.snap.Left, s.snap.Right
	if s.sel.Active == 1 {
		active, other = other, active
	}
	n := tree.Find(active, row.Node.Path)
	if n == nil {
		return false
	}
	n.Toggle()
	if m := tree.Find(other, row.Node.Path); m != nil && m.IsDir {
		m.Expanded = n.Expanded
	}
	s.reflow()
	s.clampSelection(s.sel)
	return true
}

func (s *Session) ExpandAll() {
	tree.ExpandAll(s.snap.Left)
	tree.ExpandAll(s.snap.Right)
	s.reflow()
	s.clampSelection(s.sel)
}

func (s *Session) CollapseAll() {
	tree.CollapseAll(s.snap.Left)
	tree.CollapseAll(s.snap.Right)
	s.reflow()
	s.clampSelection(s.sel)
}

// Swap exchanges the two sides: roots, trees and directories.
func (s *Session) Swap() {
	s.snap = swapped(s.snap)
	s.reflow()
	s.clampSelection(s.sel)
}

func swapped(c *compare.Comparison) *compare.Comparison {
	flip := func(n *tree.Node) {
		tree.Walk(n, func(c *tree.Node) bool {
			switch c.Status {
			case tree.LeftOnly:
				c.Status = tree.RightOnly
			case tree.RightOnly:
				c.Status = tree.LeftOnly
			}
			return true
		})
	}
	flip(c.Left)
	flip(c.Right)
	return &compare.Comparison{Left: c.Right, Right: c.Left, LeftDir: c.RightDir, RightDir: c.LeftDir}
}

func (s *Session) clampSelection(saved view.Selection) {
	s.sel.Active = saved.Active
	for p := range s.rows {
		s.sel.Index[p] = view.Clamp(saved.Index[p], len(s.rows[p]))
	}
}

// SelectedPath returns the absolute path of the selected entry on the
// active side. Placeholders have no path.
func (s *Session) SelectedPath() (string, bool) {
	row, ok := s.Selected()
	if !ok || row.Blank() {
		return "", false
	}
	root := s.snap.LeftDir
	if s.sel.Active == 1 {
		root = s.snap.RightDir
	}
	return filepath.Join(root, filepath.FromSlash(row.Node.Path)), true
}

// LaunchCommand returns the editor or diff command for the selected file.
// Directories have none.
func (s *Session) LaunchCommand() (*exec.Cmd, bool, error) {
	row, ok := s.Selected()
	if !ok || row.Node.IsDir {
		return nil, false, nil
	}
	rel := filepath.FromSlash(row.Node.Path)
	cmd, err := launcher.Command(row.Node.Status,
		filepath.Join(s.snap.LeftDir, rel), filepath.Join(s.snap.RightDir, rel), s.launch)
	if err != nil {
		s.status = err.Error()
		return nil, false, err
	}
	return cmd, true, nil
}
