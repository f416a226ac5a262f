package session

import (
	"dualdiff/internal/compare"
	"dualdiff/internal/fault"
	"dualdiff/internal/refresh"
	"dualdiff/internal/tree"
)

// StartRefresh captures the view state and starts a refresh of both roots.
// It returns false while another refresh is in flight.
func (s *Session) StartRefresh() bool {
	if s.worker.InFlight() {
		return false
	}
	s.saved = &savedState{
		left:    tree.Clone(s.snap.Left),
		right:   tree.Clone(s.snap.Right),
		leftDir: s.snap.LeftDir,
		sel:     s.sel,
		filter:  s.filter,
	}
	if !s.worker.Start(s.snap.LeftDir, s.snap.RightDir) {
		s.saved = nil
		return false
	}
	s.progress = refresh.Message{Text: "Starting refresh..."}
	s.status = ""
	return true
}

// Poll consumes the refresh stream. A completed refresh replaces the
// snapshot and restores the captured view state onto it; a failed one
// leaves the snapshot as it was.
func (s *Session) Poll() refresh.Status {
	st := s.worker.Drain()
	if st.Progress != nil {
		s.progress = *st.Progress
	}
	if st.Done == nil {
		return st
	}

	saved := s.saved
	s.saved = nil
	s.progress = refresh.Message{}

	switch st.Done.Kind {
	case refresh.Complete:
		s.apply(st.Done.Comparison, saved)
	case refresh.Failed:
		s.status = failureLabel(st.Done.Err) + ": " + st.Done.Text + " (press F5 to retry)"
	}
	return st
}

func (s *Session) apply(next *compare.Comparison, saved *savedState) {
	// The panels may have been swapped while the refresh ran.
	if next.LeftDir != s.snap.LeftDir {
		next = swapped(next)
	}
	prev := s.snap
	changes := compare.Changes(prev, next)

	s.snap = next
	if saved != nil {
		left, right := saved.left, saved.right
		if saved.leftDir != next.LeftDir {
			left, right = right, left
		}
		restoreExpansion(next.Left, left)
		restoreExpansion(next.Right, right)
		s.filter = saved.filter
	}
	next.Left.Expanded = true
	next.Right.Expanded = true
	s.reflow()

	sel := s.sel
	if saved != nil {
		sel = saved.sel
	}
	s.clampSelection(sel)

	s.status = "Refreshed: " + changes.String()
	s.log.Debug("snapshot replaced",
		"added", len(changes.Added), "changed", len(changes.Changed), "removed", len(changes.Removed),
		"fingerprint", changes.After)
}

// failureLabel names the stage a refresh failed in.
func failureLabel(err error) string {
	switch {
	case fault.HasCode(err, fault.CodeScan):
		return "Refresh failed while scanning"
	case fault.HasCode(err, fault.CodeCompare):
		return "Refresh failed while comparing"
	default:
		return "Refresh failed"
	}
}

type nodeKey struct {
	path  string
	isDir bool
}

// restoreExpansion copies expanded flags from saved onto cur for every node
// matched by relative path and kind, walking both trees in lock-step.
func restoreExpansion(cur, saved *tree.Node) {
	if cur.IsDir && saved.IsDir && cur.Path == saved.Path {
		cur.Expanded = saved.Expanded
	}
	if len(cur.Children) == 0 || len(saved.Children) == 0 {
		return
	}
	index := make(map[nodeKey]*tree.Node, len(saved.Children))
	for _, c := range saved.Children {
		index[nodeKey{c.Path, c.IsDir}] = c
	}
	for _, c := range cur.Children {
		if old, ok := index[nodeKey{c.Path, c.IsDir}]; ok {
			restoreExpansion(c, old)
		}
	}
}
