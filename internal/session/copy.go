package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5/osfs"

	"dualdiff/internal/copier"
	"dualdiff/internal/tree"
)

var (
	ErrNothingToCopy = errors.New("nothing to copy")
	ErrNoPendingCopy = errors.New("no copy pending")
)

// CopyInfo describes a confirmed-but-not-executed copy of one path.
type CopyInfo struct {
	Source      string
	Target      string
	Rel         string
	Files       int
	Folders     int
	Bytes       int64
	LeftToRight bool
}

// CanCopy reports whether the selected entry can be copied from the active
// panel to the other one. Placeholders cannot, and an orphan can only be
// copied from the side that holds it.
func (s *Session) CanCopy() bool {
	row, ok := s.Selected()
	if !ok || row.Blank() {
		return false
	}
	switch row.Node.Status {
	case tree.LeftOnly:
		return s.sel.Active == 0
	case tree.RightOnly:
		return s.sel.Active == 1
	default:
		return true
	}
}

// PendingCopy returns the copy awaiting confirmation, if any.
func (s *Session) PendingCopy() *CopyInfo { return s.pending }

// PrepareCopy measures the selected entry and holds it for confirmation.
// The copy goes from the active panel to the other one.
func (s *Session) PrepareCopy() (*CopyInfo, error) {
	if !s.CanCopy() {
		return nil, ErrNothingToCopy
	}
	row, _ := s.Selected()
	n := row.Node

	leftToRight := s.sel.Active == 0
	srcDir, dstDir := s.snap.LeftDir, s.snap.RightDir
	if !leftToRight {
		srcDir, dstDir = dstDir, srcDir
	}

	info := &CopyInfo{
		Source:      filepath.Join(srcDir, filepath.FromSlash(n.Path)),
		Target:      filepath.Join(dstDir, filepath.FromSlash(n.Path)),
		Rel:         n.Path,
		LeftToRight: leftToRight,
	}
	if n.IsDir {
		st, err := copier.Measure(osfs.New(srcDir), n.Path)
		if err != nil {
			return nil, err
		}
		info.Files, info.Folders, info.Bytes = st.Files, st.Folders, st.Bytes
	} else {
		info.Files, info.Bytes = 1, n.Size
	}

	s.pending = info
	return info, nil
}

// CancelCopy discards the pending copy.
func (s *Session) CancelCopy() {
	s.pending = nil
}

// ExecuteCopy performs the pending copy and returns how long to wait before
// refreshing. The snapshot is not touched; a refresh picks up the result.
func (s *Session) ExecuteCopy() (time.Duration, error) {
	info := s.pending
	if info == nil {
		return 0, ErrNoPendingCopy
	}
	s.pending = nil

	srcDir, dstDir := s.snap.LeftDir, s.snap.RightDir
	if !info.LeftToRight {
		srcDir, dstDir = dstDir, srcDir
	}
	src := osfs.New(srcDir)

	if err := copier.Copy(src, osfs.New(dstDir), info.Rel); err != nil {
		s.status = fmt.Sprintf("Copy failed: %v", err)
		s.log.Error("copy failed", "source", info.Source, "target", info.Target, "error", err)
		return 0, err
	}

	s.status = fmt.Sprintf("Copied %s", info.Rel)
	s.log.Info("copied", "source", info.Source, "target", info.Target,
		"files", info.Files, "folders", info.Folders, "bytes", info.Bytes)
	return s.settle.For(src, info.Rel), nil
}

// Copy runs the pending copy, waits for the settle delay and starts a
// refresh. It blocks; interactive callers schedule the wait themselves.
func (s *Session) Copy() error {
	wait, err := s.ExecuteCopy()
	if err != nil {
		return err
	}
	time.Sleep(wait)
	s.StartRefresh()
	return nil
}
