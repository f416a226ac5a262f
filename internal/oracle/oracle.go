// Package oracle decides whether two files at the same relative path hold
// the same content, using a cost-bounded sequence of checks.
package oracle

import (
	"bytes"
	"io"

	"github.com/go-git/go-billy/v5"

	"dualdiff/internal/fault"
)

const (
	// FullCompareLimit is the length below which both files are compared byte for byte.
	FullCompareLimit = 4096

	// ChecksumLimit is the length below which both files are compared by CRC-32.
	ChecksumLimit = 1 << 20

	// HeadSize is how much of each file is compared at or above ChecksumLimit.
	HeadSize = 4096
)

// Stage names the check that settled an equality decision.
type Stage int

const (
	StageKind Stage = iota
	StageSize
	StageEmpty
	StageFull
	StageChecksum
	StageHead
)

func (s Stage) String() string {
	switch s {
	case StageKind:
		return "kind"
	case StageSize:
		return "size"
	case StageEmpty:
		return "empty"
	case StageFull:
		return "full"
	case StageChecksum:
		return "checksum"
	case StageHead:
		return "head"
	default:
		return "unknown"
	}
}

// StageFor returns the content stage used for two files of equal length size.
func StageFor(size int64) Stage {
	switch {
	case size == 0:
		return StageEmpty
	case size < FullCompareLimit:
		return StageFull
	case size < ChecksumLimit:
		return StageChecksum
	default:
		return StageHead
	}
}

// Oracle compares files under two roots. It holds no mutable state and is
// safe for concurrent use.
type Oracle struct {
	Left  billy.Filesystem
	Right billy.Filesystem
}

func New(left, right billy.Filesystem) *Oracle {
	return &Oracle{Left: left, Right: right}
}

// Equal reports whether the files at rel are the same and which stage
// decided it. Files of ChecksumLimit bytes or more that share their first
// HeadSize bytes are reported equal without reading the rest.
func (o *Oracle) Equal(rel string) (bool, Stage, error) {
	li, err := o.Left.Stat(rel)
	if err != nil {
		return false, StageKind, fault.Compare("stat", o.Left.Join(o.Left.Root(), rel), err)
	}
	ri, err := o.Right.Stat(rel)
	if err != nil {
		return false, StageKind, fault.Compare("stat", o.Right.Join(o.Right.Root(), rel), err)
	}

	if li.IsDir() || ri.IsDir() {
		return false, StageKind, nil
	}
	if li.Size() != ri.Size() {
		return false, StageSize, nil
	}

	stage := StageFor(li.Size())
	switch stage {
	case StageEmpty:
		return true, stage, nil

	case StageFull:
		l, err := o.read(o.Left, rel, -1)
		if err != nil {
			return false, stage, err
		}
		r, err := o.read(o.Right, rel, -1)
		if err != nil {
			return false, stage, err
		}
		return bytes.Equal(l, r), stage, nil

	case StageChecksum:
		l, err := checksum(o.Left, rel)
		if err != nil {
			return false, stage, err
		}
		r, err := checksum(o.Right, rel)
		if err != nil {
			return false, stage, err
		}
		return l == r, stage, nil

	default:
		l, err := o.read(o.Left, rel, HeadSize)
		if err != nil {
			return false, stage, err
		}
		r, err := o.read(o.Right, rel, HeadSize)
		if err != nil {
			return false, stage, err
		}
		return bytes.Equal(l, r), stage, nil
	}
}

// read returns the whole file, or at most limit bytes when limit >= 0.
func (o *Oracle) read(fsys billy.Filesystem, rel string, limit int64) ([]byte, error) {
	f, err := fsys.Open(rel)
	if err != nil {
		return nil, fault.Compare("open", fsys.Join(fsys.Root(), rel), err)
	}
	defer f.Close()

	var r io.Reader = f
	if limit >= 0 {
		r = io.LimitReader(f, limit)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fault.Compare("read", fsys.Join(fsys.Root(), rel), err)
	}
	return data, nil
}
