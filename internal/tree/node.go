package tree

import (
	"path"
	"time"
)

// Status classifies a path across the two sides of a comparison.
type Status int

const (
	Same Status = iota
	Different
	LeftOnly
	RightOnly
)

func (s Status) String() string {
	switch s {
	case Same:
		return "same"
	case Different:
		return "different"
	case LeftOnly:
		return "left-only"
	case RightOnly:
		return "right-only"
	default:
		return "unknown"
	}
}

// Orphan reports whether the status marks a path present on one side only.
func (s Status) Orphan() bool {
	return s == LeftOnly || s == RightOnly
}

// Entry is the scanned metadata for one relative path.
type Entry struct {
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// Listing maps slash-separated relative paths to their metadata.
type Listing map[string]Entry

// Node is one element of a comparison tree. Children are owned exclusively;
// there are no parent links, lookups always start from the root.
type Node struct {
	Name     string
	Path     string
	IsDir    bool
	Status   Status
	Children []*Node
	Expanded bool
	Size     int64
	HasSize  bool
	ModTime  time.Time

	// conflict is set when one side holds a directory and the other a file.
	conflict bool
}

// Placeholder reports whether n stands in for an entry missing on its side.
func (n *Node) Placeholder() bool {
	return n.Name == "" && n.Path != ""
}

// Base returns the last component of the node's relative path.
func (n *Node) Base() string {
	if n.Path == "" {
		return ""
	}
	return path.Base(n.Path)
}

// Toggle flips the expanded flag of a directory.
func (n *Node) Toggle() {
	if n.IsDir {
		n.Expanded = !n.Expanded
	}
}
