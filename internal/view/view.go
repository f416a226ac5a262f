// Package view turns comparison trees into visible rows and keeps the two
// panels' cursors in step.
package view

import "dualdiff/internal/tree"

// FilterMode selects which nodes are listed.
type FilterMode int

const (
	// All lists every node.
	All FilterMode = iota
	// Differences lists Different, LeftOnly and RightOnly nodes.
	Differences
	// Modified lists only Different nodes.
	Modified
)

func (f FilterMode) String() string {
	switch f {
	case All:
		return "all"
	case Differences:
		return "differences"
	case Modified:
		return "modified"
	default:
		return "unknown"
	}
}

// Accepts reports whether a node with status s passes the filter.
func (f FilterMode) Accepts(s tree.Status) bool {
	switch f {
	case Differences:
		return s != tree.Same
	case Modified:
		return s == tree.Different
	default:
		return true
	}
}

// Row is one visible line of a panel.
type Row struct {
	Node  *tree.Node
	Depth int
}

// Blank reports whether the row is a placeholder for an entry missing on its side.
func (r Row) Blank() bool {
	return r.Node.Placeholder()
}

// Flatten lists the visible nodes under root in display order. The root
// itself is not listed; its children are at depth 1. A node is visible when
// every ancestor is an expanded directory and it passes the filter. The
// children of a filtered-out directory are still considered.
func Flatten(root *tree.Node, filter FilterMode) []Row {
	var rows []Row
	if !root.IsDir || !root.Expanded {
		return rows
	}
	for _, c := range root.Children {
		rows = flatten(rows, c, 1, filter)
	}
	return rows
}

func flatten(rows []Row, n *tree.Node, depth int, filter FilterMode) []Row {
	if filter.Accepts(n.Status) {
		rows = append(rows, Row{Node: n, Depth: depth})
	}
	if n.IsDir && n.Expanded {
		for _, c := range n.Children {
			rows = flatten(rows, c, depth+1, filter)
		}
	}
	return rows
}

// HalfPage is the cursor jump for a half-page move in a viewport of the
// given height, leaving room for borders and bars.
func HalfPage(height int) int {
	return max(1, (height-5)/2)
}
