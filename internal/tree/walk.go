package tree

import "strings"

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Find returns the node at rel by descending from root one path component
// at a time, or nil when no such node exists.
func Find(root *Node, rel string) *Node {
	if rel == "" {
		return root
	}
	cur := root
	for _, part := range strings.Split(rel, "/") {
		var next *Node
		for _, c := range cur.Children {
			if c.Base() == part {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Clone returns a deep copy of n.
func Clone(n *Node) *Node {
	cp := *n
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = Clone(c)
		}
	}
	return &cp
}

// ExpandAll expands every directory under and including n.
func ExpandAll(n *Node) {
	Walk(n, func(c *Node) bool {
		if c.IsDir {
			c.Expanded = true
		}
		return true
	})
}

// CollapseAll collapses every directory below root. The root stays expanded.
func CollapseAll(root *Node) {
	Walk(root, func(c *Node) bool {
		if c.IsDir {
			c.Expanded = false
		}
		return true
	})
	root.Expanded = true
}

// Aligned reports whether a and b have the same shape: equal paths,
// directory flags and child counts in the same order at every depth.
func Aligned(a, b *Node) bool {
	if a.Path != b.Path || a.IsDir != b.IsDir || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Aligned(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
