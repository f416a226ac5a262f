package tree

import (
	"fmt"
	"sort"
	"strings"
)

// Classifier decides the status of a path that is a regular file on both sides.
type Classifier func(rel string) (Status, error)

// BuildOptions configures Build.
type BuildOptions struct {
	LeftName  string
	RightName string
	Classify  Classifier
	// Progress, if set, is called after each path with the running count.
	Progress func(done, total int)
}

// Build aligns two listings into a pair of trees with identical shape.
// Every path of the union gets a node on both sides; the side that lacks
// the entry holds a blank-named placeholder carrying the orphan status.
// Children are not yet sorted and directory statuses are not yet propagated.
func Build(left, right Listing, opts BuildOptions) (*Node, *Node, error) {
	leftRoot := &Node{Name: opts.LeftName, IsDir: true, Status: Same, Expanded: true}
	rightRoot := &Node{Name: opts.RightName, IsDir: true, Status: Same, Expanded: true}

	leftIndex := map[string]*Node{"": leftRoot}
	rightIndex := map[string]*Node{"": rightRoot}

	paths := UnionPaths(left, right)
	for i, rel := range paths {
		l, inLeft := left[rel]
		r, inRight := right[rel]

		var status Status
		var isDir, conflict bool

		switch {
		case inLeft && !inRight:
			status, isDir = LeftOnly, l.IsDir
		case !inLeft && inRight:
			status, isDir = RightOnly, r.IsDir
		case l.IsDir && r.IsDir:
			status, isDir = Same, true
		case l.IsDir != r.IsDir:
			status, isDir, conflict = Different, true, true
		default:
			if opts.Classify == nil {
				return nil, nil, fmt.Errorf("no classifier for file %q", rel)
			}
			s, err := opts.Classify(rel)
			if err != nil {
				return nil, nil, err
			}
			status = s
		}

		name := lastComponent(rel)

		leftLeaf := &Node{Path: rel, IsDir: isDir, Status: status, conflict: conflict}
		if inLeft {
			leftLeaf.Name = name
			applyEntry(leftLeaf, l)
		}
		rightLeaf := &Node{Path: rel, IsDir: isDir, Status: status, conflict: conflict}
		if inRight {
			rightLeaf.Name = name
			applyEntry(rightLeaf, r)
		}

		insert(leftIndex, rel, leftLeaf)
		insert(rightIndex, rel, rightLeaf)

		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}
	}

	return leftRoot, rightRoot, nil
}

// UnionPaths returns every non-root relative path of both listings in
// component-wise lexicographic order, so parents always precede children.
func UnionPaths(left, right Listing) []string {
	seen := make(map[string]struct{}, len(left)+len(right))
	paths := make([]string, 0, len(left)+len(right))
	for _, listing := range []Listing{left, right} {
		for rel := range listing {
			if rel == "" || rel == "." {
				continue
			}
			if _, ok := seen[rel]; ok {
				continue
			}
			seen[rel] = struct{}{}
			paths = append(paths, rel)
		}
	}

	sort.Slice(paths, func(i, j int) bool {
		return comparePaths(paths[i], paths[j]) < 0
	})
	return paths
}

func comparePaths(a, b string) int {
	ac := strings.Split(a, "/")
	bc := strings.Split(b, "/")
	for i := 0; i < len(ac) && i < len(bc); i++ {
		if c := strings.Compare(ac[i], bc[i]); c != 0 {
			return c
		}
	}
	return len(ac) - len(bc)
}

func applyEntry(n *Node, e Entry) {
	n.ModTime = e.ModTime
	if !e.IsDir && !n.IsDir {
		n.Size = e.Size
		n.HasSize = true
	}
}

// insert places leaf at rel, synthesizing collapsed intermediate
// directories the first time they are needed.
func insert(index map[string]*Node, rel string, leaf *Node) {
	parts := strings.Split(rel, "/")
	parent := index[""]

	for i := 0; i < len(parts)-1; i++ {
		prefix := strings.Join(parts[:i+1], "/")
		dir, ok := index[prefix]
		if !ok {
			dir = &Node{Name: parts[i], Path: prefix, IsDir: true, Status: Same}
			parent.Children = append(parent.Children, dir)
			index[prefix] = dir
		}
		parent = dir
	}

	if existing, ok := index[rel]; ok {
		// A synthesized intermediate is replaced by the real entry in place.
		existing.Name = leaf.Name
		existing.IsDir = leaf.IsDir
		existing.Status = leaf.Status
		existing.Size = leaf.Size
		existing.HasSize = leaf.HasSize
		existing.ModTime = leaf.ModTime
		existing.conflict = leaf.conflict
		return
	}

	parent.Children = append(parent.Children, leaf)
	index[rel] = leaf
}

func lastComponent(rel string) string {
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[i+1:]
	}
	return rel
}
