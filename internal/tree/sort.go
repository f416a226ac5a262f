package tree

import (
	"sort"

	"golang.org/x/text/cases"
)

// Sort orders every node's children: directories first, then by
// case-folded display name. Placeholders sort by their path component,
// so applying Sort to both aligned trees keeps them row-for-row aligned.
func Sort(root *Node) {
	sortChildren(root, cases.Fold())
}

func sortChildren(n *Node, fold cases.Caser) {
	if len(n.Children) > 1 {
		keys := make(map[*Node]string, len(n.Children))
		for _, c := range n.Children {
			keys[c] = fold.String(sortName(c))
		}
		sort.SliceStable(n.Children, func(i, j int) bool {
			a, b := n.Children[i], n.Children[j]
			if a.IsDir != b.IsDir {
				return a.IsDir
			}
			return keys[a] < keys[b]
		})
	}
	for _, c := range n.Children {
		sortChildren(c, fold)
	}
}

func sortName(n *Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.Base()
}
