package compare

import (
	"fmt"
	"strings"

	"dualdiff/internal/tree"
)

// Summary counts the non-root paths of a comparison by status.
type Summary struct {
	Same      int   `json:"same"`
	Different int   `json:"different"`
	LeftOnly  int   `json:"left_only"`
	RightOnly int   `json:"right_only"`
	Files     int   `json:"files"`
	Dirs      int   `json:"dirs"`
	LeftSize  int64 `json:"left_size"`
	RightSize int64 `json:"right_size"`
}

// Total is the number of distinct paths across both sides.
func (s Summary) Total() int {
	return s.Files + s.Dirs
}

// Identical reports whether every path is Same.
func (s Summary) Identical() bool {
	return s.Different == 0 && s.LeftOnly == 0 && s.RightOnly == 0
}

func Summarize(c *Comparison) Summary {
	var s Summary
	tree.Walk(c.Left, func(n *tree.Node) bool {
		if n.Path == "" {
			return true
		}
		if n.IsDir {
			s.Dirs++
		} else {
			s.Files++
		}
		switch n.Status {
		case tree.Same:
			s.Same++
		case tree.Different:
			s.Different++
		case tree.LeftOnly:
			s.LeftOnly++
		case tree.RightOnly:
			s.RightOnly++
		}
		if n.HasSize {
			s.LeftSize += n.Size
		}
		return true
	})
	tree.Walk(c.Right, func(n *tree.Node) bool {
		if n.HasSize {
			s.RightSize += n.Size
		}
		return true
	})
	return s
}

// Marker is the bracketed status tag used in plain text output.
func Marker(s tree.Status) string {
	switch s {
	case tree.Same:
		return "[=]"
	case tree.Different:
		return "[≠]"
	case tree.LeftOnly:
		return "[L]"
	case tree.RightOnly:
		return "[R]"
	default:
		return "[?]"
	}
}

// FormatReport renders both trees of c as indented text with status markers,
// followed by summary counts. Placeholders print as blank lines to keep
// both panels row-aligned.
func FormatReport(c *Comparison) string {
	var b strings.Builder

	b.WriteString("Directory Comparison Results:\n")
	fmt.Fprintf(&b, "Left:  %s\n", c.LeftDir)
	fmt.Fprintf(&b, "Right: %s\n\n", c.RightDir)
	b.WriteString("Legend: [=] Same, [≠] Different, [L] Left only, [R] Right only\n\n")

	b.WriteString("=== LEFT PANEL ===\n")
	writeTree(&b, c.Left, 0)
	b.WriteString("\n=== RIGHT PANEL ===\n")
	writeTree(&b, c.Right, 0)

	s := Summarize(c)
	fmt.Fprintf(&b, "\nSummary: %d same, %d different, %d left only, %d right only (%d files, %d directories)\n",
		s.Same, s.Different, s.LeftOnly, s.RightOnly, s.Files, s.Dirs)
	if s.Identical() {
		b.WriteString("Directories are identical.\n")
	}

	return b.String()
}

func writeTree(b *strings.Builder, n *tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.Placeholder() {
		b.WriteString(indent + "\n")
	} else {
		icon := "📄"
		if n.IsDir {
			icon = "📁"
		}
		fmt.Fprintf(b, "%s%s %s %s\n", indent, icon, n.Name, Marker(n.Status))
	}

	for _, c := range n.Children {
		writeTree(b, c, depth+1)
	}
}
