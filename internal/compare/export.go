package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dualdiff/internal/tree"
)

// Export is the JSON document written by Save.
type Export struct {
	Generator   string    `json:"generator"`
	Created     time.Time `json:"created"`
	LeftRoot    string    `json:"left_root"`
	RightRoot   string    `json:"right_root"`
	LeftSize    string    `json:"left_size"`
	RightSize   string    `json:"right_size"`
	Fingerprint string    `json:"fingerprint"`
	Summary     Summary   `json:"summary"`
	Left        *Node     `json:"left"`
	Right       *Node     `json:"right"`
}

// Node is the exported form of a tree node.
type Node struct {
	Name     string     `json:"name,omitempty"`
	Path     string     `json:"path"`
	Dir      bool       `json:"dir,omitempty"`
	Status   string     `json:"status"`
	Size     *int64     `json:"size,omitempty"`
	ModTime  *time.Time `json:"mtime,omitempty"`
	Children []*Node    `json:"children,omitempty"`
}

func exportNode(n *tree.Node) *Node {
	out := &Node{
		Name:   n.Name,
		Path:   n.Path,
		Dir:    n.IsDir,
		Status: n.Status.String(),
	}
	if n.HasSize {
		size := n.Size
		out.Size = &size
	}
	if !n.ModTime.IsZero() {
		mtime := n.ModTime
		out.ModTime = &mtime
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, exportNode(c))
	}
	return out
}

func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// NewExport assembles the export document for c, stamped with created.
func NewExport(c *Comparison, created time.Time) (*Export, error) {
	fp, err := tree.Fingerprint(c.Left)
	if err != nil {
		return nil, err
	}
	s := Summarize(c)
	return &Export{
		Generator:   "dualdiff",
		Created:     created,
		LeftRoot:    c.LeftDir,
		RightRoot:   c.RightDir,
		LeftSize:    formatSize(s.LeftSize),
		RightSize:   formatSize(s.RightSize),
		Fingerprint: fp,
		Summary:     s,
		Left:        exportNode(c.Left),
		Right:       exportNode(c.Right),
	}, nil
}

// Save writes c as indented JSON to path, creating parent directories.
func Save(c *Comparison, path string) error {
	export, err := NewExport(c, time.Now())
	if err != nil {
		return fmt.Errorf("failed to fingerprint comparison: %w", err)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal comparison: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
