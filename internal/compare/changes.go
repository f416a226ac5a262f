package compare

import (
	"fmt"
	"sort"

	"dualdiff/internal/tree"
)

type ChangeType string

const (
	Added   ChangeType = "ADDED"
	Changed ChangeType = "CHANGED"
	Removed ChangeType = "REMOVED"
)

// Change records one path whose presence or status differs between two
// snapshots of the same pair of roots.
type Change struct {
	Type      ChangeType
	Path      string
	OldStatus tree.Status
	NewStatus tree.Status
}

type ChangeSet struct {
	Added   []Change
	Changed []Change
	Removed []Change

	// Before and After are the snapshots' fingerprints. Empty when a tree
	// could not be fingerprinted.
	Before string
	After  string
}

func (r *ChangeSet) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Changed) > 0 || len(r.Removed) > 0
}

func (r *ChangeSet) String() string {
	if !r.HasChanges() {
		return "no changes"
	}
	return fmt.Sprintf("%d added, %d changed, %d removed", len(r.Added), len(r.Changed), len(r.Removed))
}

// statuses indexes every non-root path of root by its status.
func statuses(root *tree.Node) map[string]tree.Status {
	out := make(map[string]tree.Status)
	tree.Walk(root, func(n *tree.Node) bool {
		if n.Path != "" {
			out[n.Path] = n.Status
		}
		return true
	})
	return out
}

// Changes reports the paths that appeared, disappeared or changed status
// between before and after. Snapshots with equal fingerprints are not
// walked path by path.
func Changes(before, after *Comparison) *ChangeSet {
	result := &ChangeSet{
		Added:   make([]Change, 0),
		Changed: make([]Change, 0),
		Removed: make([]Change, 0),
	}

	result.Before, _ = tree.Fingerprint(before.Left)
	result.After, _ = tree.Fingerprint(after.Left)
	if result.Before != "" && result.Before == result.After {
		return result
	}

	oldStatus := statuses(before.Left)
	newStatus := statuses(after.Left)

	for path, ns := range newStatus {
		if prev, exists := oldStatus[path]; exists {
			if prev != ns {
				result.Changed = append(result.Changed, Change{Type: Changed, Path: path, OldStatus: prev, NewStatus: ns})
			}
		} else {
			result.Added = append(result.Added, Change{Type: Added, Path: path, NewStatus: ns})
		}
	}

	for path, prev := range oldStatus {
		if _, exists := newStatus[path]; !exists {
			result.Removed = append(result.Removed, Change{Type: Removed, Path: path, OldStatus: prev})
		}
	}

	// Sort for deterministic output
	for _, list := range [][]Change{result.Added, result.Changed, result.Removed} {
		sort.Slice(list, func(i, j int) bool {
			return list[i].Path < list[j].Path
		})
	}

	return result
}
