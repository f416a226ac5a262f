// Package launcher builds the external editor or diff command for a path.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"dualdiff/internal/tree"
)

var (
	ErrNoEditor   = errors.New("no editor found (tried vim, vi, nano)")
	ErrNoDiffTool = errors.New("no diff tool found (tried vimdiff, vim -d, diff)")
)

// Options selects the tools. Empty fields fall back to the defaults.
type Options struct {
	// Editor opens orphans. Default: $EDITOR, then vim, vi, nano.
	Editor string
	// DiffTool shows two files side by side. Default: vimdiff, then vim -d,
	// then diff -u through a pager.
	DiffTool string

	LookPath func(string) (string, error)
	Getenv   func(string) string
}

func (o Options) lookPath(name string) bool {
	look := o.LookPath
	if look == nil {
		look = exec.LookPath
	}
	_, err := look(name)
	return err == nil
}

func (o Options) getenv(key string) string {
	if o.Getenv == nil {
		return os.Getenv(key)
	}
	return o.Getenv(key)
}

// Command returns the command for a path with the given status: an editor
// on the existing side for orphans, otherwise a diff of both paths.
func Command(status tree.Status, left, right string, opts Options) (*exec.Cmd, error) {
	switch status {
	case tree.LeftOnly:
		return editorCommand(left, opts)
	case tree.RightOnly:
		return editorCommand(right, opts)
	default:
		return diffCommand(left, right, opts)
	}
}

func editorCommand(target string, opts Options) (*exec.Cmd, error) {
	for _, candidate := range []string{opts.Editor, opts.getenv("EDITOR")} {
		if fields := strings.Fields(candidate); len(fields) > 0 && opts.lookPath(fields[0]) {
			return exec.Command(fields[0], append(fields[1:], target)...), nil
		}
	}
	for _, editor := range []string{"vim", "vi", "nano"} {
		if opts.lookPath(editor) {
			return exec.Command(editor, target), nil
		}
	}
	return nil, ErrNoEditor
}

func diffCommand(left, right string, opts Options) (*exec.Cmd, error) {
	if fields := strings.Fields(opts.DiffTool); len(fields) > 0 && opts.lookPath(fields[0]) {
		return exec.Command(fields[0], append(fields[1:], left, right)...), nil
	}
	if opts.lookPath("vimdiff") {
		return exec.Command("vimdiff", left, right), nil
	}
	if opts.lookPath("vim") {
		return exec.Command("vim", "-d", left, right), nil
	}
	if opts.lookPath("diff") {
		if opts.lookPath("sh") && opts.lookPath("less") {
			// diff exits 1 when the files differ; the pager keeps the output on screen.
			script := `diff -u -- "$1" "$2" | less -R`
			return exec.Command("sh", "-c", script, "dualdiff", left, right), nil
		}
		return exec.Command("diff", "-u", left, right), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoDiffTool, opts.DiffTool)
}
