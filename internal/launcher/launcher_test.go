package launcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dualdiff/internal/tree"
)

func available(names ...string) func(string) (string, error) {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
}

func noEnv(string) string { return "" }

func TestCommand_DiffFallbackOrder(t *testing.T) {
	tests := []struct {
		name  string
		tools []string
		want  []string
	}{
		{"vimdiff", []string{"vimdiff", "vim", "diff"}, []string{"vimdiff", "l", "r"}},
		{"vim -d", []string{"vim", "diff"}, []string{"vim", "-d", "l", "r"}},
		{"diff with pager", []string{"diff", "sh", "less"}, []string{"sh", "-c", `diff -u -- "$1" "$2" | less -R`, "dualdiff", "l", "r"}},
		{"plain diff", []string{"diff"}, []string{"diff", "-u", "l", "r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Command(tree.Different, "l", "r", Options{LookPath: available(tt.tools...), Getenv: noEnv})
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Args)
		})
	}
}

func TestCommand_SameFileStillDiffs(t *testing.T) {
	cmd, err := Command(tree.Same, "l", "r", Options{LookPath: available("vimdiff"), Getenv: noEnv})
	require.NoError(t, err)
	assert.Equal(t, []string{"vimdiff", "l", "r"}, cmd.Args)
}

func TestCommand_ConfiguredDiffTool(t *testing.T) {
	opts := Options{DiffTool: "meld --newtab", LookPath: available("meld", "vimdiff"), Getenv: noEnv}
	cmd, err := Command(tree.Different, "l", "r", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"meld", "--newtab", "l", "r"}, cmd.Args)
}

func TestCommand_MissingConfiguredToolFallsBack(t *testing.T) {
	opts := Options{DiffTool: "meld", LookPath: available("vimdiff"), Getenv: noEnv}
	cmd, err := Command(tree.Different, "l", "r", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"vimdiff", "l", "r"}, cmd.Args)
}

func TestCommand_OrphansOpenEditor(t *testing.T) {
	opts := Options{LookPath: available("vi", "nano"), Getenv: noEnv}

	cmd, err := Command(tree.LeftOnly, "l", "r", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"vi", "l"}, cmd.Args)

	cmd, err = Command(tree.RightOnly, "l", "r", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"vi", "r"}, cmd.Args)
}

func TestCommand_EditorPreference(t *testing.T) {
	env := func(key string) string {
		if key == "EDITOR" {
			return "code --wait"
		}
		return ""
	}

	cmd, err := Command(tree.LeftOnly, "l", "r", Options{LookPath: available("code", "vim"), Getenv: env})
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "--wait", "l"}, cmd.Args)

	cmd, err = Command(tree.LeftOnly, "l", "r", Options{Editor: "hx", LookPath: available("hx", "code"), Getenv: env})
	require.NoError(t, err)
	assert.Equal(t, []string{"hx", "l"}, cmd.Args)
}

func TestCommand_NothingInstalled(t *testing.T) {
	opts := Options{LookPath: available(), Getenv: noEnv}

	_, err := Command(tree.LeftOnly, "l", "r", opts)
	assert.ErrorIs(t, err, ErrNoEditor)

	_, err = Command(tree.Different, "l", "r", opts)
	assert.ErrorIs(t, err, ErrNoDiffTool)
}
