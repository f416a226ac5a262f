package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(size int64) Entry { return Entry{Size: size} }

func dir() Entry { return Entry{IsDir: true} }

func sameClassifier(string) (Status, error) { return Same, nil }

func build(t *testing.T, left, right Listing, classify Classifier) (*Node, *Node) {
	t.Helper()
	l, r, err := Build(left, right, BuildOptions{LeftName: "L", RightName: "R", Classify: classify})
	require.NoError(t, err)
	Sort(l)
	Sort(r)
	Propagate(l)
	Propagate(r)
	return l, r
}

func TestBuild_EmptyDirectories(t *testing.T) {
	l, r := build(t, Listing{}, Listing{}, sameClassifier)

	assert.Empty(t, l.Children)
	assert.Empty(t, r.Children)
	assert.Equal(t, Same, l.Status)
	assert.Equal(t, Same, r.Status)
	assert.True(t, l.Expanded)
	assert.Equal(t, "L", l.Name)
	assert.Equal(t, "R", r.Name)
}

func TestBuild_ShapesAlign(t *testing.T) {
	left := Listing{
		"a":         dir(),
		"a/one.txt": file(1),
		"a/sub":     dir(),
		"b.txt":     file(3),
		"Zed":       dir(),
		"zed.txt":   file(1),
	}
	right := Listing{
		"a":         dir(),
		"a/two.txt": file(2),
		"c":         dir(),
		"c/d":       dir(),
		"c/d/e.txt": file(5),
		"b.txt":     file(3),
	}

	l, r := build(t, left, right, sameClassifier)
	require.True(t, Aligned(l, r))

	var leftPaths, rightPaths []string
	Walk(l, func(n *Node) bool { leftPaths = append(leftPaths, n.Path); return true })
	Walk(r, func(n *Node) bool { rightPaths = append(rightPaths, n.Path); return true })
	assert.Equal(t, leftPaths, rightPaths)

	// Directories first, then case-insensitive names.
	var top []string
	for _, c := range l.Children {
		top = append(top, c.Path)
	}
	assert.Equal(t, []string{"a", "c", "Zed", "b.txt", "zed.txt"}, top)
}

func TestBuild_Placeholders(t *testing.T) {
	left := Listing{"only_left": dir(), "only_left/f.txt": file(4)}
	l, r := build(t, left, Listing{}, sameClassifier)

	for _, rel := range []string{"only_left", "only_left/f.txt"} {
		ln := Find(l, rel)
		rn := Find(r, rel)
		require.NotNil(t, ln, rel)
		require.NotNil(t, rn, rel)

		assert.Equal(t, LeftOnly, ln.Status, rel)
		assert.Equal(t, LeftOnly, rn.Status, rel)
		assert.False(t, ln.Placeholder(), rel)
		assert.True(t, rn.Placeholder(), rel)
		assert.False(t, rn.HasSize, rel)
		assert.True(t, rn.ModTime.IsZero(), rel)
	}
	assert.Equal(t, LeftOnly, l.Status)
	assert.True(t, Find(l, "only_left/f.txt").HasSize)
}

func TestBuild_ClassifierDecidesFiles(t *testing.T) {
	left := Listing{"x.txt": file(3), "y.txt": file(3)}
	right := Listing{"x.txt": file(3), "y.txt": file(3)}

	classify := func(rel string) (Status, error) {
		if rel == "x.txt" {
			return Different, nil
		}
		return Same, nil
	}

	l, r := build(t, left, right, classify)
	assert.Equal(t, Different, Find(l, "x.txt").Status)
	assert.Equal(t, Different, Find(r, "x.txt").Status)
	assert.Equal(t, Same, Find(l, "y.txt").Status)
	assert.Equal(t, Different, l.Status)
}

func TestBuild_ClassifierError(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := Build(Listing{"x": file(1)}, Listing{"x": file(1)}, BuildOptions{
		Classify: func(string) (Status, error) { return Same, boom },
	})
	assert.ErrorIs(t, err, boom)
}

func TestBuild_KindConflict(t *testing.T) {
	left := Listing{"p": dir(), "p/a.txt": file(1)}
	right := Listing{"p": file(1)}

	l, r := build(t, left, right, sameClassifier)
	require.True(t, Aligned(l, r))

	lp := Find(l, "p")
	rp := Find(r, "p")
	assert.True(t, lp.IsDir)
	assert.True(t, rp.IsDir)
	assert.Equal(t, Different, lp.Status)
	assert.Equal(t, Different, rp.Status)
}

func TestBuild_SynthesizesIntermediates(t *testing.T) {
	// A listing without its parent directory still yields a full chain.
	l, r, err := Build(Listing{"a/b/c.txt": file(1)}, Listing{}, BuildOptions{Classify: sameClassifier})
	require.NoError(t, err)

	a := Find(l, "a")
	require.NotNil(t, a)
	assert.True(t, a.IsDir)
	assert.False(t, a.Expanded)
	assert.Equal(t, Same, a.Status)
	assert.NotNil(t, Find(r, "a/b/c.txt"))
	assert.True(t, Aligned(l, r))
}

func TestBuild_Progress(t *testing.T) {
	var calls []int
	_, _, err := Build(Listing{"a": file(1), "b": file(1)}, Listing{"c": file(1)}, BuildOptions{
		Classify: sameClassifier,
		Progress: func(done, total int) {
			assert.Equal(t, 3, total)
			calls = append(calls, done)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestUnionPaths_ComponentOrder(t *testing.T) {
	left := Listing{"": dir(), "a-b": file(1), "a/z": file(1), ".": dir()}
	right := Listing{"a": dir(), "a/z": file(1)}

	// "a" precedes "a-b" and "a/z" follows "a" even though '-' < '/'.
	assert.Equal(t, []string{"a", "a/z", "a-b"}, UnionPaths(left, right))
}

func TestPropagate(t *testing.T) {
	tests := []struct {
		name     string
		children []Status
		want     Status
	}{
		{"left and right", []Status{LeftOnly, RightOnly}, Different},
		{"all same", []Status{Same, Same}, Same},
		{"all left", []Status{LeftOnly, LeftOnly}, LeftOnly},
		{"all right", []Status{RightOnly}, RightOnly},
		{"left and same", []Status{LeftOnly, Same}, Different},
		{"right and same", []Status{Same, RightOnly}, Different},
		{"any different", []Status{Same, Different}, Different},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &Node{IsDir: true, Status: Same}
			for _, s := range tt.children {
				n.Children = append(n.Children, &Node{Status: s})
			}
			assert.Equal(t, tt.want, Propagate(n))
			assert.Equal(t, tt.want, n.Status)
		})
	}
}

func TestPropagate_EmptyDirectoryUnchanged(t *testing.T) {
	n := &Node{IsDir: true, Status: RightOnly}
	assert.Equal(t, RightOnly, Propagate(n))
}

func TestPropagate_Nested(t *testing.T) {
	root := &Node{IsDir: true, Children: []*Node{
		{IsDir: true, Children: []*Node{{Status: LeftOnly}}},
		{IsDir: true, Children: []*Node{{Status: LeftOnly}, {Status: LeftOnly}}},
	}}
	assert.Equal(t, LeftOnly, Propagate(root))
}

func TestCollapseAll_RootStaysExpanded(t *testing.T) {
	l, _ := build(t, Listing{"a": dir(), "a/b": dir()}, Listing{}, sameClassifier)

	ExpandAll(l)
	assert.True(t, Find(l, "a").Expanded)
	assert.True(t, Find(l, "a/b").Expanded)

	CollapseAll(l)
	assert.True(t, l.Expanded)
	assert.False(t, Find(l, "a").Expanded)
	assert.False(t, Find(l, "a/b").Expanded)
}

func TestClone_IsDeep(t *testing.T) {
	l, _ := build(t, Listing{"a": dir(), "a/b.txt": file(1)}, Listing{}, sameClassifier)

	cp := Clone(l)
	Find(cp, "a").Expanded = true
	Find(cp, "a/b.txt").Status = Same

	assert.False(t, Find(l, "a").Expanded)
	assert.Equal(t, LeftOnly, Find(l, "a/b.txt").Status)
	assert.True(t, Aligned(l, cp))
}

func TestFind_Missing(t *testing.T) {
	l, _ := build(t, Listing{"a": dir()}, Listing{}, sameClassifier)
	assert.Nil(t, Find(l, "a/nope"))
	assert.Nil(t, Find(l, "b"))
	assert.Same(t, l, Find(l, ""))
}

func TestFingerprint(t *testing.T) {
	left := Listing{"a": dir(), "a/x": file(1), "b": file(2)}
	right := Listing{"a": dir(), "a/x": file(1)}

	l1, _ := build(t, left, right, sameClassifier)
	l2, _ := build(t, left, right, sameClassifier)

	f1, err := Fingerprint(l1)
	require.NoError(t, err)
	f2, err := Fingerprint(l2)
	require.NoError(t, err)
	assert.Equal(t, f1, f2)

	Find(l2, "a/x").Status = Different
	f3, err := Fingerprint(l2)
	require.NoError(t, err)
	assert.NotEqual(t, f1, f3)
}

func TestFingerprint_SmallTrees(t *testing.T) {
	empty, _ := build(t, Listing{}, Listing{}, sameClassifier)
	one, _ := build(t, Listing{"a": file(1)}, Listing{}, sameClassifier)

	fe, err := Fingerprint(empty)
	require.NoError(t, err)
	fo, err := Fingerprint(one)
	require.NoError(t, err)

	assert.Len(t, fe, 16)
	assert.NotEqual(t, fe, fo)
}

func TestXXHashFunc(t *testing.T) {
	a, err := XXHashFunc([]byte("test data"))
	require.NoError(t, err)
	b, err := XXHashFunc([]byte("test data"))
	require.NoError(t, err)

	assert.Len(t, a, 8)
	assert.Equal(t, a, b)
}
