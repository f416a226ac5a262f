// Package scanner enumerates one directory root into a tree.Listing.
package scanner

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"dualdiff/internal/fault"
	"dualdiff/internal/tree"
)

// DefaultProgressEvery is the number of visited entries between progress reports.
const DefaultProgressEvery = 50

type Options struct {
	// Exclude holds glob patterns. A trailing "/" excludes matching directories
	// with their whole subtree; other patterns match the base name, and
	// patterns containing "/" also match the full relative path.
	Exclude []string

	// OnProgress receives the running count of visited entries every
	// ProgressEvery entries.
	ProgressEvery int
	OnProgress    func(visited int)
}

// Scan walks fsys from its root. Any I/O failure aborts the scan and no
// partial listing is returned.
func Scan(fsys billy.Filesystem, opts Options) (tree.Listing, error) {
	every := opts.ProgressEvery
	if every <= 0 {
		every = DefaultProgressEvery
	}

	listing := make(tree.Listing)
	visited := 0

	err := util.Walk(fsys, ".", func(p string, info os.FileInfo, err error) error {
		rel := filepath.ToSlash(p)
		if err != nil {
			return fault.Scan("walk", fsys.Join(fsys.Root(), p), err)
		}
		if rel == "." || rel == "" {
			return nil
		}

		if shouldExclude(rel, opts.Exclude) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 {
			// Links are recorded with the metadata of their target.
			target, err := fsys.Stat(p)
			if err != nil {
				return fault.Scan("stat", fsys.Join(fsys.Root(), p), err)
			}
			info = target
		}

		entry := tree.Entry{IsDir: info.IsDir(), ModTime: info.ModTime()}
		if !entry.IsDir {
			entry.Size = info.Size()
		}
		listing[rel] = entry

		visited++
		if opts.OnProgress != nil && visited%every == 0 {
			opts.OnProgress(visited)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return listing, nil
}

func shouldExclude(rel string, exclusions []string) bool {
	for _, pattern := range exclusions {
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			for _, part := range strings.Split(rel, "/") {
				if matched, _ := path.Match(dirPattern, part); matched || part == dirPattern {
					return true
				}
			}
			continue
		}

		if matched, err := path.Match(pattern, path.Base(rel)); err == nil && matched {
			return true
		}
		if strings.Contains(pattern, "/") {
			if matched, err := path.Match(pattern, rel); err == nil && matched {
				return true
			}
		}
	}
	return false
}
