// Package copier copies files and directories between the two roots of a
// comparison, keeping file modification times.
package copier

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"dualdiff/internal/fault"
)

// Stats describes what a copy of one path would transfer.
type Stats struct {
	Files   int
	Folders int
	Bytes   int64
}

// Measure counts the files, folders and bytes under rel in fsys. A file
// counts as one file; a directory counts itself as one folder.
func Measure(fsys billy.Filesystem, rel string) (Stats, error) {
	var st Stats
	err := util.Walk(fsys, rel, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return fault.Copy("stat", fsys.Join(fsys.Root(), p), err)
		}
		if info.IsDir() {
			st.Folders++
			return nil
		}
		st.Files++
		st.Bytes += info.Size()
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

// Copy copies rel from src to dst, creating missing parent directories.
// Directories are copied recursively. Every copied file gets the source's
// modification time.
func Copy(src, dst billy.Filesystem, rel string) error {
	info, err := src.Stat(rel)
	if err != nil {
		return fault.Copy("stat", src.Join(src.Root(), rel), err)
	}

	if !info.IsDir() {
		if dir := path.Dir(rel); dir != "." {
			if err := dst.MkdirAll(dir, 0755); err != nil {
				return fault.Copy("mkdir", dst.Join(dst.Root(), dir), err)
			}
		}
		return copyFile(src, dst, rel, info)
	}

	return util.Walk(src, rel, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return fault.Copy("walk", src.Join(src.Root(), p), err)
		}
		p = filepath.ToSlash(p)
		if fi.IsDir() {
			if err := dst.MkdirAll(p, fi.Mode().Perm()|0700); err != nil {
				return fault.Copy("mkdir", dst.Join(dst.Root(), p), err)
			}
			return nil
		}
		return copyFile(src, dst, p, fi)
	})
}

func copyFile(src, dst billy.Filesystem, rel string, info os.FileInfo) error {
	in, err := src.Open(rel)
	if err != nil {
		return fault.Copy("open", src.Join(src.Root(), rel), err)
	}
	defer in.Close()

	out, err := dst.OpenFile(rel, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fault.Copy("create", dst.Join(dst.Root(), rel), err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fault.Copy("write", dst.Join(dst.Root(), rel), err)
	}
	if err := out.Close(); err != nil {
		return fault.Copy("close", dst.Join(dst.Root(), rel), err)
	}

	return preserveModTime(dst, rel, info.ModTime())
}

// preserveModTime sets rel's modification time through billy.Change when
// fsys offers it. The osfs chroot does not, so an OS-backed root falls back
// to os.Chtimes on the real path.
func preserveModTime(fsys billy.Filesystem, rel string, mtime time.Time) error {
	full := fsys.Join(fsys.Root(), rel)

	var err error
	switch ch := fsys.(type) {
	case billy.Change:
		err = ch.Chtimes(rel, mtime, mtime)
	default:
		err = os.Chtimes(full, mtime, mtime)
	}
	if err != nil {
		return fault.Copy("chtimes", full, err)
	}
	return nil
}

// Settle is the pause between a copy and the refresh that follows it.
type Settle struct {
	Delay      time.Duration
	LargeDelay time.Duration
	// LargeDir is the entry count above which a parent directory is large.
	LargeDir int
}

// For returns the delay to wait after copying rel out of fsys: LargeDelay
// when rel's parent directory holds more than LargeDir entries.
func (s Settle) For(fsys billy.Filesystem, rel string) time.Duration {
	entries, err := fsys.ReadDir(path.Dir(rel))
	if err != nil || len(entries) <= s.LargeDir {
		return s.Delay
	}
	return s.LargeDelay
}
