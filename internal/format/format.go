// Package format renders sizes, times and paths for fixed-width columns.
package format

import (
	"fmt"
	"time"
)

const (
	blankSize = "     "
	blankTime = "           "
)

// Size renders a byte count in five columns, or blanks when unknown.
func Size(size int64, known bool) string {
	if !known {
		return blankSize
	}
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size < KB:
		return fmt.Sprintf("%4dB", size)
	case size < MB:
		return fmt.Sprintf("%4.1fK", float64(size)/KB)
	case size < GB:
		return fmt.Sprintf("%4.1fM", float64(size)/MB)
	default:
		return fmt.Sprintf("%4.1fG", float64(size)/GB)
	}
}

// ModTime renders t in loc as "Jan _2 15:04" when it falls in now's year
// and "Jan _2  2006" otherwise. A zero t renders blank.
func ModTime(t, now time.Time, loc *time.Location) string {
	if t.IsZero() {
		return blankTime
	}
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	if t.Year() == now.In(loc).Year() {
		return t.Format("Jan _2 15:04")
	}
	return t.Format("Jan _2  2006")
}

// Truncate shortens s to at most width runes by replacing its middle with "...".
func Truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width < 3 {
		return "..."
	}
	head := (width - 3) / 2
	tail := width - 3 - head
	return string(r[:head]) + "..." + string(r[len(r)-tail:])
}
