// Package compare produces Comparison snapshots of two directory roots and
// reports on them.
package compare

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/go-git/go-billy/v5/osfs"
	"golang.org/x/sync/errgroup"

	"dualdiff/internal/logging"
	"dualdiff/internal/oracle"
	"dualdiff/internal/progress"
	"dualdiff/internal/scanner"
	"dualdiff/internal/tree"
)

// Comparison is one snapshot: two aligned trees and their root directories.
// A snapshot is replaced wholesale and never mutated while shared.
type Comparison struct {
	Left     *tree.Node
	Right    *tree.Node
	LeftDir  string
	RightDir string
}

type Options struct {
	Exclude []string
	// Workers bounds concurrent content comparisons. Default: runtime.NumCPU().
	Workers int
	Logger  *slog.Logger
}

// Run scans both roots, decides equality of every shared file, builds both
// aligned trees, sorts them and propagates directory statuses. report, if
// non-nil, receives progress messages one at a time. Any scan or read
// failure aborts the run; no partial snapshot is returned.
func Run(ctx context.Context, leftDir, rightDir string, opts Options, report func(string)) (*Comparison, error) {
	log := logging.OrDiscard(opts.Logger)
	emit := serialize(report)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	leftFS := osfs.New(leftDir)
	rightFS := osfs.New(rightDir)

	// Both scans share one running count so the reported total only grows.
	var (
		scanMu  sync.Mutex
		scanned [2]int
	)
	scanOpts := func(side int) scanner.Options {
		return scanner.Options{Exclude: opts.Exclude, OnProgress: func(visited int) {
			scanMu.Lock()
			defer scanMu.Unlock()
			scanned[side] = visited
			emit(progress.Scanning(scanned[0] + scanned[1]))
		}}
	}

	emit(progress.MsgStarting)
	log.Debug("comparison started", "left", leftDir, "right", rightDir)

	var left, right tree.Listing
	g, gctx := errgroup.WithContext(ctx)

	emit(progress.MsgScanningLeft)
	g.Go(func() error {
		var err error
		left, err = scanner.Scan(leftFS, scanOpts(0))
		if err != nil {
			return fmt.Errorf("failed to scan left directory: %w", err)
		}
		return gctx.Err()
	})

	emit(progress.MsgScanningRight)
	g.Go(func() error {
		var err error
		right, err = scanner.Scan(rightFS, scanOpts(1))
		if err != nil {
			return fmt.Errorf("failed to scan right directory: %w", err)
		}
		return gctx.Err()
	})

	if err := g.Wait(); err != nil {
		log.Error("scan failed", "error", err)
		return nil, err
	}

	paths := tree.UnionPaths(left, right)
	emit(progress.FilesToCompare(len(paths)))
	emit(progress.MsgProcessing)

	statuses, err := classify(ctx, oracle.New(leftFS, rightFS), pairs(paths, left, right), workers, emit, log)
	if err != nil {
		log.Error("content comparison failed", "error", err)
		return nil, err
	}

	leftRoot, rightRoot, err := tree.Build(left, right, tree.BuildOptions{
		LeftName:  filepath.Base(leftDir),
		RightName: filepath.Base(rightDir),
		Classify: func(rel string) (tree.Status, error) {
			s, ok := statuses[rel]
			if !ok {
				return tree.Same, fmt.Errorf("no equality result for %q", rel)
			}
			return s, nil
		},
		// Only the end of building is reported. It follows the content
		// comparison and must not restart the estimate.
		Progress: func(done, total int) {
			if done == total {
				emit(progress.Paths(done, total))
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build trees: %w", err)
	}

	tree.Sort(leftRoot)
	tree.Sort(rightRoot)
	tree.Propagate(leftRoot)
	tree.Propagate(rightRoot)

	if !tree.Aligned(leftRoot, rightRoot) {
		return nil, fmt.Errorf("trees for %s and %s are not aligned", leftDir, rightDir)
	}

	emit(progress.MsgComplete)
	log.Debug("comparison complete", "paths", len(paths), "files_compared", len(statuses))

	return &Comparison{
		Left:     leftRoot,
		Right:    rightRoot,
		LeftDir:  leftDir,
		RightDir: rightDir,
	}, nil
}

// pairs returns the paths that are regular files on both sides.
func pairs(paths []string, left, right tree.Listing) []string {
	var out []string
	for _, rel := range paths {
		l, inLeft := left[rel]
		r, inRight := right[rel]
		if inLeft && inRight && !l.IsDir && !r.IsDir {
			out = append(out, rel)
		}
	}
	return out
}

// classify runs the oracle over every pair on a bounded worker pool. The
// first failure cancels the remaining work.
func classify(ctx context.Context, o *oracle.Oracle, rels []string, workers int, emit func(string), log *slog.Logger) (map[string]tree.Status, error) {
	results := make([]tree.Status, len(rels))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, rel := range rels {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			equal, stage, err := o.Equal(rel)
			if err != nil {
				return err
			}
			if equal {
				results[i] = tree.Same
			} else {
				results[i] = tree.Different
			}
			log.Debug("compared", "path", rel, "stage", stage.String(), "equal", equal)

			n := int(done.Add(1))
			if n%100 == 0 || n == len(rels) {
				emit(progress.Comparing(n, len(rels)))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancelled context can stop the loop before any goroutine fails.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	statuses := make(map[string]tree.Status, len(rels))
	for i, rel := range rels {
		statuses[rel] = results[i]
	}
	return statuses, nil
}

// serialize makes report safe to call from several goroutines, delivering
// one message at a time.
func serialize(report func(string)) func(string) {
	if report == nil {
		return func(string) {}
	}
	var mu sync.Mutex
	return func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		report(msg)
	}
}
