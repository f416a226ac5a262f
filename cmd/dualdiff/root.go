package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dualdiff/internal/compare"
	"dualdiff/internal/config"
	"dualdiff/internal/copier"
	"dualdiff/internal/launcher"
	"dualdiff/internal/logging"
	"dualdiff/internal/progress"
	"dualdiff/internal/refresh"
	"dualdiff/internal/session"
	"dualdiff/internal/ui"
	"dualdiff/internal/watch"
)

type options struct {
	configPath string
	simple     bool
	jsonPath   string
	watch      bool
	debug      bool
	workers    int
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "dualdiff [flags] <left> <right>",
		Short: "Compare two directory trees side by side",
		Long: `dualdiff scans two directories, classifies every path as identical,
different or present on one side only, and shows both trees in aligned panels.
Differences can be opened in an external diff tool and copied across.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args[0], args[1], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (default ./dualdiff.yaml, then the user config dir)")
	cmd.Flags().BoolVar(&opts.simple, "simple", false, "Print a text report instead of the interactive view")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "Export the comparison to a JSON file")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Refresh automatically when either directory changes")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "Write a debug log to the user cache dir")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Number of concurrent file comparisons")

	return cmd
}

// resolveDir returns the absolute form of dir, which must be a directory.
func resolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}
	return abs, nil
}

func run(ctx context.Context, opts options, leftArg, rightArg string, stdout, stderr io.Writer) error {
	left, err := resolveDir(leftArg)
	if err != nil {
		return err
	}
	right, err := resolveDir(rightArg)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if opts.watch {
		cfg.Watch = true
	}

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	logger, closeLog, err := logging.New(logging.Options{Enabled: opts.debug, Level: level})
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog()

	compareOpts := compare.Options{Exclude: cfg.Exclude, Workers: cfg.Workers, Logger: logger}

	bar := progress.New(stderr)
	c, err := compare.Run(ctx, left, right, compareOpts, bar.Report)
	bar.Finish()
	if err != nil {
		return err
	}

	if opts.jsonPath != "" {
		if err := compare.Save(c, opts.jsonPath); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Comparison exported to %s\n", opts.jsonPath)
	}

	if opts.simple {
		fmt.Fprint(stdout, compare.FormatReport(c))
		return nil
	}

	if err := interactive(c, cfg, compareOpts, logger); err != nil {
		logger.Error("interactive view failed", "error", err)
		fmt.Fprintf(stderr, "Interactive view unavailable (%v), printing report instead\n", err)
		fmt.Fprint(stdout, compare.FormatReport(c))
	}
	return nil
}

func interactive(c *compare.Comparison, cfg *config.Config, compareOpts compare.Options, logger *slog.Logger) error {
	worker := refresh.New(func(ctx context.Context, left, right string, report func(string)) (*compare.Comparison, error) {
		return compare.Run(ctx, left, right, compareOpts, report)
	}, logger)
	defer worker.Close()

	sess := session.New(c, worker, session.Options{
		Settle: copier.Settle{
			Delay:      cfg.SettleDelay,
			LargeDelay: cfg.LargeSettleDelay,
			LargeDir:   cfg.LargeDirThreshold,
		},
		Launch: launcher.Options{Editor: cfg.Editor, DiffTool: cfg.DiffTool},
		Logger: logger,
	})

	uiOpts := ui.Options{PollInterval: cfg.PollInterval, Logger: logger}
	if cfg.Watch {
		w, err := watch.New([]string{c.LeftDir, c.RightDir}, cfg.WatchDebounce, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		uiOpts.Watch = w.Changes()
	}

	return ui.Run(sess, uiOpts)
}
