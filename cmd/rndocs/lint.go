package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/gnana997/rndocs/pkg/debounce"
	"github.com/gnana997/rndocs/pkg/navigation"
	"github.com/gnana997/rndocs/pkg/snippet"
)

// errLintFailed is returned when the catalog has errors; the details have
// already been printed.
var errLintFailed = errors.New("lint failed")

func newLintCmd(rt *runtime) *cobra.Command {
	var (
		watch  bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Validate the catalog and parse every code example",
		Long: `Validate the catalog and parse every code example.

JSX, TSX, JS and TS examples are parsed with tree-sitter; examples with
syntax errors fail the run. Categories missing from the sidebar order are
reported as warnings (errors with --strict).

With --watch, lint re-runs whenever a fragment under --catalog-dir changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l := &linter{rt: rt, out: cmd.OutOrStdout(), strict: strict}
			mgr := snippet.NewManager(0, rt.logger)
			defer mgr.Close()
			l.snippets = mgr

			if !watch {
				return l.run(cmd.Context())
			}
			if rt.cfg.CatalogDir == "" {
				return fmt.Errorf("--watch needs --catalog-dir (the embedded catalog cannot change)")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := l.run(ctx); err != nil && !errors.Is(err, errLintFailed) {
				return err
			}
			return l.watch(ctx, rt.cfg.CatalogDir, rt.debounceDelay())
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run on catalog changes")
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

type linter struct {
	rt       *runtime
	out      io.Writer
	strict   bool
	snippets *snippet.Manager

	mu sync.Mutex // serializes runs triggered by the watcher
}

// run lints the catalog once and prints a report.
func (l *linter) run(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cat, _, err := l.rt.loadCatalog()
	if err != nil {
		fmt.Fprintf(l.out, "✗ catalog: %v\n", err)
		return errLintFailed
	}

	failed := false
	warnings := 0
	for _, category := range navigation.Unlisted(cat.Documents, navigation.CategoryOrder) {
		fmt.Fprintf(l.out, "! category %q is not in the sidebar order and will not be shown\n", category)
		warnings++
	}
	if warnings > 0 && l.strict {
		failed = true
	}

	res, err := l.snippets.Check(ctx, cat)
	if err != nil {
		return fmt.Errorf("snippet check: %w", err)
	}
	for _, issue := range res.Issues {
		fmt.Fprintf(l.out, "✗ %s\n", issue)
	}
	if len(res.Issues) > 0 {
		failed = true
	}

	fmt.Fprintf(l.out, "%d documents, %d examples parsed, %d skipped, %d issues, %d warnings\n",
		len(cat.Documents), res.Checked, res.Skipped, len(res.Issues), warnings)
	if failed {
		return errLintFailed
	}
	fmt.Fprintln(l.out, "✓ catalog ok")
	return nil
}

// watch re-runs lint after JSON files under dir stop changing for delay.
func (l *linter) watch(ctx context.Context, dir string, delay time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	rerun := debounce.New(delay, func(name string) {
		l.rt.logger.Debug("catalog changed, re-running lint", "file", name)
		fmt.Fprintln(l.out)
		if err := l.run(ctx); err != nil && !errors.Is(err, errLintFailed) {
			l.rt.logger.Error("lint failed", "error", err)
		}
	})
	defer rerun.Stop()

	fmt.Fprintf(l.out, "watching %s for changes (Ctrl+C to stop)\n", dir)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchDirRecursive(watcher, event.Name)
					continue
				}
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			rerun.Trigger(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.rt.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
