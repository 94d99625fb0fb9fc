package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/c360studio/semvocab/source"
)

func watchCmd(a *app) *cobra.Command {
	var (
		outDir  string
		formats []string
		date    string
	)

	cmd := &cobra.Command{
		Use:   "watch [patterns...]",
		Short: "Rebuild vocabulary files when they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.buildOptions(cmd, outDir, formats, date)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			return newWatcher(args, opts, a.cfg.Watch.Debounce, a.logger, cmd.OutOrStdout()).run(ctx)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: next to each input)")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Output format, repeatable (turtle, jsonld, html, context)")
	cmd.Flags().StringVar(&date, "date", "", "Fixed dc:date (YYYY-MM-DD)")

	return cmd
}

// watcher rebuilds matched vocabulary files after a quiet period.
type watcher struct {
	patterns []string
	opts     buildOptions
	debounce time.Duration
	logger   *slog.Logger
	out      io.Writer

	pendingMu sync.Mutex
	pending   map[string]bool
}

func newWatcher(patterns []string, opts buildOptions, debounce time.Duration, logger *slog.Logger, out io.Writer) *watcher {
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	clean := make([]string, len(patterns))
	for i, p := range patterns {
		clean[i] = filepath.Clean(p)
	}
	return &watcher{
		patterns: clean,
		opts:     opts,
		debounce: debounce,
		logger:   logger,
		out:      out,
		pending:  make(map[string]bool),
	}
}

// run builds everything once and then rebuilds on change until ctx ends.
func (w *watcher) run(ctx context.Context) error {
	if err := buildAll(w.patterns, w.opts, w.logger, w.out); err != nil {
		w.logger.Error("Initial build failed", "error", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.roots() {
		if err := w.addRecursive(fsw, dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.logger.Info("Watching for changes", "patterns", w.patterns, "debounce", w.debounce)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(fsw, event.Name)
					continue
				}
			}
			if w.handle(event) {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", "error", err)

		case <-timer.C:
			w.flush()
		}
	}
}

// handle records a relevant change and reports whether one was recorded.
func (w *watcher) handle(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	path := filepath.Clean(event.Name)
	if !w.matches(path) {
		return false
	}

	w.pendingMu.Lock()
	w.pending[path] = true
	w.pendingMu.Unlock()

	w.logger.Debug("Vocabulary change detected", "path", path, "op", event.Op.String())
	return true
}

// flush rebuilds every pending file.
func (w *watcher) flush() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]bool)
	w.pendingMu.Unlock()

	sort.Strings(paths)
	for _, p := range paths {
		written, err := buildFile(p, w.opts, w.logger)
		if err != nil {
			w.logger.Error("Rebuild failed", "input", p, "error", err)
			continue
		}
		for _, out := range written {
			fmt.Fprintf(w.out, "wrote %s\n", out)
		}
	}
}

// matches reports whether path is covered by one of the patterns.
func (w *watcher) matches(path string) bool {
	if !source.IsVocabFile(path) {
		return false
	}
	for _, p := range w.patterns {
		switch {
		case p == path:
			return true
		case strings.ContainsAny(p, "*?[{"):
			if ok, _ := doublestar.PathMatch(p, path); ok {
				return true
			}
		case isDir(p):
			if rel, err := filepath.Rel(p, path); err == nil && !strings.HasPrefix(rel, "..") {
				return true
			}
		}
	}
	return false
}

// roots returns the directories to watch for the patterns.
func (w *watcher) roots() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range w.patterns {
		dir := p
		switch {
		case strings.ContainsAny(p, "*?[{"):
			dir, _ = doublestar.SplitPattern(filepath.ToSlash(p))
			dir = filepath.FromSlash(dir)
		case !isDir(p):
			dir = filepath.Dir(p)
		}
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (w *watcher) addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		base := d.Name()
		if strings.HasPrefix(base, ".") && path != root {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", "path", path, "error", err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
