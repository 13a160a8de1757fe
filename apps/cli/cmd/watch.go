package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// watchFiles re-runs rerun after writes to relevant files under paths until
// the process is interrupted. Bursts of events within WatchDebounceDelay
// trigger a single run.
func watchFiles(cmd *cobra.Command, logger *zap.Logger, paths []string, relevant func(string) bool, rerun func(changed string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot access %s: %w", path, err)
		}
		if !info.IsDir() {
			path = filepath.Dir(path)
		}
		_ = filepath.Walk(path, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !watchedDirs[dir] {
				if err := watcher.Add(dir); err != nil {
					logger.Warn("failed to watch directory", zap.String("dir", dir), zap.Error(err))
				}
				watchedDirs[dir] = true
			}
			return nil
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	watchLoop(ctx, logger, watcher.Events, watcher.Errors, WatchDebounceDelay, relevant, func(changed string) {
		rerun(changed)
		fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
	})
	return nil
}

// watchLoop debounces relevant write and create events and calls rerun on the
// calling goroutine. It returns when ctx is done or either channel closes.
func watchLoop(ctx context.Context, logger *zap.Logger, events <-chan fsnotify.Event, errs <-chan error,
	delay time.Duration, relevant func(string) bool, rerun func(changed string)) {
	var (
		fire    <-chan time.Time
		changed string
	)
	for {
		select {
		case <-ctx.Done():
			return

		case <-fire:
			fire = nil
			rerun(changed)

		case event, ok := <-events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !relevant(event.Name) {
				continue
			}
			logger.Debug("file changed", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			changed = event.Name
			fire = time.After(delay)

		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Warn("watcher error", zap.Error(err))
		}
	}
}
