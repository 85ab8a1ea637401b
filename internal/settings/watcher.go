package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"universe-manager/internal/constants"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the document whenever the file is written, created or renamed into place,
// until ctx is done. The parent directory is watched so editors that replace the file are seen.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create settings watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(s.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch settings directory: %w", err)
	}
	s.logger.Info().Str("path", target).Msg("watching settings file")

	// bursts of events from a single save collapse into one reload
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debounce.Reset(constants.SettingsReloadWait)
		case <-debounce.C:
			if _, err := s.Reload(); err != nil {
				s.logger.Warn().Err(err).Str("path", target).Msg("ignoring unreadable settings file")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn().Err(err).Msg("settings watcher error")
		}
	}
}
