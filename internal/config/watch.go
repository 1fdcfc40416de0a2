package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// watchSettle coalesces the burst of events an editor save produces.
const watchSettle = 150 * time.Millisecond

// Watch calls onChange after path is written, created or replaced, until ctx
// is done. The parent directory is watched so atomic renames are seen.
func Watch(ctx context.Context, path string, log *logrus.Entry, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return err
	}
	if log == nil {
		log = logrus.WithField("component", "config")
	}
	log = log.WithField("path", abs)

	go func() {
		defer watcher.Close()

		var settle *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if settle != nil {
					settle.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if settle == nil {
					settle = time.NewTimer(watchSettle)
				} else {
					settle.Reset(watchSettle)
				}
				fire = settle.C

			case <-fire:
				fire = nil
				log.Debug("watched file changed")
				onChange()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("file watcher error")
			}
		}
	}()

	log.Debug("watching file")
	return nil
}
