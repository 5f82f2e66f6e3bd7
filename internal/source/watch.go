package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"photovault/internal/pv"
)

// DefaultSettle is how long a new file must stay quiet before it is reported.
const DefaultSettle = 750 * time.Millisecond

// Watch reports images that appear in the source directory until ctx is done.
// Events are batched: a file is delivered once no event touched it for settle.
// Watch blocks and returns nil when ctx is cancelled.
func (s *DirSource) Watch(ctx context.Context, settle time.Duration, onArrival func([]pv.SourcePhoto)) error {
	if settle <= 0 {
		settle = DefaultSettle
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := s.addWatches(watcher, s.root); err != nil {
		return err
	}

	pending := make(map[string]time.Time)
	timer := time.NewTimer(settle)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			rel, err := filepath.Rel(s.root, event.Name)
			if err != nil || s.ignore.Match(rel) {
				continue
			}
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if s.recursive {
					if err := s.addWatches(watcher, event.Name); err != nil {
						s.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
					}
					// Files may have landed before the watch was added.
					if s.queueExisting(event.Name, pending) {
						timer.Reset(settle)
					}
				}
				continue
			}
			if !IsImage(rel) {
				continue
			}
			pending[rel] = time.Now()
			timer.Reset(settle)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("source watcher error", "error", err)

		case <-timer.C:
			ready := s.settled(pending, settle)
			if len(pending) > 0 {
				timer.Reset(settle)
			}
			if len(ready) > 0 {
				onArrival(ready)
			}
		}
	}
}

// settled removes files that have been quiet for settle from pending and
// returns those still present, oldest modification first.
func (s *DirSource) settled(pending map[string]time.Time, settle time.Duration) []pv.SourcePhoto {
	now := time.Now()
	var ready []pv.SourcePhoto
	for rel, seen := range pending {
		if now.Sub(seen) < settle {
			continue
		}
		delete(pending, rel)
		photo, err := s.Lookup(filepath.ToSlash(rel))
		if err != nil {
			s.logger.Debug("arrival vanished", "ref", rel, "error", err)
			continue
		}
		ready = append(ready, photo)
	}
	sort.Slice(ready, func(i, j int) bool {
		if !ready[i].ModifiedAt.Equal(ready[j].ModifiedAt) {
			return ready[i].ModifiedAt.Before(ready[j].ModifiedAt)
		}
		return ready[i].ID < ready[j].ID
	})
	return ready
}

// queueExisting adds the images already below dir to pending.
func (s *DirSource) queueExisting(dir string, pending map[string]time.Time) bool {
	queued := false
	now := time.Now()
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err == nil && IsImage(rel) && !s.ignore.Match(rel) {
			pending[rel] = now
			queued = true
		}
		return nil
	})
	return queued
}

// addWatches watches dir and, for recursive sources, every non-ignored directory below it.
func (s *DirSource) addWatches(watcher *fsnotify.Watcher, dir string) error {
	if !s.recursive {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.root {
			if rel, _ := filepath.Rel(s.root, path); s.ignore.Match(rel) {
				return filepath.SkipDir
			}
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
