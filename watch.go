package blogkit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// ErrNotWatchable is returned by Watcher.Run for a Site whose content is
// not read from Config.ContentDir, such as one built with WithContentFS.
var ErrNotWatchable = errors.New("blogkit: content is not read from ContentDir")

// Watcher re-validates the blog collection whenever files under it change.
type Watcher struct {
	Site  *Site
	Delay time.Duration // quiet period before re-checking (default 200ms)

	// OnCheck, when set, is called after every re-check.
	OnCheck func(files int, err error)
}

// NewWatcher returns a Watcher for s.
func NewWatcher(s *Site) *Watcher {
	return &Watcher{Site: s, Delay: 200 * time.Millisecond}
}

// Dir is the on-disk directory being watched.
func (w *Watcher) Dir() string {
	return filepath.Join(w.Site.Config.ContentDir, filepath.FromSlash(w.Site.Collection.Dir))
}

// Run watches until ctx is cancelled. An initial check runs before the
// first event is awaited. Re-checks only run on the calling goroutine, so
// none happen after Run returns.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.Site.onDisk {
		return ErrNotWatchable
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("blogkit: start watcher: %w", err)
	}
	defer fw.Close()

	root := w.Dir()
	if err := addTree(fw, root); err != nil {
		return fmt.Errorf("blogkit: watch %s: %w", root, err)
	}
	log := w.Site.log.With().Str("path", root).Logger()
	log.Info().Msg("watching for changes")

	delay := w.Delay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	debounced := debounce.New(delay)
	pending := make(chan struct{}, 1)
	trigger := func() {
		select {
		case pending <- struct{}{}:
		default:
		}
	}
	w.recheck()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pending:
			w.recheck()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := addTree(fw, ev.Name); err != nil {
						log.Warn().Err(err).Str("dir", ev.Name).Msg("cannot watch new directory")
					}
				}
			}
			log.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			debounced(trigger)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) recheck() {
	w.Site.Cache.Invalidate()
	n, err := w.Site.Check()
	if err != nil {
		w.Site.log.Error().Err(err).Int("entries", n).Msg("content check failed")
	} else {
		w.Site.log.Info().Int("entries", n).Msg("content ok")
	}
	if w.OnCheck != nil {
		w.OnCheck(n, err)
	}
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(p)
		}
		return nil
	})
}
