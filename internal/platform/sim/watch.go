package sim

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay lets editors finish a burst of writes before the scene is
// re-read.
const reloadDelay = 150 * time.Millisecond

// WatchScene reloads the scene from path whenever the file changes. The
// parent directory is watched so atomic rename-over saves are seen.
// Parse failures are logged and the current scene is kept.
func (h *Host) WatchScene(path string) error {
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

	stopCh := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.watch(watcher, abs, stopCh)
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(stopCh)
			watcher.Close()
			wg.Wait()
		})
	}

	h.mu.Lock()
	prev := h.stopWatch
	h.stopWatch = stop
	h.mu.Unlock()
	if prev != nil {
		prev()
	}

	h.log.Info().Str("path", abs).Msg("watching scene file")
	return nil
}

func (h *Host) watch(watcher *fsnotify.Watcher, path string, stopCh <-chan struct{}) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-stopCh:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDelay, func() { h.reload(path) })

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			h.log.Error().Err(err).Msg("scene watcher error")
		}
	}
}

func (h *Host) reload(path string) {
	scene, err := LoadScene(path)
	if err != nil {
		h.log.Warn().Err(err).Str("path", path).Msg("scene reload failed, keeping current scene")
		return
	}
	h.LoadScene(scene)
	h.log.Info().Str("path", path).Str("activity", scene.Activity).Int("nodes", scene.Root.Count()).Msg("scene reloaded")
}
