// Package watch monitors sample files and re-runs generation when they
// change. Events are debounced so an editor save that touches several files
// triggers a single regeneration.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits after the last event before
// firing the callback.
const DefaultDebounce = 100 * time.Millisecond

// SampleWatcher monitors the directories containing the sample files and
// invokes a callback with the batch of changed paths.
type SampleWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	samples   map[string]bool
	onChange  func([]string) error
	log       *zap.SugaredLogger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewSampleWatcher creates a watcher over the given sample files. Only those
// exact files trigger the callback; sibling files in the same directories do
// not.
func NewSampleWatcher(samples []string, log *zap.SugaredLogger, onChange func([]string) error) (*SampleWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	tracked := make(map[string]bool, len(samples))
	for _, s := range samples {
		abs, err := filepath.Abs(s)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		tracked[abs] = true
	}

	sw := &SampleWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(DefaultDebounce),
		samples:   tracked,
		onChange:  onChange,
		log:       log,
		stopChan:  make(chan struct{}),
	}

	sw.debouncer.SetCallback(func(files []string) {
		if err := sw.onChange(files); err != nil {
			sw.log.Errorw("regeneration failed", "error", err)
		}
	})

	return sw, nil
}

// Start begins watching. Directories are watched rather than files because
// editors replace files on save, which drops file-level watches.
func (sw *SampleWatcher) Start() error {
	dirs := make(map[string]bool)
	for path := range sw.samples {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := sw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		sw.log.Debugw("watching directory", "dir", dir)
	}

	sw.wg.Add(1)
	go sw.watch()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (sw *SampleWatcher) Stop() error {
	select {
	case <-sw.stopChan:
		return nil
	default:
		close(sw.stopChan)
	}
	sw.wg.Wait()
	sw.debouncer.Stop()
	return sw.watcher.Close()
}

func (sw *SampleWatcher) watch() {
	defer sw.wg.Done()

	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if sw.shouldIgnore(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if sw.samples[abs] {
				sw.log.Debugw("sample changed", "file", event.Name)
				sw.debouncer.Add(abs)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.log.Errorw("watch error", "error", err)

		case <-sw.stopChan:
			return
		}
	}
}

// shouldIgnore filters editor temp files and hidden files.
func (sw *SampleWatcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, suffix := range []string{".swp", ".swo", "~"} {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}
