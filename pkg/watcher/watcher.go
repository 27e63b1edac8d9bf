//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package watcher reports changes to open files made by other programs.
package watcher

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher monitors a set of files and sends the paths of changed files.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	logger    *zap.Logger
	onChange  chan string
	done      chan struct{}

	mu    sync.Mutex
	files map[string]bool // absolute paths of watched files
	dirs  map[string]int  // watched directories and the number of files in each
}

// Config holds watcher configuration options.
type Config struct {
	DebounceDur time.Duration
	Logger      *zap.Logger
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig() Config {
	return Config{DebounceDur: 100 * time.Millisecond}
}

// New creates a new file watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		fsWatcher: fsw,
		debounce:  cfg.DebounceDur,
		logger:    logger,
		onChange:  make(chan string, 16),
		done:      make(chan struct{}),
		files:     make(map[string]bool),
		dirs:      make(map[string]int),
	}, nil
}

// Start begins processing events. The returned channel receives the
// absolute path of each watched file that changed.
func (w *Watcher) Start() <-chan string {
	go w.loop()
	return w.onChange
}

// Add watches path. Editors replace files by renaming, so the
// directory holding path is watched rather than the file.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[abs] {
		return nil
	}
	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = true
	return nil
}

// Remove stops watching path.
func (w *Watcher) Remove(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.files[abs] {
		return nil
	}
	delete(w.files, abs)
	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		return w.fsWatcher.Remove(dir)
	}
	return nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var timer *time.Timer
	pending := make(map[string]bool)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			pending[filepath.Clean(event.Name)] = true

			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			timer = nil
			w.flush(pending)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watching files", zap.Error(err))

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) flush(pending map[string]bool) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
		delete(pending, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		select {
		case w.onChange <- p:
		default:
			w.logger.Debug("dropping change notification", zap.String("file", p))
		}
	}
}

// isRelevantEvent checks if the event changes the contents of a watched file.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(event.Name)]
}
