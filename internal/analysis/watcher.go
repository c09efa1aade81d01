package analysis

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gbshahaq/sf-field-analysis/internal/corpus"
	"github.com/gbshahaq/sf-field-analysis/internal/metadata"
)

// Watcher re-runs analysis when project metadata changes. Events are
// filtered through the corpus loader's patterns plus the field-document
// suffix, then debounced so one save burst triggers one run.
type Watcher struct {
	rootDir      string
	loader       *corpus.Loader
	onChange     func(ctx context.Context, changed []string)
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	stopOnce     sync.Once
}

// NewWatcher creates a watcher over rootDir. onChange receives the
// root-relative paths of the files that changed since the previous run.
func NewWatcher(rootDir string, loader *corpus.Loader, onChange func(ctx context.Context, changed []string)) (*Watcher, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("cannot watch %s: %w", rootDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot watch %s: not a directory", rootDir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		rootDir:      rootDir,
		loader:       loader,
		onChange:     onChange,
		watcher:      fsw,
		debounceTime: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}

	if err := w.addDirectoriesRecursively(rootDir); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start(ctx context.Context) {
	go w.watch(ctx)
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		<-w.doneCh
		w.watcher.Close()
	})
}

// watch is the event loop with debouncing. Rapid successive events reset
// the timer; the callback fires once per quiet period with the accumulated
// change set.
func (w *Watcher) watch(ctx context.Context) {
	defer close(w.doneCh)

	var debounceTimer *time.Timer
	runCh := make(chan struct{}, 1)
	changed := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.shouldProcessEvent(event) {
				// New directories still need to enter the watch set even
				// when the create event itself is not analysis-relevant.
				w.maybeWatchNewDirectory(event)
				continue
			}

			relPath, _ := filepath.Rel(w.rootDir, event.Name)
			changed[filepath.ToSlash(relPath)] = true

			w.maybeWatchNewDirectory(event)

			if debounceTimer != nil {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
			}
			debounceTimer = time.AfterFunc(w.debounceTime, func() {
				select {
				case runCh <- struct{}{}:
				default:
				}
			})

		case <-runCh:
			w.trigger(ctx, changed)
			changed = make(map[string]bool)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// trigger invokes the change callback with the sorted change set.
func (w *Watcher) trigger(ctx context.Context, changed map[string]bool) {
	if len(changed) == 0 {
		return
	}

	files := make([]string, 0, len(changed))
	for f := range changed {
		files = append(files, f)
	}
	sort.Strings(files)

	log.Printf("Re-running analysis after changes in %d file(s)...", len(files))
	w.onChange(ctx, files)
}

// shouldProcessEvent reports whether an event concerns analysis input:
// a corpus artifact or a field document.
func (w *Watcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	relPath, err := filepath.Rel(w.rootDir, event.Name)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	if strings.HasSuffix(relPath, metadata.FieldDocumentSuffix) {
		return true
	}
	return w.loader.Matches(relPath)
}

// maybeWatchNewDirectory adds newly created directories to the watch set.
func (w *Watcher) maybeWatchNewDirectory(event fsnotify.Event) {
	if event.Op&fsnotify.Create == 0 {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}
	if !watchableDir(filepath.Base(event.Name)) {
		return
	}
	if err := w.addDirectoriesRecursively(event.Name); err != nil {
		log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
	}
}

// watchableDir filters out trees that never hold metadata but generate
// heavy event traffic.
func watchableDir(base string) bool {
	if base == "node_modules" {
		return false
	}
	return !strings.HasPrefix(base, ".")
}

// addDirectoriesRecursively adds every watchable directory under rootPath
// to the watcher. Individual failures are logged and skipped so one
// unreadable directory does not disable watching entirely.
func (w *Watcher) addDirectoriesRecursively(rootPath string) error {
	return filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != rootPath && !watchableDir(info.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch directory %s: %v", path, err)
		}
		return nil
	})
}
