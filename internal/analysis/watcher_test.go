package analysis

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gbshahaq/sf-field-analysis/internal/corpus"
)

// Test Plan for Watcher:
// - Construction fails for a missing root directory
// - Default debounce window is 500ms
// - Writing a corpus artifact triggers the change callback with its path
// - Field definition documents trigger even without a corpus pattern
// - Irrelevant files never trigger
// - shouldProcessEvent filters by operation and path
// - Stop is safe to call repeatedly

func newWatchLoader(t *testing.T, root string) *corpus.Loader {
	t.Helper()
	loader, err := corpus.NewLoader(root, map[string][]string{
		corpus.CategoryApex:  {"**/classes/*.cls"},
		corpus.CategoryFlows: {"**/flows/*.flow-meta.xml"},
	})
	require.NoError(t, err)
	return loader
}

func TestNewWatcher_MissingRoot(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "absent")
	w, err := NewWatcher(root, newWatchLoader(t, root), nil)
	require.Error(t, err)
	assert.Nil(t, w)
}

func TestNewWatcher_Defaults(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w, err := NewWatcher(root, newWatchLoader(t, root), nil)
	require.NoError(t, err)
	// Not started, so close the inner watcher directly instead of Stop.
	defer w.watcher.Close()

	assert.Equal(t, 500*time.Millisecond, w.debounceTime)
}

func TestWatcher_TriggersOnCorpusChange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "classes"), 0755))

	changedCh := make(chan []string, 1)
	w, err := NewWatcher(root, newWatchLoader(t, root), func(_ context.Context, changed []string) {
		changedCh <- changed
	})
	require.NoError(t, err)
	defer w.Stop()

	w.debounceTime = 100 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "classes", "New.cls"), []byte("class body"), 0644))

	select {
	case changed := <-changedCh:
		assert.Contains(t, changed, "classes/New.cls")
	case <-time.After(3 * time.Second):
		t.Fatal("expected change callback")
	}
}

func TestWatcher_TriggersOnFieldDocument(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fieldsDir := filepath.Join(root, "objects", "Account", "fields")
	require.NoError(t, os.MkdirAll(fieldsDir, 0755))

	changedCh := make(chan []string, 1)
	w, err := NewWatcher(root, newWatchLoader(t, root), func(_ context.Context, changed []string) {
		changedCh <- changed
	})
	require.NoError(t, err)
	defer w.Stop()

	w.debounceTime = 100 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(fieldsDir, "New__c.field-meta.xml"), []byte("<CustomField/>"), 0644))

	select {
	case changed := <-changedCh:
		assert.Contains(t, changed, "objects/Account/fields/New__c.field-meta.xml")
	case <-time.After(3 * time.Second):
		t.Fatal("expected change callback")
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	changedCh := make(chan []string, 1)
	w, err := NewWatcher(root, newWatchLoader(t, root), func(_ context.Context, changed []string) {
		changedCh <- changed
	})
	require.NoError(t, err)
	defer w.Stop()

	w.debounceTime = 100 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("scratch"), 0644))

	select {
	case changed := <-changedCh:
		t.Fatalf("unexpected callback for %v", changed)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_ShouldProcessEvent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w, err := NewWatcher(root, newWatchLoader(t, root), nil)
	require.NoError(t, err)
	defer w.watcher.Close()

	write := func(rel string) fsnotify.Event {
		return fsnotify.Event{Name: filepath.Join(root, filepath.FromSlash(rel)), Op: fsnotify.Write}
	}

	assert.True(t, w.shouldProcessEvent(write("classes/A.cls")))
	assert.True(t, w.shouldProcessEvent(write("flows/F.flow-meta.xml")))
	assert.True(t, w.shouldProcessEvent(write("objects/Account/fields/F__c.field-meta.xml")))
	assert.False(t, w.shouldProcessEvent(write("README.md")))

	chmod := fsnotify.Event{Name: filepath.Join(root, "classes", "A.cls"), Op: fsnotify.Chmod}
	assert.False(t, w.shouldProcessEvent(chmod))
}

func TestWatcher_StopTwice(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	w, err := NewWatcher(root, newWatchLoader(t, root), func(context.Context, []string) {})
	require.NoError(t, err)

	w.Start(context.Background())
	w.Stop()
	w.Stop()
}
