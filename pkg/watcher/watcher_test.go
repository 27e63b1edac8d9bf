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

package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/timburks/jed/pkg/watcher"
)

func start(t *testing.T, paths ...string) (*watcher.Watcher, <-chan string) {
	w, err := watcher.New(watcher.Config{
		DebounceDur: 50 * time.Millisecond,
		Logger:      zaptest.NewLogger(t),
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })
	for _, p := range paths {
		require.NoError(t, w.Add(p))
	}
	return w, w.Start()
}

func TestWatcher_DefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig()
	assert.Equal(t, 100*time.Millisecond, cfg.DebounceDur)

	cfg.Logger = zaptest.NewLogger(t)
	w, err := watcher.New(cfg)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.java")
	require.NoError(t, os.WriteFile(path, []byte("class Main {}"), 0o644))

	_, onChange := start(t, path)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("class Main%d {}", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case got := <-onChange:
		assert.Equal(t, path, got)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case got := <-onChange:
		t.Fatalf("unexpected second notification for %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresUnwatchedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.java")
	other := filepath.Join(dir, "Main.java.bak")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("b"), 0o644))

	_, onChange := start(t, path)
	require.NoError(t, os.WriteFile(other, []byte("c"), 0o644))

	select {
	case got := <-onChange:
		t.Fatalf("unexpected notification for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_Remove(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "A.java")
	b := filepath.Join(dir, "B.java")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o644))

	w, onChange := start(t, a, b)
	require.NoError(t, w.Remove(a))
	require.NoError(t, os.WriteFile(a, []byte("a2"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b2"), 0o644))

	select {
	case got := <-onChange:
		assert.Equal(t, b, got)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}
}
