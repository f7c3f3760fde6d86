package shader

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/fsnotify/fsnotify"
)

// Watcher watches a shader directory and records which GLSL files changed. The fsnotify
// goroutine only records file names; Drain is called from the render thread, which owns
// the GL context and rebuilds programs.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	dir      string

	mu      sync.Mutex
	pending map[string]struct{}

	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher starts watching dir for GLSL changes.
//
// Parameters:
//   - dir: the shader directory
//
// Returns:
//   - *Watcher: the running watcher
//   - error: an error if the directory cannot be watched
func NewWatcher(dir string) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(dir); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := &Watcher{
		fsnotify: fsWatch,
		dir:      dir,
		pending:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()

	common.Logger().Info("watching shaders", "dir", dir)
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 || !isShaderFile(e.Name) {
				continue
			}
			w.Mark(filepath.Base(e.Name))
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			common.Logger().Warn("shader watcher error", "err", err)
		case <-w.done:
			return
		}
	}
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Mark records name as changed.
func (w *Watcher) Mark(name string) {
	w.mu.Lock()
	w.pending[name] = struct{}{}
	w.mu.Unlock()
}

// Drain returns the file names changed since the last call and clears them. It never blocks
// on file system activity.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	out := make([]string, 0, len(w.pending))
	for name := range w.pending {
		out = append(out, name)
	}
	clear(w.pending)
	return out
}

// Close stops watching and waits for the event goroutine to exit.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsnotify.Close()
	w.wg.Wait()
	return err
}

func isShaderFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".vert", ".frag", ".glsl":
		return true
	}
	return false
}

// Affects reports whether any changed file is one of sources.
func Affects(changed []string, sources ...string) bool {
	for _, c := range changed {
		for _, s := range sources {
			if c == s {
				return true
			}
		}
	}
	return false
}
