package models

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/taigrr/pyx/pkg/render"
)

// Assets is a freshly loaded palette and material table. Either may be nil
// when its path is not watched.
type Assets struct {
	Palette   render.Palette
	Materials map[string]render.Material
}

// LoadAssets loads the palette and material files. Empty paths are skipped.
func LoadAssets(palettePath, materialsPath string) (Assets, error) {
	var a Assets
	var err error
	if palettePath != "" {
		if a.Palette, err = LoadPalette(palettePath); err != nil {
			return Assets{}, err
		}
	}
	if materialsPath != "" {
		if a.Materials, err = LoadMaterials(materialsPath); err != nil {
			return Assets{}, err
		}
	}
	return a, nil
}

// Watcher reloads the palette and material files whenever they change on
// disk. Results are delivered on Updates; the render loop applies them
// between frames.
type Watcher struct {
	palettePath   string
	materialsPath string
	fs            *fsnotify.Watcher
	updates       chan Assets
}

// NewWatcher watches the directories holding the given files. Editors often
// replace files instead of writing them, so the directory is watched and
// events are filtered by name.
func NewWatcher(palettePath, materialsPath string) (*Watcher, error) {
	if palettePath == "" && materialsPath == "" {
		return nil, errors.New("watch: no asset paths")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		palettePath:   cleanPath(palettePath),
		materialsPath: cleanPath(materialsPath),
		fs:            fw,
		updates:       make(chan Assets, 1),
	}

	dirs := map[string]bool{}
	for _, p := range []string{w.palettePath, w.materialsPath} {
		if p != "" {
			dirs[filepath.Dir(p)] = true
		}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	return filepath.Clean(p)
}

// Updates returns the channel of reloaded assets. Only the latest reload is
// kept if the reader falls behind.
func (w *Watcher) Updates() <-chan Assets {
	return w.updates
}

// Run processes file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.updates)
	log := render.Logger()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if name != w.palettePath && name != w.materialsPath {
				continue
			}
			assets, err := LoadAssets(w.palettePath, w.materialsPath)
			if err != nil {
				// Half-written files are common; the next write retries.
				log.Warn("asset reload failed", "file", name, "error", err)
				continue
			}
			log.Info("assets reloaded", "file", name)
			w.publish(assets)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) publish(a Assets) {
	for {
		select {
		case w.updates <- a:
			return
		default:
		}
		select {
		case <-w.updates:
		default:
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
