package watches

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/reusee/stepper/configs"
	"github.com/reusee/stepper/logs"
	"github.com/reusee/stepper/playbacks"
	"github.com/reusee/stepper/stepconfigs"
)

// TickSetter receives reloaded ticks
type TickSetter interface {
	Snapshot() playbacks.State
	SetTick(tick time.Duration) error
}

// Watcher reloads the tick when a config file changes
type Watcher struct {
	Paths   []string
	MinTick stepconfigs.MinTick
	Target  TickSetter
	Logger  logs.Logger
	// Ready is closed once the files are being watched
	Ready chan struct{}
}

// reload reads every config file again; invalid files are logged and skipped
func (w *Watcher) reload(ctx context.Context) {
	loader := configs.NewLoader(w.Paths, stepconfigs.Schema)
	if err := loader.Check(); err != nil {
		w.Logger.WarnContext(ctx, "reload config", "error", err)
		return
	}
	tick, ok := stepconfigs.ConfiguredTick(loader, w.MinTick)
	if !ok || tick == w.Target.Snapshot().Tick {
		return
	}
	w.Logger.InfoContext(ctx, "tick reloaded", "tick", tick)
	if err := w.Target.SetTick(tick); err != nil {
		w.Logger.WarnContext(ctx, "set tick", "error", err)
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	return slices.Contains(w.Paths, filepath.Clean(event.Name))
}

// Serve watches until ctx is done
func (w *Watcher) Serve(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// editors often replace files, so watch the directories
	var dirs []string
	for _, path := range w.Paths {
		dir := filepath.Dir(path)
		if slices.Contains(dirs, dir) {
			continue
		}
		dirs = append(dirs, dir)
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	if w.Ready != nil {
		close(w.Ready)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.Logger.DebugContext(ctx, "config changed", "event", event.String())
				w.reload(ctx)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.WarnContext(ctx, "watch config", "error", err)
		}
	}
}
