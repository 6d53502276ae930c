package watches

import (
	"context"
	"path/filepath"

	"github.com/reusee/stepper/configs"
	"github.com/reusee/stepper/logs"
	"github.com/reusee/stepper/playbacks"
	"github.com/reusee/stepper/stepconfigs"
)

// Watch applies config file tick changes to the running playback until ctx is done
type Watch func(ctx context.Context) error

func (Module) Watch(
	enabled stepconfigs.WatchEnabled,
	loader configs.Loader,
	minTick stepconfigs.MinTick,
	controller *playbacks.Controller,
	logger logs.Logger,
) Watch {
	return func(ctx context.Context) error {
		if !bool(enabled) || stepconfigs.TickFromFlag() {
			return nil
		}
		var paths []string
		for _, path := range loader.Paths() {
			if abs, err := filepath.Abs(path); err == nil {
				paths = append(paths, abs)
			}
		}
		if len(paths) == 0 {
			return nil
		}
		watcher := &Watcher{
			Paths:   paths,
			MinTick: minTick,
			Target:  controller,
			Logger:  logger,
		}
		if err := watcher.Serve(ctx); err != nil {
			logger.WarnContext(ctx, "config watch disabled", "error", err)
		}
		return nil
	}
}
