package hotkeys

import (
	"context"
	"io"

	"github.com/reusee/stepper/logs"
	"github.com/reusee/stepper/modes"
	"github.com/reusee/stepper/playbacks"
	"github.com/reusee/stepper/stepconfigs"
)

// OpenTTY opens the controlling terminal in single-key mode; Close restores it
type OpenTTY func() (io.ReadCloser, error)

func (Module) OpenTTY(
	mode modes.Mode,
) OpenTTY {
	if mode == modes.ModeTest {
		return func() (io.ReadCloser, error) {
			return nil, ErrNotTerminal
		}
	}
	return openTTY
}

// Listen runs the key listener until ctx is done.
// A terminal that cannot be opened disables hotkeys without failing the run.
type Listen func(ctx context.Context, abort func()) error

func (Module) Listen(
	enabled stepconfigs.HotkeysEnabled,
	keys stepconfigs.KeyBindings,
	controller *playbacks.Controller,
	open OpenTTY,
	logger logs.Logger,
) Listen {
	return func(ctx context.Context, abort func()) error {
		if !enabled {
			return nil
		}

		tty, err := open()
		if err != nil {
			logger.WarnContext(ctx, "hotkeys disabled", "error", err)
			return nil
		}
		defer func() {
			if e := tty.Close(); e != nil {
				logger.WarnContext(ctx, "restore terminal", "error", e)
			}
		}()

		listener := &Listener{
			Input:     tty,
			Keys:      keys,
			Commander: controller,
			Abort:     abort,
			Logger:    logger,
		}
		if err := listener.Serve(ctx); err != nil {
			logger.WarnContext(ctx, "hotkeys stopped", "error", err)
		}
		return nil
	}
}
