package hotkeys

import (
	"context"
	"errors"
	"io"

	"github.com/reusee/stepper/logs"
	"github.com/reusee/stepper/stepconfigs"
)

const keyInterrupt = 0x03

// Commander runs playback commands by name
type Commander interface {
	Do(command string) error
}

// Listener maps key presses to playback commands
type Listener struct {
	Input     io.Reader
	Keys      stepconfigs.KeyBindings
	Commander Commander
	// Abort is called on Ctrl+C
	Abort  func()
	Logger logs.Logger
}

func (l *Listener) handle(ctx context.Context, key byte) {
	if key == keyInterrupt {
		l.Logger.InfoContext(ctx, "interrupted by key")
		if l.Abort != nil {
			l.Abort()
		}
		return
	}
	command, ok := l.Keys[string(rune(key))]
	if !ok {
		return
	}
	if err := l.Commander.Do(command); err != nil {
		l.Logger.WarnContext(ctx, "hotkey command",
			"command", command,
			"error", err,
		)
	}
}

// Serve reads keys until ctx is done or input ends
func (l *Listener) Serve(ctx context.Context) error {
	keys := make(chan byte)
	errs := make(chan error, 1)
	go func() {
		buf := make([]byte, 16)
		for {
			n, err := l.Input.Read(buf)
			for _, key := range buf[:n] {
				select {
				case keys <- key:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				errs <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case key := <-keys:
			l.handle(ctx, key)
		case err := <-errs:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
