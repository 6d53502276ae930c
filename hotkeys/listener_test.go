package hotkeys

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/stepper/configs"
	"github.com/reusee/stepper/logs"
	"github.com/reusee/stepper/modes"
	"github.com/reusee/stepper/playbacks"
	"github.com/reusee/stepper/stepconfigs"
)

type commands []string

func (c *commands) Do(command string) error {
	*c = append(*c, command)
	return nil
}

func testKeys() stepconfigs.KeyBindings {
	return stepconfigs.KeyBindings{
		" ": stepconfigs.CommandTogglePause,
		"+": stepconfigs.CommandIncreaseTick,
		"-": stepconfigs.CommandDecreaseTick,
	}
}

func TestListener(t *testing.T) {
	var got commands
	aborted := 0
	listener := &Listener{
		Input:     strings.NewReader(" x+-\x03 "),
		Keys:      testKeys(),
		Commander: &got,
		Abort: func() {
			aborted++
		},
		Logger: slog.New(slog.DiscardHandler),
	}
	if err := listener.Serve(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := []string{
		stepconfigs.CommandTogglePause,
		stepconfigs.CommandIncreaseTick,
		stepconfigs.CommandDecreaseTick,
		stepconfigs.CommandTogglePause,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v", got)
		}
	}
	if aborted != 1 {
		t.Fatalf("got %v", aborted)
	}
}

func TestListenerCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	var got commands
	listener := &Listener{
		Input:     r,
		Keys:      testKeys(),
		Commander: &got,
		Logger:    slog.New(slog.DiscardHandler),
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- listener.Serve(ctx)
	}()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(time.Second * 5):
		t.Fatal("not stopped")
	}
}

func TestListenerReadError(t *testing.T) {
	r, w := io.Pipe()
	readErr := errors.New("foo")
	w.CloseWithError(readErr)
	var got commands
	listener := &Listener{
		Input:     r,
		Keys:      testKeys(),
		Commander: &got,
		Logger:    slog.New(slog.DiscardHandler),
	}
	if err := listener.Serve(context.Background()); !errors.Is(err, readErr) {
		t.Fatalf("got %v", err)
	}
}

type fakeTTY struct {
	io.Reader
	closed bool
}

func (f *fakeTTY) Close() error {
	f.closed = true
	return nil
}

func testScope(t *testing.T, open OpenTTY) dscope.Scope {
	return dscope.New(
		new(Module),
		new(playbacks.Module),
		new(stepconfigs.Module),
		new(logs.Module),
		modes.ForTest(t),
		func() playbacks.Notice {
			return func(string) error {
				return nil
			}
		},
	).Fork(
		func() configs.Loader {
			return configs.NewLoader(nil, stepconfigs.Schema)
		},
		func() OpenTTY {
			return open
		},
	)
}

func TestListen(t *testing.T) {
	tty := &fakeTTY{
		Reader: strings.NewReader(" +"),
	}
	testScope(t, func() (io.ReadCloser, error) {
		return tty, nil
	}).Call(func(
		listen Listen,
		controller *playbacks.Controller,
	) {
		if err := listen(context.Background(), nil); err != nil {
			t.Fatal(err)
		}
		state := controller.Snapshot()
		if !state.Paused {
			t.Fatal("should pause")
		}
		if state.Tick != stepconfigs.DefaultTick+stepconfigs.DefaultTickStep {
			t.Fatalf("got %v", state.Tick)
		}
	})
	if !tty.closed {
		t.Fatal("should restore terminal")
	}
}

func TestListenWithoutTerminal(t *testing.T) {
	testScope(t, func() (io.ReadCloser, error) {
		return nil, ErrNotTerminal
	}).Call(func(
		listen Listen,
		controller *playbacks.Controller,
	) {
		if err := listen(context.Background(), nil); err != nil {
			t.Fatal(err)
		}
		if controller.Snapshot().Paused {
			t.Fatal()
		}
	})
}
