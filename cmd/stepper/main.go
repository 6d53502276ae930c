package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/reusee/dscope"
	"github.com/reusee/stepper/cmds"
	"github.com/reusee/stepper/configs"
	"github.com/reusee/stepper/hotkeys"
	"github.com/reusee/stepper/logs"
	"github.com/reusee/stepper/modes"
	"github.com/reusee/stepper/scripts"
	"github.com/reusee/stepper/terminals"
	"github.com/reusee/stepper/watches"
	"go.starlark.net/starlark"
	"golang.org/x/sync/errgroup"
)

func main() {
	args := cmds.Execute(os.Args[1:])
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: stepper [options] <target.star> [args...]")
		cmds.GlobalExecutor.PrintUsage()
		os.Exit(scripts.ExitSetup)
	}
	target := scripts.Target{
		Path: args[0],
		Args: args[1:],
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	scope := dscope.New(
		new(Module),
		modes.FromEnv(),
	)

	// providers read config values eagerly, validate first
	var code int
	scope.Call(func(
		loader configs.Loader,
	) {
		if err := loader.Check(); err != nil {
			report(os.Stderr, fmt.Errorf("config: %w", err))
			code = scripts.ExitSetup
		}
	})
	if code != scripts.ExitOK {
		stop()
		os.Exit(code)
	}

	scope.Call(func(
		run scripts.Run,
		listen hotkeys.Listen,
		watch watches.Watch,
		terminal *terminals.Terminal,
		logger logs.Logger,
		mode modes.Mode,
	) {
		if mode == modes.ModeDevelopment {
			logs.SetLevel(slog.LevelDebug)
		}
		logger.InfoContext(ctx, "start",
			"mode", mode.String(),
			"target", target.Path,
		)

		err := execute(ctx, target, run, listen, watch, logger)
		if e := terminal.Close(); e != nil {
			logger.WarnContext(ctx, "close terminal", "error", e)
		}
		if span, ok := logs.ErrorSpan(err); ok {
			logger.ErrorContext(ctx, "run failed",
				"span", span,
				"error", err,
			)
		}
		report(os.Stderr, err)
		code = scripts.ExitCode(err)
		logger.InfoContext(ctx, "exit", "code", code)
	})

	stop()
	os.Exit(code)
}

// execute runs the target with the key listener and config watcher alongside
func execute(
	ctx context.Context,
	target scripts.Target,
	run scripts.Run,
	listen hotkeys.Listen,
	watch watches.Watch,
	logger logs.Logger,
) error {
	ctx, abort := context.WithCancel(ctx)
	defer abort()

	listenCtx, stopListeners := context.WithCancel(ctx)
	listeners, listenCtx := errgroup.WithContext(listenCtx)
	listeners.Go(func() error {
		return listen(listenCtx, abort)
	})
	listeners.Go(func() error {
		return watch(listenCtx)
	})

	err := run(ctx, target)

	stopListeners()
	if e := listeners.Wait(); e != nil {
		logger.WarnContext(ctx, "listener", "error", e)
	}
	return err
}

func report(w io.Writer, err error) {
	if err == nil {
		return
	}
	diag := color.New(color.FgRed, color.Bold)

	var setup *scripts.SetupError
	var evalErr *starlark.EvalError
	switch {
	case errors.As(err, &setup):
		diag.Fprintln(w, setup.Error())
	case errors.Is(err, scripts.ErrAborted):
		diag.Fprintln(w, "aborted")
	case errors.As(err, &evalErr):
		diag.Fprintln(w, evalErr.Backtrace())
	default:
		diag.Fprintln(w, err.Error())
	}
}
