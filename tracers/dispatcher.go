package tracers

import (
	"context"
	"fmt"
	"log/slog"
)

// LineFunc is called for every executed line inside a traced call
type LineFunc func(ctx context.Context, frame *Frame) error

// Tracer receives events from the execution engine on the target's thread
type Tracer interface {
	OnCall(ctx context.Context, frame *Frame) (LineFunc, error)
	Observe(event Event)
}

// Pacer gates and paces the trace
type Pacer interface {
	WaitWhilePaused(ctx context.Context) error
	Sleep(ctx context.Context) error
}

// Sources gives access to the text of loaded files
type Sources interface {
	Lines(file string) ([]string, bool)
	// Own reports files that belong to the tracer itself
	Own(file string) bool
}

type Dispatcher struct {
	Ignore  IgnoreSpec
	Display Display
	Pacer   Pacer
	Sources Sources
	MaxVars int
	// paths are shown relative to this directory
	Dir    string
	Logger *slog.Logger

	modules ModuleTracker
	dedup   StepDedup
}

var _ Tracer = new(Dispatcher)

func (d *Dispatcher) OnCall(ctx context.Context, frame *Frame) (LineFunc, error) {
	if err := d.Pacer.WaitWhilePaused(ctx); err != nil {
		return nil, err
	}

	if _, ok := d.Sources.Lines(frame.File); !ok {
		return nil, nil
	}
	if d.Sources.Own(frame.File) {
		return nil, nil
	}
	if d.Ignore.ShouldIgnore(frame.File, frame.Module) {
		return nil, nil
	}

	path := DisplayPath(frame.File, d.Dir)
	if d.modules.Changed(path) {
		if err := d.Display.ModuleBanner(path); err != nil {
			return nil, fmt.Errorf("display module banner: %w", err)
		}
		if err := d.Pacer.Sleep(ctx); err != nil {
			return nil, err
		}
		d.modules.Announced(path)
		d.debug(ctx, "module transition", "module", frame.Module, "path", path)
	}

	return d.onLine, nil
}

func (d *Dispatcher) onLine(ctx context.Context, frame *Frame) error {
	if err := d.Pacer.WaitWhilePaused(ctx); err != nil {
		return err
	}

	if d.dedup.Seen(frame.File, frame.Line) {
		return nil
	}

	lines, ok := d.Sources.Lines(frame.File)
	if !ok || len(lines) == 0 {
		return nil
	}

	rows, cols := d.Display.Size()
	window := NewWindow(DisplayPath(frame.File, d.Dir), lines, frame.Line, rows)
	if err := d.Display.SourceWindow(window); err != nil {
		return fmt.Errorf("display source window: %w", err)
	}

	vars := frame.Vars
	if vars == nil {
		vars = NoVars
	}
	panel := Panel{
		Locals:  variables(vars.Locals(), d.MaxVars, cols),
		Globals: variables(vars.Globals(), d.MaxVars, cols),
	}
	if err := d.Display.VariablePanel(panel); err != nil {
		return fmt.Errorf("display variable panel: %w", err)
	}

	d.dedup.Mark(frame.File, frame.Line)

	return d.Pacer.Sleep(ctx)
}

func (d *Dispatcher) Observe(event Event) {
	if event.Frame == nil {
		return
	}
	switch event.Kind {
	case EventReturn:
		d.debug(context.Background(), "return",
			"function", event.Frame.Function,
			"file", event.Frame.File,
			"depth", event.Frame.Depth,
		)
	case EventException:
		d.debug(context.Background(), "exception",
			"function", event.Frame.Function,
			"file", event.Frame.File,
			"line", event.Frame.Line,
			"error", event.Err,
		)
	}
}

func (d *Dispatcher) debug(ctx context.Context, msg string, args ...any) {
	if d.Logger == nil {
		return
	}
	d.Logger.DebugContext(ctx, msg, args...)
}
