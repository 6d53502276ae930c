package scripts

import (
	"context"

	"github.com/reusee/stepper/tracers"
	"go.starlark.net/starlark"
)

type activeCall struct {
	depth int
	frame *tracers.Frame
	line  tracers.LineFunc
}

// hooks turns hook builtin calls into tracer events.
// It only runs on the target thread.
type hooks struct {
	ctx     context.Context
	tracer  tracers.Tracer
	sources *Sources
	root    string
	stack   []activeCall
}

func (h *hooks) builtins() starlark.StringDict {
	return starlark.StringDict{
		callHookName: starlark.NewBuiltin(callHookName, h.onCall),
		lineHookName: starlark.NewBuiltin(lineHookName, h.onLine),
	}
}

// unwind drops calls at depth >= depth, they have returned
func (h *hooks) unwind(depth int) {
	for len(h.stack) > 0 {
		top := h.stack[len(h.stack)-1]
		if top.depth < depth {
			return
		}
		h.stack = h.stack[:len(h.stack)-1]
		h.tracer.Observe(tracers.Event{
			Kind:  tracers.EventReturn,
			Frame: top.frame,
		})
	}
}

func (h *hooks) parent() *tracers.Frame {
	if len(h.stack) == 0 {
		return nil
	}
	return h.stack[len(h.stack)-1].frame
}

func (h *hooks) onCall(thread *starlark.Thread, _ *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	// caller depth, the builtin frame excluded
	depth := thread.CallStackDepth() - 1
	h.unwind(depth)

	frame := h.newFrame(thread, depth)
	line, err := h.tracer.OnCall(h.ctx, frame)
	if err != nil {
		return nil, err
	}
	h.stack = append(h.stack, activeCall{
		depth: depth,
		frame: frame,
		line:  line,
	})

	return starlark.None, nil
}

func (h *hooks) onLine(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var line int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &line); err != nil {
		return nil, err
	}

	depth := thread.CallStackDepth() - 1
	h.unwind(depth + 1)
	if len(h.stack) == 0 {
		return starlark.None, nil
	}
	top := h.stack[len(h.stack)-1]
	if top.depth != depth {
		return starlark.None, nil
	}

	top.frame.Line = line
	if top.line == nil {
		return starlark.None, nil
	}
	if err := top.line(h.ctx, top.frame); err != nil {
		return nil, err
	}

	return starlark.None, nil
}

func (h *hooks) newFrame(thread *starlark.Thread, depth int) *tracers.Frame {
	frame := &tracers.Frame{
		Depth:  depth,
		Parent: h.parent(),
		Vars:   tracers.NoVars,
	}

	caller := thread.DebugFrame(1)
	frame.Line = int(caller.Position().Line)
	fn, ok := caller.Callable().(*starlark.Function)
	if !ok {
		frame.Function = caller.Callable().Name()
		return frame
	}

	frame.File = fn.Position().Filename()
	frame.Function = fn.Name()
	frame.Module = tracers.ModuleName(frame.File, h.root)
	frame.Vars = &frameVars{
		thread:  thread,
		index:   depth - 1,
		fn:      fn,
		sources: h.sources,
	}
	return frame
}

// finish reports the end of the run
func (h *hooks) finish(err error) {
	if err != nil && len(h.stack) > 0 {
		h.tracer.Observe(tracers.Event{
			Kind:  tracers.EventException,
			Frame: h.stack[len(h.stack)-1].frame,
			Err:   err,
		})
	}
	h.unwind(0)
}
