package scripts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/reusee/stepper/captures"
	"github.com/reusee/stepper/logs"
	"github.com/reusee/stepper/playbacks"
	"github.com/reusee/stepper/tracers"
	"go.starlark.net/starlark"
)

// Target is the program to trace and the arguments it sees
type Target struct {
	Path string
	Args []string
}

type Run func(ctx context.Context, target Target) error

type runner struct {
	newDispatcher tracers.NewDispatcher
	display       tracers.Display
	sleeper       playbacks.Sleeper
	logger        logs.Logger
	newSpan       logs.NewSpan
}

func (r *runner) run(ctx context.Context, target Target) (err error) {
	ctx, _ = r.newSpan(ctx, "", "target", target.Path)
	defer func() {
		if err != nil {
			err = logs.WrapSpan(ctx, err)
		}
	}()

	path, err := filepath.Abs(target.Path)
	if err != nil {
		return &SetupError{Path: target.Path, Err: err}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return &SetupError{Path: target.Path, Err: err}
	}

	root := filepath.Dir(path)
	sources := NewSources()
	dispatcher := r.newDispatcher(sources)
	h := &hooks{
		ctx:     ctx,
		tracer:  dispatcher,
		sources: sources,
		root:    root,
	}

	common := commonBuiltins(
		append([]string{target.Path}, target.Args...),
		r.sleeper,
		uint64(time.Now().UnixNano()),
	)
	for name, value := range h.builtins() {
		common[name] = value
	}

	l := &loader{
		root:    root,
		sources: sources,
		cache:   make(map[string]*loadEntry),
	}

	// prelude
	preludeProg, err := l.compile(preludePath, preludeSource, common, true)
	if err != nil {
		return fmt.Errorf("compile prelude: %w", err)
	}

	buffer := new(captures.Buffer)
	thread := &starlark.Thread{
		Name:  "main",
		Print: buffer.Print,
		Load:  l.load,
	}
	thread.SetLocal(contextKey, ctx)
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(ErrAborted.Error())
	})
	defer stop()

	prelude, err := preludeProg.Init(thread, common)
	if err != nil {
		return fmt.Errorf("init prelude: %w", err)
	}
	prelude.Freeze()

	predeclared := func(path string, name string) starlark.StringDict {
		ret := make(starlark.StringDict, len(common)+len(prelude)+2)
		for k, v := range common {
			ret[k] = v
		}
		for k, v := range prelude {
			ret[k] = v
		}
		ret["__name__"] = starlark.String(name)
		ret["__file__"] = starlark.String(path)
		return ret
	}
	l.predeclared = func(path string) starlark.StringDict {
		return predeclared(path, tracers.ModuleName(path, root))
	}

	// entry
	entryPredeclared := predeclared(path, "__main__")
	entryProg, err := l.compile(path, src, entryPredeclared, false)
	if err != nil {
		return &SetupError{Path: target.Path, Err: err}
	}
	l.cache[path] = new(loadEntry)

	r.logger.InfoContext(ctx, "run", "path", path, "args", target.Args)
	_, err = entryProg.Init(thread, entryPredeclared)
	h.finish(err)

	// captured output is shown whatever happened
	if flushErr := buffer.Flush(r.display); flushErr != nil {
		err = errors.Join(err, fmt.Errorf("flush output: %w", flushErr))
	}

	var exit *ExitError
	switch {
	case err == nil:
		r.logger.InfoContext(ctx, "run done")
	case errors.As(err, &exit):
		r.logger.InfoContext(ctx, "target exit", "code", exit.Code)
		return nil
	case ctx.Err() != nil:
		return errors.Join(ErrAborted, ctx.Err())
	}
	return err
}
