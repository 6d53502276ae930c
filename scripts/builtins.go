package scripts

import (
	"context"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/reusee/starlarkutil"
	"github.com/reusee/stepper/playbacks"
	starlarkjson "go.starlark.net/lib/json"
	starlarkmath "go.starlark.net/lib/math"
	starlarktime "go.starlark.net/lib/time"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

const contextKey = "context"

func threadContext(thread *starlark.Thread) context.Context {
	if ctx, ok := thread.Local(contextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

func exitBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	code := 0
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "code?", &code); err != nil {
		return nil, err
	}
	return nil, &ExitError{
		Code: code,
	}
}

func sleepBuiltin(sleeper playbacks.Sleeper) *starlark.Builtin {
	return starlark.NewBuiltin("sleep", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var seconds starlark.Value
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &seconds); err != nil {
			return nil, err
		}
		f, ok := starlark.AsFloat(seconds)
		if !ok || f < 0 {
			return nil, errBadDuration
		}
		d := time.Duration(f * float64(time.Second))
		if err := sleeper(threadContext(thread), d); err != nil {
			return nil, err
		}
		return starlark.None, nil
	})
}

// randomModule shares one generator per run so seed() makes a run repeatable
func randomModule(seed uint64) *starlarkstruct.Module {
	rnd := rand.New(rand.NewPCG(seed, seed))
	return &starlarkstruct.Module{
		Name: "random",
		Members: starlark.StringDict{
			"seed": starlarkutil.MakeFunc("seed", func(n int64) {
				rnd = rand.New(rand.NewPCG(uint64(n), uint64(n)))
			}),
			"random": starlarkutil.MakeFunc("random", func() float64 {
				return rnd.Float64()
			}),
			"randint": starlark.NewBuiltin("randint", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var lo, hi int64
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &lo, &hi); err != nil {
					return nil, err
				}
				if hi < lo {
					return nil, errEmptyRange
				}
				return starlark.MakeInt64(lo + rnd.Int64N(hi-lo+1)), nil
			}),
			"choice": starlark.NewBuiltin("choice", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
				var seq starlark.Indexable
				if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &seq); err != nil {
					return nil, err
				}
				if seq.Len() == 0 {
					return nil, errEmptySequence
				}
				return seq.Index(rnd.IntN(seq.Len())), nil
			}),
		},
	}
}

func environ() starlark.Value {
	env := make(map[string]any)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	value := toStarlarkValue(env)
	value.Freeze()
	return value
}

// commonBuiltins are shared by every module of a run
func commonBuiltins(argv []string, sleeper playbacks.Sleeper, seed uint64) starlark.StringDict {
	argvValue := toStarlarkValue(argv)
	argvValue.Freeze()
	return starlark.StringDict{
		"exit":    starlark.NewBuiltin("exit", exitBuiltin),
		"sleep":   sleepBuiltin(sleeper),
		"struct":  starlark.NewBuiltin("struct", starlarkstruct.Make),
		"math":    starlarkmath.Module,
		"time":    starlarktime.Module,
		"json":    starlarkjson.Module,
		"random":  randomModule(seed),
		"argv":    argvValue,
		"environ": environ(),
	}
}
