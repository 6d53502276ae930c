package scripts

import (
	"reflect"
	"slices"
	"unsafe"

	"github.com/reusee/stepper/tracers"
	"go.starlark.net/starlark"
)

// frameVars reads bindings of the frame at a fixed stack index
type frameVars struct {
	thread  *starlark.Thread
	index   int
	fn      *starlark.Function
	sources *Sources
}

var _ tracers.Vars = new(frameVars)

func (v *frameVars) debugFrame() (starlark.DebugFrame, bool) {
	depth := v.thread.CallStackDepth() - 1 - v.index
	if depth < 0 {
		return nil, false
	}
	fr := v.thread.DebugFrame(depth)
	if fr.Callable() != v.fn {
		return nil, false
	}
	return fr, true
}

func (v *frameVars) Locals() []tracers.Binding {
	fr, ok := v.debugFrame()
	if !ok {
		return nil
	}
	var ret []tracers.Binding
	for i := range fr.NumLocals() {
		binding, value := fr.Local(i)
		if binding.Name == "" {
			continue
		}
		value = unwrapCell(value)
		if value == nil {
			continue
		}
		ret = append(ret, tracers.Binding{
			Name:  binding.Name,
			Value: value,
		})
	}
	if v.fn.Name() == "<toplevel>" {
		// module code sees its globals as locals
		ret = append(ret, v.Globals()...)
	}
	return ret
}

func (v *frameVars) Globals() []tracers.Binding {
	globals := v.fn.Globals()
	names := v.sources.globalNames(v.fn.Position().Filename())
	ret := make([]tracers.Binding, 0, len(globals))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		value, ok := globals[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		ret = append(ret, tracers.Binding{
			Name:  name,
			Value: value,
		})
	}
	for _, name := range slices.Sorted(func(yield func(string) bool) {
		for name := range globals {
			if !seen[name] && !yield(name) {
				return
			}
		}
	}) {
		ret = append(ret, tracers.Binding{
			Name:  name,
			Value: globals[name],
		})
	}
	return ret
}

// unwrapCell reads the value boxed in a captured local.
// Cells are unexported by the interpreter.
func unwrapCell(value starlark.Value) starlark.Value {
	if value == nil || value.Type() != "cell" {
		return value
	}
	ptr := reflect.ValueOf(value)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return nil
	}
	elem := ptr.Elem()
	if elem.Kind() != reflect.Struct || elem.NumField() == 0 {
		return nil
	}
	field := elem.Field(0)
	inner, ok := reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem().Interface().(starlark.Value)
	if !ok {
		return nil
	}
	return inner
}
