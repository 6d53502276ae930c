package scripts

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/reusee/stepper/tracers"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

//go:embed stdlib/*.star
var stdlibFS embed.FS

//go:embed prelude/prelude.star
var preludeSource []byte

const preludePath = "@stepper/prelude.star"

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

var ErrLoadCycle = errors.New("cycle in load graph")

type loadEntry struct {
	globals starlark.StringDict
	err     error
	done    bool
}

// loader compiles and runs modules on the target thread
type loader struct {
	root        string
	sources     *Sources
	predeclared func(path string) starlark.StringDict
	cache       map[string]*loadEntry
}

// compile parses, instruments and resolves a file
func (l *loader) compile(path string, src []byte, predeclared starlark.StringDict, own bool) (*starlark.Program, error) {
	f, err := fileOptions.Parse(path, src, 0)
	if err != nil {
		return nil, err
	}
	instrument(f)
	prog, err := starlark.FileProgram(f, predeclared.Has)
	if err != nil {
		return nil, err
	}
	l.sources.add(path, src, f, own)
	return prog, nil
}

// resolvePath maps a load() argument to a file identity
func (l *loader) resolvePath(from string, module string) (string, error) {
	if rest, ok := strings.CutPrefix(module, tracers.StdlibRoot+"//"); ok {
		return tracers.StdlibRoot + "/" + path.Clean(rest), nil
	}

	if strings.HasPrefix(from, tracers.StdlibRoot+"/") {
		return path.Join(path.Dir(from), module), nil
	}

	if filepath.IsAbs(module) {
		return filepath.Clean(module), nil
	}

	candidates := []string{
		filepath.Join(filepath.Dir(from), module),
		filepath.Join(l.root, module),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return candidates[0], nil
}

func readSource(path string) ([]byte, error) {
	if rest, ok := strings.CutPrefix(path, tracers.StdlibRoot+"/"); ok {
		return fs.ReadFile(stdlibFS, "stdlib/"+rest)
	}
	return os.ReadFile(path)
}

func (l *loader) load(thread *starlark.Thread, module string) (starlark.StringDict, error) {
	from := thread.CallFrame(0).Pos.Filename()
	path, err := l.resolvePath(from, module)
	if err != nil {
		return nil, err
	}

	if entry, ok := l.cache[path]; ok {
		if !entry.done {
			return nil, fmt.Errorf("%w: %s", ErrLoadCycle, module)
		}
		return entry.globals, entry.err
	}
	entry := new(loadEntry)
	l.cache[path] = entry

	entry.globals, entry.err = l.exec(thread, path)
	entry.done = true
	return entry.globals, entry.err
}

func (l *loader) exec(thread *starlark.Thread, path string) (starlark.StringDict, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, err
	}
	predeclared := l.predeclared(path)
	prog, err := l.compile(path, src, predeclared, false)
	if err != nil {
		return nil, err
	}
	globals, err := prog.Init(thread, predeclared)
	globals.Freeze()
	return globals, err
}
