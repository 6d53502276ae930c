package scripts

import (
	"strings"
	"sync"

	"github.com/reusee/stepper/tracers"
	"go.starlark.net/resolve"
	"go.starlark.net/syntax"
)

type sourceFile struct {
	lines []string
	own   bool
	// global names in declaration order
	globals []string
}

// Sources records every file compiled during a run
type Sources struct {
	mu    sync.RWMutex
	files map[string]*sourceFile
}

var _ tracers.Sources = new(Sources)

func NewSources() *Sources {
	return &Sources{
		files: make(map[string]*sourceFile),
	}
}

func splitLines(src []byte) []string {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}

// add must be called after f is resolved
func (s *Sources) add(path string, src []byte, f *syntax.File, own bool) {
	file := &sourceFile{
		lines: splitLines(src),
		own:   own,
	}

	if module, ok := f.Module.(*resolve.Module); ok {
		for _, b := range module.Globals {
			file.globals = append(file.globals, bindingName(b))
		}
	}

	s.mu.Lock()
	s.files[path] = file
	s.mu.Unlock()
}

func bindingName(b *resolve.Binding) string {
	if b == nil || b.First == nil {
		return ""
	}
	return b.First.Name
}

func (s *Sources) get(path string) (*sourceFile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	file, ok := s.files[path]
	return file, ok
}

func (s *Sources) Lines(path string) ([]string, bool) {
	file, ok := s.get(path)
	if !ok {
		return nil, false
	}
	return file.lines, true
}

func (s *Sources) Own(path string) bool {
	file, ok := s.get(path)
	return ok && file.own
}

func (s *Sources) globalNames(path string) []string {
	file, ok := s.get(path)
	if !ok {
		return nil
	}
	return file.globals
}
