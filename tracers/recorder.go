package tracers

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Recorder is a Display that keeps a textual log of every call
type Recorder struct {
	Rows, Cols int

	mu      sync.Mutex
	entries []string
	windows []Window
	panels  []Panel
	output  []string
}

var _ Display = new(Recorder)

func (r *Recorder) add(format string, args ...any) {
	r.entries = append(r.entries, fmt.Sprintf(format, args...))
}

func (r *Recorder) ModuleBanner(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add("banner %s", path)
	return nil
}

func (r *Recorder) SourceWindow(window Window) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add("line %s:%d", window.Path, window.Current)
	r.windows = append(r.windows, window)
	return nil
}

func (r *Recorder) VariablePanel(panel Panel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add("panel")
	r.panels = append(r.panels, panel)
	return nil
}

func (r *Recorder) StatusLine(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add("status %s", text)
	return nil
}

func (r *Recorder) FlushOutput(reader io.Reader) error {
	content, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.add("output")
	r.output = append(r.output, string(content))
	return nil
}

func (r *Recorder) Size() (rows, cols int) {
	if r.Rows == 0 || r.Cols == 0 {
		return 24, 80
	}
	return r.Rows, r.Cols
}

func (r *Recorder) Entries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.entries...)
}

// Lines returns the current line of every rendered source window
func (r *Recorder) Lines() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret := make([]int, 0, len(r.windows))
	for _, w := range r.windows {
		ret = append(ret, w.Current)
	}
	return ret
}

func (r *Recorder) Windows() []Window {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Window(nil), r.windows...)
}

func (r *Recorder) Panels() []Panel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Panel(nil), r.panels...)
}

func (r *Recorder) Output() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.output...)
}

// Count returns the number of entries starting with prefix
func (r *Recorder) Count(prefix string) (n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, entry := range r.entries {
		if strings.HasPrefix(entry, prefix) {
			n++
		}
	}
	return
}
