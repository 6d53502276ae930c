package tracers

import (
	"io"
	"strings"
	"unicode"
)

// Display renders trace output on the real terminal
type Display interface {
	ModuleBanner(path string) error
	SourceWindow(window Window) error
	VariablePanel(panel Panel) error
	StatusLine(text string) error
	FlushOutput(r io.Reader) error
	Size() (rows, cols int)
}

// Window is the part of a source file shown around the current line
type Window struct {
	Path string
	// shown lines, Lines[0] is line number First
	Lines   []string
	First   int
	Current int
	// rows available for source lines, Height >= len(Lines)
	Height int
}

type Variable struct {
	Name  string
	Value string
}

type Panel struct {
	Locals  []Variable
	Globals []Variable
}

// headerRows is the number of terminal rows not available for source lines
const headerRows = 2

// NewWindow centers the window on current when the file does not fit, clamped to the file bounds
func NewWindow(path string, lines []string, current int, rows int) Window {
	height := max(rows-headerRows, 1)
	start, end := windowRange(len(lines), current, height)
	return Window{
		Path:    path,
		Lines:   lines[start:end],
		First:   start + 1,
		Current: current,
		Height:  height,
	}
}

func windowRange(total int, current int, height int) (start, end int) {
	switch {
	case current < height && height < total:
		start, end = 0, height
	case current <= total && total <= height:
		start, end = 0, total
	case current+height > total:
		start, end = total-height, total
	default:
		start, end = current-height/2, current+height/2
	}
	start = max(start, 0)
	end = min(max(end, start), total)
	return
}

// Sanitize drops control characters so a value stays on one row
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func variables(bindings []Binding, limit int, width int) []Variable {
	if len(bindings) > limit {
		bindings = bindings[:limit]
	}
	ret := make([]Variable, 0, len(bindings))
	for _, binding := range bindings {
		value := "<nil>"
		if binding.Value != nil {
			value = binding.Value.String()
		}
		// the display truncates by cell width, this only bounds the work
		if width > 0 && len(value) > width*4 {
			value = strings.ToValidUTF8(value[:width*4], "")
		}
		ret = append(ret, Variable{
			Name:  binding.Name,
			Value: Sanitize(value),
		})
	}
	return ret
}
