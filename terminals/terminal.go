package terminals

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/reusee/stepper/tracers"
)

const (
	clearScreen = "\x1b[H\x1b[2J"
	clearLine   = "\x1b[K"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// Terminal draws trace output with ANSI sequences. Each call renders atomically.
type Terminal struct {
	mu       sync.Mutex
	out      io.Writer
	size     func() (rows, cols int)
	renderer *lipgloss.Renderer
	styles   styles
	hidden   bool
}

var _ tracers.Display = new(Terminal)

type styles struct {
	frame   lipgloss.Style
	header  lipgloss.Style
	current lipgloss.Style
}

func New(out io.Writer, size func() (rows, cols int)) *Terminal {
	renderer := lipgloss.NewRenderer(out)
	green := lipgloss.Color("#90ee90")
	return &Terminal{
		out:      out,
		size:     size,
		renderer: renderer,
		styles: styles{
			frame:  renderer.NewStyle().Foreground(green),
			header: renderer.NewStyle().Foreground(green).Bold(true),
			current: renderer.NewStyle().
				Background(lipgloss.Color("#ffa500")).
				Foreground(lipgloss.Color("#000000")),
		},
	}
}

func (t *Terminal) Size() (rows, cols int) {
	rows, cols = t.size()
	return max(rows, 3), max(cols, 20)
}

func (t *Terminal) write(s string) error {
	if !t.hidden {
		s = hideCursor + s
		t.hidden = true
	}
	_, err := io.WriteString(t.out, s)
	return err
}

// Close shows the cursor again
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.hidden {
		return nil
	}
	t.hidden = false
	_, err := io.WriteString(t.out, showCursor)
	return err
}

func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

func (t *Terminal) ModuleBanner(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, cols := t.Size()
	message := runewidth.Truncate("Getting inside "+path, cols, "")
	return t.write(clearScreen +
		moveTo(rows/2+1, 1) +
		t.renderer.PlaceHorizontal(cols, lipgloss.Center, message),
	)
}

// header centers path between runs of '>' and '<'
func header(path string, cols int) string {
	path = runewidth.Truncate(path, cols-2, "")
	width := runewidth.StringWidth(path)
	left := max((cols-width)/2-1, 0)
	right := max(cols-left-width-2, 0)
	return strings.Repeat(">", left) + " " + path + " " + strings.Repeat("<", right)
}

func gutter(line int) string {
	if line <= 0 {
		return fmt.Sprintf(">%5s >>", "")
	}
	return fmt.Sprintf(">%5d >>", line)
}

// panelColumn is the first column of the variable panel, 1-based
func panelColumn(cols int) int {
	return cols*65/100 + 1
}

func (t *Terminal) SourceWindow(window tracers.Window) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, cols := t.Size()

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(t.styles.header.Render(header(window.Path, cols)))
	b.WriteString("\n")

	codeWidth := max(panelColumn(cols)-1-len(gutter(0))-1, 1)
	for i, line := range window.Lines {
		num := window.First + i
		line = strings.TrimRight(strings.ReplaceAll(line, "\t", "    "), "\r\n")
		line = runewidth.Truncate(line, codeWidth, "")
		b.WriteString(t.styles.frame.Render(gutter(num)))
		b.WriteString(" ")
		if num == window.Current {
			b.WriteString(t.styles.current.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	for range window.Height - len(window.Lines) {
		b.WriteString(t.styles.frame.Render(gutter(0)))
		b.WriteString("\n")
	}

	return t.write(b.String())
}

func (t *Terminal) VariablePanel(panel tracers.Panel) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	rows, cols := t.Size()
	column := panelColumn(cols)
	width := cols - column + 1

	var b strings.Builder
	row := 2
	put := func(s string) {
		if row > rows {
			return
		}
		b.WriteString(moveTo(row, column))
		b.WriteString(s)
		b.WriteString(clearLine)
		row++
	}

	section := func(title string, vars []tracers.Variable) {
		put(t.styles.frame.Render(t.renderer.PlaceHorizontal(
			width, lipgloss.Center, title,
			lipgloss.WithWhitespaceChars(">"),
		)))
		for _, v := range vars {
			text := runewidth.Truncate(v.Name+": "+v.Value, max(width-3, 1), "")
			put(t.styles.frame.Render(">>") + " " + text)
		}
		put(t.styles.frame.Render(">>"))
	}
	section(" Local Variables ", panel.Locals)
	section(" Global Variables ", panel.Globals)

	put(t.styles.frame.Render(strings.Repeat(">", width)))
	for row <= rows {
		put(t.styles.frame.Render(">>"))
	}

	return t.write(b.String())
}

func (t *Terminal) StatusLine(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, cols := t.Size()
	return t.write(moveTo(1, 1) + runewidth.Truncate(text, cols, "") + clearLine)
}

func (t *Terminal) FlushOutput(r io.Reader) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, cols := t.Size()

	rule := strings.Repeat("x", cols)
	title := t.renderer.PlaceHorizontal(cols, lipgloss.Center, " Program Output ",
		lipgloss.WithWhitespaceChars("x"))
	if err := t.write(clearScreen + t.styles.frame.Render(rule+"\n"+title+"\n"+rule) + "\n"); err != nil {
		return err
	}
	if _, err := io.Copy(t.out, r); err != nil {
		return err
	}
	return nil
}
