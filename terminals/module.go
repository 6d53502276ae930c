package terminals

import (
	"io"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/stepper/modes"
	"github.com/reusee/stepper/playbacks"
	"github.com/reusee/stepper/tracers"
)

type Module struct {
	dscope.Module
}

// Output is where trace frames are drawn
type Output io.Writer

func (Module) Output() Output {
	return os.Stdout
}

func (Module) Terminal(
	out Output,
	mode modes.Mode,
) *Terminal {
	size := FdSize(int(os.Stdout.Fd()))
	if mode == modes.ModeTest {
		size = FixedSize(DefaultRows, DefaultCols)
	}
	return New(out, size)
}

func (Module) Display(
	terminal *Terminal,
) tracers.Display {
	return terminal
}

func (Module) Notice(
	display tracers.Display,
) playbacks.Notice {
	return display.StatusLine
}
