//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package hotkeys

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type tty struct {
	file  *os.File
	saved *unix.Termios
}

// openTTY switches /dev/tty to unbuffered input without echo.
// Output processing is left alone so the display keeps working.
func openTTY() (io.ReadCloser, error) {
	file, err := os.Open("/dev/tty")
	if err != nil {
		return nil, err
	}
	fd := int(file.Fd())
	if !term.IsTerminal(fd) {
		file.Close()
		return nil, ErrNotTerminal
	}

	saved, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("get termios: %w", err)
	}
	state := *saved
	// Ctrl+C arrives as a key
	state.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	state.Iflag &^= unix.ICRNL | unix.IXON
	state.Cc[unix.VMIN] = 1
	state.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &state); err != nil {
		file.Close()
		return nil, fmt.Errorf("set termios: %w", err)
	}

	return &tty{
		file:  file,
		saved: saved,
	}, nil
}

func (t *tty) Read(p []byte) (int, error) {
	return t.file.Read(p)
}

func (t *tty) Close() error {
	return errors.Join(
		unix.IoctlSetTermios(int(t.file.Fd()), ioctlSetTermios, t.saved),
		t.file.Close(),
	)
}
