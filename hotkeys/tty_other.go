//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package hotkeys

import "io"

func openTTY() (io.ReadCloser, error) {
	return nil, ErrUnsupported
}
