package hotkeys

import "errors"

var (
	ErrNotTerminal = errors.New("not a terminal")
	ErrUnsupported = errors.New("raw input not supported on this platform")
)
