package terminals

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	DefaultRows = 24
	DefaultCols = 80
)

// FdSize queries the terminal behind fd, falling back to $LINES and $COLUMNS
func FdSize(fd int) func() (rows, cols int) {
	return func() (rows, cols int) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			return h, w
		}
		return envInt("LINES", DefaultRows), envInt("COLUMNS", DefaultCols)
	}
}

func FixedSize(rows, cols int) func() (int, int) {
	return func() (int, int) {
		return rows, cols
	}
}

func envInt(name string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(name)); err == nil && n > 0 {
		return n
	}
	return def
}
