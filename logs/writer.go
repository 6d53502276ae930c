package logs

import (
	"io"
	"os"
	"sync"

	"github.com/reusee/stepper/cmds"
	"golang.org/x/term"
)

type Writer io.Writer

var logFile string

func init() {
	cmds.Define("-log-file", cmds.Func(func(path string) {
		logFile = path
	}).Args("path").Desc("append logs to file"))
}

var openLogFile = sync.OnceValues(func() (*os.File, error) {
	return os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
})

// Writer never targets the terminal the tracer draws on
func (Module) Writer() Writer {
	if logFile != "" {
		f, err := openLogFile()
		if err == nil {
			return f
		}
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return os.Stderr
	}
	return io.Discard
}
