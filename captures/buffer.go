package captures

import (
	"bytes"
	"io"
	"sync"

	"go.starlark.net/starlark"
)

// Flusher receives the captured output once
type Flusher interface {
	FlushOutput(r io.Reader) error
}

// Buffer collects everything the target prints. It is drained exactly once.
type Buffer struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	flushed bool
}

var _ io.Writer = new(Buffer)

func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.flushed {
		return 0, ErrFlushed
	}
	return b.buf.Write(p)
}

// Print has the signature of starlark.Thread.Print
func (b *Buffer) Print(_ *starlark.Thread, msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.flushed {
		return
	}
	b.buf.WriteString(msg)
	b.buf.WriteByte('\n')
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}

// Flush hands the whole content to f and discards it. Later calls do nothing.
func (b *Buffer) Flush(f Flusher) error {
	b.mu.Lock()
	if b.flushed {
		b.mu.Unlock()
		return nil
	}
	b.flushed = true
	content := bytes.Clone(b.buf.Bytes())
	b.buf = bytes.Buffer{}
	b.mu.Unlock()
	return f.FlushOutput(bytes.NewReader(content))
}
