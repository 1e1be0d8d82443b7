// Package utils holds small helpers shared by the command line entrypoint.
package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter buffers writes until Flush is called. The preview TUI owns the
// terminal while it runs, so log lines are held back and replayed afterwards.
type DeferredWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf.Write(p)
}

// Flush writes everything buffered so far to w and resets the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.buf.Len() == 0 {
		return nil
	}
	_, err := d.buf.WriteTo(w)
	d.buf.Reset()
	return err
}
