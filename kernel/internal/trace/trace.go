// Package trace bounds a rolling log of recent scheduling decisions in a
// fixed-size ring buffer, mirroring the on-chip trace buffers embedded
// kernels keep when there is no room for a full log.
package trace

import (
	"fmt"

	"github.com/armon/circbuf"
)

// DefaultSize is the default capacity, in bytes, of a new Buffer.
const DefaultSize = 4096

// Buffer is a bounded, append-only log of scheduling-decision lines. Once
// full, the oldest bytes are silently discarded (circbuf semantics) — this
// is a debugging aid, not an audit log.
type Buffer struct {
	buf *circbuf.Buffer
}

// New allocates a Buffer with the given capacity in bytes.
func New(size int64) (*Buffer, error) {
	b, err := circbuf.NewBuffer(size)
	if err != nil {
		return nil, fmt.Errorf("trace: allocate ring buffer: %w", err)
	}
	return &Buffer{buf: b}, nil
}

// Logf appends a formatted line to the buffer.
func (b *Buffer) Logf(format string, args ...any) {
	if b == nil || b.buf == nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	_, _ = b.buf.Write([]byte(line + "\n"))
}

// String returns the buffer's current contents.
func (b *Buffer) String() string {
	if b == nil || b.buf == nil {
		return ""
	}
	return b.buf.String()
}
