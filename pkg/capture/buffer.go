package capture

import (
	"io"
	"strings"
)

// Buffer is the mutable output buffer of one render call.
// It must not be shared between concurrent renders.
type Buffer struct {
	b strings.Builder
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// WriteString appends s to the buffer.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.b.WriteString(s)
}

// Write appends p to the buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.b.Write(p)
}

// String returns the accumulated output.
func (b *Buffer) String() string {
	return b.b.String()
}

// Len returns the number of accumulated bytes.
func (b *Buffer) Len() int {
	return b.b.Len()
}

// Reset discards the accumulated output.
func (b *Buffer) Reset() {
	b.b.Reset()
}

// WriteTo writes the accumulated output to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.b.String())
	return int64(n), err
}
