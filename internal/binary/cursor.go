package binary

import (
	"bytes"
	"fmt"
)

// Cursor walks an immutable byte slice with explicit bounds checks before
// every read. It never copies: returned slices alias the underlying buffer.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor creates a Cursor positioned at offset.
func NewCursor(buf []byte, offset int) *Cursor {
	return &Cursor{buf: buf, off: offset}
}

// Offset returns the current position.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	if c.off >= len(c.buf) {
		return 0
	}
	return len(c.buf) - c.off
}

// Bytes returns the next n bytes and advances.
func (c *Cursor) Bytes(n int, what string) ([]byte, error) {
	if n < 0 || n > c.Remaining() {
		return nil, fmt.Errorf("read of %d bytes at offset %d exceeds buffer size %d while reading %s: %w",
			n, c.off, len(c.buf), what, ErrOutOfBounds)
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Skip advances by n bytes.
func (c *Cursor) Skip(n int, what string) error {
	_, err := c.Bytes(n, what)
	return err
}

// Rest returns all unread bytes and moves to the end.
func (c *Cursor) Rest() []byte {
	b, _ := c.Bytes(c.Remaining(), "remainder")
	return b
}

// CString returns the bytes up to the next NUL and advances past the NUL.
// A missing terminator is an error.
func (c *Cursor) CString(what string) ([]byte, error) {
	rest := c.buf[min(c.off, len(c.buf)):]
	end := bytes.IndexByte(rest, 0)
	if end < 0 {
		return nil, fmt.Errorf("unterminated %s at offset %d: %w", what, c.off, ErrOutOfBounds)
	}
	s := rest[:end]
	c.off += end + 1
	return s, nil
}

// Next reads a numeric value of type T in the given byte order and advances.
func Next[T uint8 | uint16 | uint32 | uint64](c *Cursor, endian Endianness, what string) (T, error) {
	b, err := c.Bytes(sizeOf[T](), what)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](b, endian), nil
}
