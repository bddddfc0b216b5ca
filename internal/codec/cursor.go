package codec

import (
	"encoding/binary"
	"fmt"

	"marketwire/pkg/exception"
)

// Cursor is a bounds-checked view over one raw wire record. Every field
// read goes through it; nothing else computes offsets into the buffer.
type Cursor struct {
	buf []byte
}

// NewCursor wraps a raw buffer. The cursor never mutates or reslices it.
func NewCursor(buf []byte) Cursor {
	return Cursor{buf: buf}
}

// Len returns the buffer length in bytes.
func (c Cursor) Len() int {
	return len(c.buf)
}

// ReadAt returns the width bytes at offset, or ErrTruncatedBuffer when the
// region runs past the end of the buffer.
func (c Cursor) ReadAt(offset, width int) ([]byte, error) {
	if offset < 0 || width < 0 || offset+width > len(c.buf) {
		return nil, fmt.Errorf("read %d bytes at offset %d in %d-byte buffer: %w",
			width, offset, len(c.buf), exception.ErrTruncatedBuffer)
	}
	return c.buf[offset : offset+width], nil
}

// Byte returns the single byte at offset.
func (c Cursor) Byte(offset int) (byte, error) {
	b, err := c.ReadAt(offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint reads a little-endian unsigned integer of width 1, 2, 4 or 8.
func (c Cursor) Uint(offset, width int) (uint64, error) {
	b, err := c.ReadAt(offset, width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(b)), nil
	case 8:
		return binary.LittleEndian.Uint64(b), nil
	default:
		return 0, fmt.Errorf("unsupported integer width %d: %w", width, exception.ErrInternal)
	}
}

// Int reads a little-endian signed integer of width 1, 2, 4 or 8,
// sign-extended to 64 bits.
func (c Cursor) Int(offset, width int) (int64, error) {
	u, err := c.Uint(offset, width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return int64(int8(u)), nil
	case 2:
		return int64(int16(u)), nil
	case 4:
		return int64(int32(u)), nil
	default:
		return int64(u), nil
	}
}

// FixedASCII reads exactly width bytes at offset and returns the text up to
// the first NUL within them. Without a NUL the full width is the text. This
// never reads fewer bytes than the field width declares.
func (c Cursor) FixedASCII(offset, width int) (string, error) {
	b, err := c.ReadAt(offset, width)
	if err != nil {
		return "", err
	}
	for i, v := range b {
		if v == 0 {
			return string(b[:i]), nil
		}
	}
	return string(b), nil
}
