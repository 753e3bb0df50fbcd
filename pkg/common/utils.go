package common

import (
	"encoding/binary"
	"fmt"
	"io"
)

// FieldReader reads little-endian header fields from a stream.
// The first failure is kept and every later read becomes a no-op,
// so a header can be parsed in sequence and checked once with Err.
type FieldReader struct {
	r      io.Reader
	offset int64
	err    error
}

// NewFieldReader wraps r
func NewFieldReader(r io.Reader) *FieldReader {
	return &FieldReader{r: r}
}

// Err returns the first error met, annotated with the field and its offset
func (fr *FieldReader) Err() error {
	return fr.err
}

// Offset returns the number of bytes consumed so far
func (fr *FieldReader) Offset() int64 {
	return fr.offset
}

func (fr *FieldReader) fail(field string, err error) {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	fr.err = fmt.Errorf("%s at offset %d: %w", field, fr.offset, err)
}

// Bytes reads count raw bytes
func (fr *FieldReader) Bytes(field string, count int) []byte {
	if fr.err != nil {
		return nil
	}
	buffer := make([]byte, count)
	n, err := io.ReadFull(fr.r, buffer)
	if err != nil {
		fr.fail(field, err)
		return nil
	}
	fr.offset += int64(n)
	return buffer
}

// Magic reads len(expected) bytes and fails unless they equal expected
func (fr *FieldReader) Magic(expected string) {
	magic := fr.Bytes("magic", len(expected))
	if fr.err == nil && string(magic) != expected {
		fr.offset -= int64(len(expected))
		fr.fail("magic", fmt.Errorf("expected %q, got %q", expected, magic))
	}
}

// Uint16 reads a little-endian uint16
func (fr *FieldReader) Uint16(field string) uint16 {
	b := fr.Bytes(field, 2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// Uint32 reads a little-endian uint32
func (fr *FieldReader) Uint32(field string) uint32 {
	b := fr.Bytes(field, 4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Skip discards count reserved bytes
func (fr *FieldReader) Skip(field string, count int) {
	if fr.err != nil {
		return
	}
	n, err := io.CopyN(io.Discard, fr.r, int64(count))
	fr.offset += n
	if err != nil {
		fr.fail(field, err)
	}
}
