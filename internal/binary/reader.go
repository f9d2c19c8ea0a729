package binary

import (
	"errors"
	"io"
)

// ErrChecksum is returned when a sealed record fails verification.
var ErrChecksum = errors.New("record checksum mismatch")

// Reader decodes fixed-width values from a record.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Unseal verifies the trailing lookup3 checksum written by Writer.Seal and
// returns the record without it.
func Unseal(record []byte) ([]byte, error) {
	if len(record) < 4 {
		return nil, io.ErrUnexpectedEOF
	}
	body := record[:len(record)-4]
	if !VerifyLookup3(body, order.Uint32(record[len(record)-4:])) {
		return nil, ErrChecksum
	}
	return body, nil
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadBytes reads exactly n bytes from the current position.
// The returned slice is a copy.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if r.Remaining() < n {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, n)
	copy(buf, r.data[r.pos:])
	r.pos += n
	return buf, nil
}

// ReadUint8 reads an unsigned 8-bit integer.
func (r *Reader) ReadUint8() (uint8, error) {
	buf, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(buf), nil
}

// ReadUint64 reads an unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	buf, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(buf), nil
}

// ReadLength reads a length or dimension size.
func (r *Reader) ReadLength() (uint64, error) {
	return r.ReadUint64()
}

// ReadString reads a length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadLength()
	if err != nil {
		return "", err
	}
	if n > uint64(r.Remaining()) {
		return "", io.ErrUnexpectedEOF
	}
	buf, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Skip advances the position by n bytes.
func (r *Reader) Skip(n int) {
	r.pos += n
}
