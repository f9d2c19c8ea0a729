// Package binary encodes and decodes the fixed-layout records stored in a
// container file: the superblock, object headers and raw array payloads.
// Records are little-endian and lengths are 8 bytes wide.
package binary

import (
	"encoding/binary"
)

var order = binary.LittleEndian

// Writer appends fixed-width values to an in-memory record.
type Writer struct {
	buf     []byte
	scratch [8]byte
}

// NewWriter creates an empty record writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the record written so far.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteUint8 writes an unsigned 8-bit integer.
func (w *Writer) WriteUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// WriteUint32 writes an unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	order.PutUint32(w.scratch[:4], v)
	w.buf = append(w.buf, w.scratch[:4]...)
}

// WriteUint64 writes an unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) {
	order.PutUint64(w.scratch[:8], v)
	w.buf = append(w.buf, w.scratch[:8]...)
}

// WriteLength writes a length or dimension size.
func (w *Writer) WriteLength(v uint64) {
	w.WriteUint64(v)
}

// WriteString writes a length-prefixed string.
func (w *Writer) WriteString(s string) {
	w.WriteLength(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// Seal appends the lookup3 checksum of everything written so far and
// returns the finished record.
func (w *Writer) Seal() []byte {
	w.WriteUint32(Lookup3Checksum(w.buf))
	return w.buf
}
