package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestReaderReadUint8(t *testing.T) {
	r := NewReader([]byte{0x42, 0xFF, 0x00})

	v, err := r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0x42 {
		t.Errorf("expected 0x42, got 0x%02x", v)
	}

	v, err = r.ReadUint8()
	if err != nil {
		t.Fatalf("ReadUint8 failed: %v", err)
	}
	if v != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02x", v)
	}
	if r.Remaining() != 1 {
		t.Errorf("expected 1 byte left, got %d", r.Remaining())
	}
}

func TestReaderReadUint32(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(0x12345678))
	binary.Write(&buf, binary.LittleEndian, uint32(0xDEADBEEF))

	r := NewReader(buf.Bytes())

	v, err := r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 0x12345678 {
		t.Errorf("expected 0x12345678, got 0x%08x", v)
	}

	v, err = r.ReadUint32()
	if err != nil {
		t.Fatalf("ReadUint32 failed: %v", err)
	}
	if v != 0xDEADBEEF {
		t.Errorf("expected 0xDEADBEEF, got 0x%08x", v)
	}
}

func TestReaderReadLength(t *testing.T) {
	r := NewReader([]byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01})

	v, err := r.ReadLength()
	if err != nil {
		t.Fatalf("ReadLength failed: %v", err)
	}
	if v != 0x0102030405060708 {
		t.Errorf("expected 0x0102030405060708, got 0x%x", v)
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})

	if _, err := r.ReadUint32(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
	if r.Remaining() != 2 {
		t.Errorf("failed read must not advance, %d bytes left", r.Remaining())
	}
}

func TestReaderStringTooLong(t *testing.T) {
	w := NewWriter()
	w.WriteLength(100)
	w.WriteBytes([]byte("short"))

	if _, err := NewReader(w.Bytes()).ReadString(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestReaderSkip(t *testing.T) {
	r := NewReader([]byte("NSID\x07"))
	r.Skip(4)
	v, err := r.ReadUint8()
	if err != nil || v != 7 {
		t.Fatalf("ReadUint8 after Skip: got %d, %v", v, err)
	}
}
