package superblock

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	binpkg "github.com/robert-malhotra/go-nsid/internal/binary"
)

// Signature: 0x89 N S D \r \n 0x1a \n
var Signature = []byte{0x89, 'N', 'S', 'D', '\r', '\n', 0x1a, '\n'}

// Version is the format version written by new files.
const Version uint8 = 1

// Errors
var (
	ErrNotStore           = errors.New("not an nsid container: signature not found")
	ErrUnsupportedVersion = errors.New("unsupported superblock version")
	ErrInvalidSuperblock  = errors.New("invalid superblock structure")
)

// Superblock contains the file-level metadata.
type Superblock struct {
	// Version is the superblock format version
	Version uint8

	// ID uniquely identifies the file; copies made by value get their own.
	ID uuid.UUID

	// Created is the file creation time (UTC, nanosecond precision)
	Created time.Time
}

// New returns a superblock for a fresh file.
func New(id uuid.UUID, created time.Time) *Superblock {
	return &Superblock{Version: Version, ID: id, Created: created.UTC()}
}

// Encode serializes the superblock into a sealed record.
func (sb *Superblock) Encode() []byte {
	w := binpkg.NewWriter()
	w.WriteBytes(Signature)
	w.WriteUint8(sb.Version)
	w.WriteBytes(sb.ID[:])
	w.WriteUint64(uint64(sb.Created.UnixNano()))
	return w.Seal()
}

// Decode parses a superblock record.
func Decode(record []byte) (*Superblock, error) {
	if len(record) < len(Signature) || string(record[:len(Signature)]) != string(Signature) {
		return nil, ErrNotStore
	}

	body, err := binpkg.Unseal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuperblock, err)
	}

	r := binpkg.NewReader(body)
	r.Skip(len(Signature))

	version, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuperblock, err)
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	idBytes, err := r.ReadBytes(16)
	if err != nil {
		return nil, fmt.Errorf("%w: reading file id: %v", ErrInvalidSuperblock, err)
	}
	id, err := uuid.FromBytes(idBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSuperblock, err)
	}

	created, err := r.ReadUint64()
	if err != nil {
		return nil, fmt.Errorf("%w: reading creation time: %v", ErrInvalidSuperblock, err)
	}

	return &Superblock{
		Version: version,
		ID:      id,
		Created: time.Unix(0, int64(created)).UTC(),
	}, nil
}
