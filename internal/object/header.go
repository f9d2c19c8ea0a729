package object

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-nsid/internal/binary"
	"github.com/robert-malhotra/go-nsid/internal/dtype"
)

// Signature prefixes every encoded header.
var Signature = []byte{'O', 'H', 'D', 'R'}

// Version is the header version written by Encode.
const Version uint8 = 1

// Errors
var (
	ErrInvalidHeader      = errors.New("invalid object header")
	ErrUnsupportedVersion = errors.New("unsupported object header version")
	ErrChecksumMismatch   = errors.New("object header checksum mismatch")
)

// Kind identifies what an object header describes.
type Kind uint8

const (
	KindGroup   Kind = 1
	KindDataset Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindDataset:
		return "dataset"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Dataspace is the shape of a dataset or attribute. No dimensions means scalar.
type Dataspace struct {
	Dims []uint64
}

// Rank returns the number of dimensions.
func (s Dataspace) Rank() int {
	return len(s.Dims)
}

// IsScalar reports whether the dataspace holds exactly one element with no dimensions.
func (s Dataspace) IsScalar() bool {
	return len(s.Dims) == 0
}

// NumElements returns the product of the dimensions (1 for scalars).
func (s Dataspace) NumElements() uint64 {
	n := uint64(1)
	for _, d := range s.Dims {
		n *= d
	}
	return n
}

// Attribute is a named value attached to an object.
type Attribute struct {
	Name      string
	Datatype  *dtype.Datatype
	Dataspace Dataspace
	Data      []byte
}

// Header is a decoded object header.
type Header struct {
	Version uint8
	Kind    Kind

	// Dataspace and Datatype are set for datasets only.
	Dataspace *Dataspace
	Datatype  *dtype.Datatype

	Attributes []*Attribute
}

// NewGroupHeader returns an empty group header.
func NewGroupHeader() *Header {
	return &Header{Version: Version, Kind: KindGroup}
}

// NewDatasetHeader returns a dataset header with the given shape and element type.
func NewDatasetHeader(space Dataspace, dt *dtype.Datatype) *Header {
	return &Header{Version: Version, Kind: KindDataset, Dataspace: &space, Datatype: dt}
}

// Attribute returns the attribute with the given name, or nil if not found.
func (h *Header) Attribute(name string) *Attribute {
	for _, a := range h.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// SetAttribute replaces the attribute of the same name or appends a new one.
func (h *Header) SetAttribute(attr *Attribute) {
	for i, a := range h.Attributes {
		if a.Name == attr.Name {
			h.Attributes[i] = attr
			return
		}
	}
	h.Attributes = append(h.Attributes, attr)
}

// DeleteAttribute removes the named attribute and reports whether it existed.
func (h *Header) DeleteAttribute(name string) bool {
	for i, a := range h.Attributes {
		if a.Name == name {
			h.Attributes = append(h.Attributes[:i], h.Attributes[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() *Header {
	c := &Header{Version: h.Version, Kind: h.Kind}
	if h.Dataspace != nil {
		c.Dataspace = &Dataspace{Dims: append([]uint64(nil), h.Dataspace.Dims...)}
	}
	if h.Datatype != nil {
		dt := *h.Datatype
		c.Datatype = &dt
	}
	for _, a := range h.Attributes {
		dt := *a.Datatype
		c.Attributes = append(c.Attributes, &Attribute{
			Name:      a.Name,
			Datatype:  &dt,
			Dataspace: Dataspace{Dims: append([]uint64(nil), a.Dataspace.Dims...)},
			Data:      append([]byte(nil), a.Data...),
		})
	}
	return c
}

// Encode serializes the header into a sealed record.
func Encode(h *Header) []byte {
	w := binary.NewWriter()
	w.WriteBytes(Signature)
	w.WriteUint8(Version)
	w.WriteUint8(uint8(h.Kind))

	if h.Kind == KindDataset {
		writeDataspace(w, *h.Dataspace)
		h.Datatype.Put(w)
	}

	w.WriteUint32(uint32(len(h.Attributes)))
	for _, a := range h.Attributes {
		w.WriteString(a.Name)
		a.Datatype.Put(w)
		writeDataspace(w, a.Dataspace)
		w.WriteLength(uint64(len(a.Data)))
		w.WriteBytes(a.Data)
	}

	return w.Seal()
}

func writeDataspace(w *binary.Writer, s Dataspace) {
	w.WriteUint8(uint8(len(s.Dims)))
	for _, d := range s.Dims {
		w.WriteLength(d)
	}
}

// Decode parses a record produced by Encode.
func Decode(record []byte) (*Header, error) {
	body, err := binary.Unseal(record)
	if err != nil {
		if errors.Is(err, binary.ErrChecksum) {
			return nil, fmt.Errorf("%w: %v", ErrChecksumMismatch, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	r := binary.NewReader(body)
	sig, err := r.ReadBytes(len(Signature))
	if err != nil || string(sig) != string(Signature) {
		return nil, fmt.Errorf("%w: bad signature", ErrInvalidHeader)
	}

	version, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading header version: %w", err)
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	kind, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading object kind: %w", err)
	}
	h := &Header{Version: version, Kind: Kind(kind)}

	switch h.Kind {
	case KindGroup:
	case KindDataset:
		space, err := readDataspace(r)
		if err != nil {
			return nil, fmt.Errorf("reading dataspace: %w", err)
		}
		h.Dataspace = &space
		if h.Datatype, err = dtype.Decode(r); err != nil {
			return nil, fmt.Errorf("reading datatype: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidHeader, kind)
	}

	nattrs, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading attribute count: %w", err)
	}
	for i := uint32(0); i < nattrs; i++ {
		attr, err := readAttribute(r)
		if err != nil {
			return nil, fmt.Errorf("reading attribute %d: %w", i, err)
		}
		h.Attributes = append(h.Attributes, attr)
	}

	return h, nil
}

func readDataspace(r *binary.Reader) (Dataspace, error) {
	rank, err := r.ReadUint8()
	if err != nil {
		return Dataspace{}, err
	}
	var s Dataspace
	for i := 0; i < int(rank); i++ {
		d, err := r.ReadLength()
		if err != nil {
			return Dataspace{}, err
		}
		s.Dims = append(s.Dims, d)
	}
	return s, nil
}

func readAttribute(r *binary.Reader) (*Attribute, error) {
	name, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	dt, err := dtype.Decode(r)
	if err != nil {
		return nil, err
	}
	space, err := readDataspace(r)
	if err != nil {
		return nil, err
	}
	n, err := r.ReadLength()
	if err != nil {
		return nil, err
	}
	if n > uint64(r.Remaining()) {
		return nil, fmt.Errorf("attribute %q: value length %d exceeds record", name, n)
	}
	data, err := r.ReadBytes(int(n))
	if err != nil {
		return nil, err
	}
	return &Attribute{Name: name, Datatype: dt, Dataspace: space, Data: data}, nil
}
