package dtype

import (
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-nsid/internal/binary"
)

// Class identifies the element class of a datatype.
type Class uint8

const (
	ClassFixedPoint Class = 0
	ClassFloatPoint Class = 1
	ClassString     Class = 3
)

func (c Class) String() string {
	switch c {
	case ClassFixedPoint:
		return "fixed-point"
	case ClassFloatPoint:
		return "float-point"
	case ClassString:
		return "string"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// Datatype describes one element of a dataset or attribute.
// Size is the element width in bytes; it is 0 for strings.
type Datatype struct {
	Class  Class
	Size   uint32
	Signed bool
}

// Fixed returns a fixed-point datatype.
func Fixed(size uint32, signed bool) *Datatype {
	return &Datatype{Class: ClassFixedPoint, Size: size, Signed: signed}
}

// Float returns a floating-point datatype.
func Float(size uint32) *Datatype {
	return &Datatype{Class: ClassFloatPoint, Size: size}
}

// String returns the variable-length string datatype.
func String() *Datatype {
	return &Datatype{Class: ClassString}
}

// IsString reports whether dt holds strings.
func (dt *Datatype) IsString() bool {
	return dt != nil && dt.Class == ClassString
}

// Equal reports whether two datatypes describe the same element.
func (dt *Datatype) Equal(o *Datatype) bool {
	if dt == nil || o == nil {
		return dt == o
	}
	return *dt == *o
}

func (dt *Datatype) String() string {
	if dt == nil {
		return "<nil>"
	}
	switch dt.Class {
	case ClassFixedPoint:
		if dt.Signed {
			return fmt.Sprintf("int%d", dt.Size*8)
		}
		return fmt.Sprintf("uint%d", dt.Size*8)
	case ClassFloatPoint:
		return fmt.Sprintf("float%d", dt.Size*8)
	case ClassString:
		return "string"
	default:
		return dt.Class.String()
	}
}

// Validate checks that the class and size combination is supported.
func (dt *Datatype) Validate() error {
	if dt == nil {
		return fmt.Errorf("nil datatype")
	}
	switch dt.Class {
	case ClassFixedPoint:
		switch dt.Size {
		case 1, 2, 4, 8:
			return nil
		}
		return fmt.Errorf("unsupported fixed-point size: %d", dt.Size)
	case ClassFloatPoint:
		if dt.Size == 4 || dt.Size == 8 {
			return nil
		}
		return fmt.Errorf("unsupported float size: %d", dt.Size)
	case ClassString:
		if dt.Size != 0 {
			return fmt.Errorf("string datatype must be variable length, got size %d", dt.Size)
		}
		return nil
	default:
		return fmt.Errorf("unsupported datatype class: %d", dt.Class)
	}
}

// Put appends the datatype descriptor to w.
func (dt *Datatype) Put(w *binary.Writer) {
	w.WriteUint8(uint8(dt.Class))
	flags := uint8(0)
	if dt.Signed {
		flags |= 0x01
	}
	w.WriteUint8(flags)
	w.WriteUint32(dt.Size)
}

// Decode reads a datatype descriptor written by Put.
func Decode(r *binary.Reader) (*Datatype, error) {
	class, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading datatype class: %w", err)
	}
	flags, err := r.ReadUint8()
	if err != nil {
		return nil, fmt.Errorf("reading datatype flags: %w", err)
	}
	size, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading datatype size: %w", err)
	}
	dt := &Datatype{Class: Class(class), Size: size, Signed: flags&0x01 != 0}
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return dt, nil
}

// GoType returns the Go reflect.Type that corresponds to the given datatype.
func GoType(dt *Datatype) (reflect.Type, error) {
	if dt == nil {
		return nil, fmt.Errorf("nil datatype")
	}

	switch dt.Class {
	case ClassFixedPoint:
		return goTypeFixedPoint(dt)
	case ClassFloatPoint:
		switch dt.Size {
		case 4:
			return reflect.TypeOf(float32(0)), nil
		case 8:
			return reflect.TypeOf(float64(0)), nil
		}
		return nil, fmt.Errorf("unsupported float size: %d", dt.Size)
	case ClassString:
		return reflect.TypeOf(""), nil
	default:
		return nil, fmt.Errorf("unsupported datatype class: %d", dt.Class)
	}
}

func goTypeFixedPoint(dt *Datatype) (reflect.Type, error) {
	signed := dt.Signed

	switch dt.Size {
	case 1:
		if signed {
			return reflect.TypeOf(int8(0)), nil
		}
		return reflect.TypeOf(uint8(0)), nil
	case 2:
		if signed {
			return reflect.TypeOf(int16(0)), nil
		}
		return reflect.TypeOf(uint16(0)), nil
	case 4:
		if signed {
			return reflect.TypeOf(int32(0)), nil
		}
		return reflect.TypeOf(uint32(0)), nil
	case 8:
		if signed {
			return reflect.TypeOf(int64(0)), nil
		}
		return reflect.TypeOf(uint64(0)), nil
	default:
		return nil, fmt.Errorf("unsupported fixed-point size: %d", dt.Size)
	}
}

// GoTypeToDatatype derives a datatype from a Go type. Slice and array types
// map to their element type; int and uint map to their 64-bit forms.
func GoTypeToDatatype(t reflect.Type) (*Datatype, error) {
	if t == nil {
		return nil, fmt.Errorf("nil type")
	}
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int8:
		return Fixed(1, true), nil
	case reflect.Int16:
		return Fixed(2, true), nil
	case reflect.Int32:
		return Fixed(4, true), nil
	case reflect.Int64, reflect.Int:
		return Fixed(8, true), nil
	case reflect.Uint8:
		return Fixed(1, false), nil
	case reflect.Uint16:
		return Fixed(2, false), nil
	case reflect.Uint32:
		return Fixed(4, false), nil
	case reflect.Uint64, reflect.Uint:
		return Fixed(8, false), nil
	case reflect.Float32:
		return Float(4), nil
	case reflect.Float64:
		return Float(8), nil
	case reflect.String:
		return String(), nil
	default:
		return nil, fmt.Errorf("unsupported Go type: %v", t)
	}
}

// ElementSize returns the fixed width of one element, or 0 for strings.
func ElementSize(dt *Datatype) int {
	if dt == nil || dt.Class == ClassString {
		return 0
	}
	return int(dt.Size)
}
