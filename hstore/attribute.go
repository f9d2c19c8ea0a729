package hstore

import (
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-nsid/internal/dtype"
	"github.com/robert-malhotra/go-nsid/internal/object"
)

// Attribute represents an attribute attached to a dataset or group.
type Attribute struct {
	attr *object.Attribute
}

// Name returns the attribute name.
func (a *Attribute) Name() string {
	return a.attr.Name
}

// Shape returns the dimensions of the attribute value, nil for scalars.
func (a *Attribute) Shape() []uint64 {
	if a.attr.Dataspace.IsScalar() {
		return nil
	}
	return append([]uint64(nil), a.attr.Dataspace.Dims...)
}

// NumElements returns the total number of elements.
func (a *Attribute) NumElements() uint64 {
	return a.attr.Dataspace.NumElements()
}

// IsScalar returns true if the attribute is a scalar value.
func (a *Attribute) IsScalar() bool {
	return a.attr.Dataspace.IsScalar()
}

// IsString returns true if the attribute holds strings.
func (a *Attribute) IsString() bool {
	return a.attr.Datatype.IsString()
}

// DtypeClass returns the datatype class.
func (a *Attribute) DtypeClass() DtypeClass {
	return a.attr.Datatype.Class
}

// Read reads the attribute value into dest.
// dest should be a pointer to a slice of the appropriate type.
func (a *Attribute) Read(dest any) error {
	return dtype.Convert(a.attr.Datatype, a.attr.Data, a.NumElements(), dest)
}

// ReadFloat64 reads the attribute as float64 values.
func (a *Attribute) ReadFloat64() ([]float64, error) {
	var result []float64
	err := a.Read(&result)
	return result, err
}

// ReadInt64 reads the attribute as int64 values.
func (a *Attribute) ReadInt64() ([]int64, error) {
	var result []int64
	err := a.Read(&result)
	return result, err
}

// ReadString reads the attribute as string values.
func (a *Attribute) ReadString() ([]string, error) {
	var result []string
	err := a.Read(&result)
	return result, err
}

// ReadScalarInt64 reads a scalar int64 attribute.
func (a *Attribute) ReadScalarInt64() (int64, error) {
	return readScalar[int64](a)
}

// ReadScalarFloat64 reads a scalar float64 attribute.
func (a *Attribute) ReadScalarFloat64() (float64, error) {
	return readScalar[float64](a)
}

// ReadScalarString reads a scalar string attribute.
func (a *Attribute) ReadScalarString() (string, error) {
	return readScalar[string](a)
}

// readScalar returns the first element of a.
func readScalar[T any](a *Attribute) (T, error) {
	if a.NumElements() == 0 {
		var zero T
		return zero, fmt.Errorf("no values in attribute %s", a.Name())
	}
	return dtype.ReadScalar[T](a.attr.Datatype, a.attr.Data)
}

// Value reads the attribute and returns an auto-typed Go value:
//   - Signed fixed-point: int64 or []int64
//   - Unsigned fixed-point: uint64 or []uint64
//   - Floating-point: float64 or []float64
//   - String: string or []string
//
// Scalar attributes yield a single value, others a slice.
func (a *Attribute) Value() (any, error) {
	var vals any
	switch a.attr.Datatype.Class {
	case ClassFixedPoint:
		if a.attr.Datatype.Signed {
			vals = &[]int64{}
		} else {
			vals = &[]uint64{}
		}
	case ClassFloatPoint:
		vals = &[]float64{}
	case ClassString:
		vals = &[]string{}
	default:
		return nil, fmt.Errorf("%w: attribute class %s", ErrUnsupported, a.attr.Datatype.Class)
	}

	if err := a.Read(vals); err != nil {
		return nil, err
	}
	slice := reflect.ValueOf(vals).Elem()
	if a.IsScalar() && slice.Len() == 1 {
		return slice.Index(0).Interface(), nil
	}
	return slice.Interface(), nil
}

// newAttribute encodes a Go value as an attribute. Strings and numbers become
// scalars; slices and arrays of them become 1-D attributes.
func newAttribute(name string, value any) (*object.Attribute, error) {
	if name == "" {
		return nil, fmt.Errorf("attribute name cannot be empty")
	}
	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return nil, fmt.Errorf("attribute %q: nil value", name)
	}
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	var space object.Dataspace
	elemType := val.Type()
	switch val.Kind() {
	case reflect.Slice, reflect.Array:
		space.Dims = []uint64{uint64(val.Len())}
		elemType = val.Type().Elem()
		if k := elemType.Kind(); k == reflect.Slice || k == reflect.Array {
			return nil, fmt.Errorf("%w: nested attribute value for %q", ErrUnsupported, name)
		}
	}

	dt, err := dtype.GoTypeToDatatype(elemType)
	if err != nil {
		return nil, fmt.Errorf("unsupported attribute type %v: %w", elemType, err)
	}

	data, err := dtype.Encode(dt, val.Interface())
	if err != nil {
		return nil, fmt.Errorf("encoding attribute value: %w", err)
	}

	return &object.Attribute{Name: name, Datatype: dt, Dataspace: space, Data: data}, nil
}
