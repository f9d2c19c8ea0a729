package hstore

import (
	"fmt"
	"reflect"

	"github.com/robert-malhotra/go-nsid/internal/dtype"
)

// Dataset represents a dataset: a typed, fixed-shape multidimensional array.
type Dataset struct {
	node
}

// Kind returns KindDataset.
func (d *Dataset) Kind() NodeKind {
	return KindDataset
}

func (d *Dataset) dataset() *Dataset { return d }

// Shape returns the dimensions of the dataset.
func (d *Dataset) Shape() []uint64 {
	space := d.header().Dataspace
	if space == nil || space.IsScalar() {
		return nil
	}
	return append([]uint64(nil), space.Dims...)
}

// Rank returns the number of dimensions.
func (d *Dataset) Rank() int {
	return d.header().Dataspace.Rank()
}

// NumElements returns the total number of elements.
func (d *Dataset) NumElements() uint64 {
	return d.header().Dataspace.NumElements()
}

// IsScalar returns true if the dataset is a scalar (single value).
func (d *Dataset) IsScalar() bool {
	return d.header().Dataspace.IsScalar()
}

// Datatype returns the element datatype.
func (d *Dataset) Datatype() *Datatype {
	dt := *d.header().Datatype
	return &dt
}

// DtypeSize returns the size of each element in bytes (0 for strings).
func (d *Dataset) DtypeSize() int {
	return dtype.ElementSize(d.header().Datatype)
}

// DtypeClass returns the datatype class.
func (d *Dataset) DtypeClass() DtypeClass {
	return d.header().Datatype.Class
}

// GoType returns the Go type that corresponds to this dataset's datatype.
func (d *Dataset) GoType() (reflect.Type, error) {
	return dtype.GoType(d.header().Datatype)
}

// Read reads all data from the dataset into dest, flattened in row-major order.
// dest should be a pointer to a slice of the appropriate type.
func (d *Dataset) Read(dest any) error {
	raw, err := d.ReadRaw()
	if err != nil {
		return err
	}
	h := d.header()
	if err := dtype.Convert(h.Datatype, raw, h.Dataspace.NumElements(), dest); err != nil {
		return fmt.Errorf("reading %s: %w", d.path, err)
	}
	return nil
}

// ReadRaw reads all data from the dataset as raw little-endian bytes.
func (d *Dataset) ReadRaw() ([]byte, error) {
	raw, err := d.file.loadRaw(d.path)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	return raw, nil
}

// ReadFloat64 reads the dataset as float64 values.
func (d *Dataset) ReadFloat64() ([]float64, error) {
	var result []float64
	err := d.Read(&result)
	return result, err
}

// ReadFloat32 reads the dataset as float32 values.
func (d *Dataset) ReadFloat32() ([]float32, error) {
	var result []float32
	err := d.Read(&result)
	return result, err
}

// ReadInt64 reads the dataset as int64 values.
func (d *Dataset) ReadInt64() ([]int64, error) {
	var result []int64
	err := d.Read(&result)
	return result, err
}

// ReadInt32 reads the dataset as int32 values.
func (d *Dataset) ReadInt32() ([]int32, error) {
	var result []int32
	err := d.Read(&result)
	return result, err
}

// ReadUint64 reads the dataset as uint64 values.
func (d *Dataset) ReadUint64() ([]uint64, error) {
	var result []uint64
	err := d.Read(&result)
	return result, err
}

// ReadString reads the dataset as string values.
func (d *Dataset) ReadString() ([]string, error) {
	var result []string
	err := d.Read(&result)
	return result, err
}
