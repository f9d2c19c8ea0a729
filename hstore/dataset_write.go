package hstore

import (
	"fmt"
	"reflect"

	bolt "go.etcd.io/bbolt"

	"github.com/robert-malhotra/go-nsid/internal/dtype"
	"github.com/robert-malhotra/go-nsid/internal/object"
)

// CreateDataset creates a new dataset with the given name holding data.
// Dimensions are inferred from nested slices or arrays, and the datatype from
// the element type. A scalar value becomes a dataset of shape (1).
func (g *Group) CreateDataset(name string, data any, opts ...DatasetOption) (*Dataset, error) {
	var out *Dataset
	err := g.file.Update(func(tx *Tx) error {
		var err error
		out, err = tx.CreateDataset(g, name, data, opts...)
		return err
	})
	return out, err
}

// CreateDatasetWithType creates a new dataset with explicit dimensions and
// datatype. Elements start zeroed (empty for strings) until Write is called.
func (g *Group) CreateDatasetWithType(name string, dims []uint64, dt *Datatype, opts ...DatasetOption) (*Dataset, error) {
	var out *Dataset
	err := g.file.Update(func(tx *Tx) error {
		var err error
		out, err = tx.CreateDatasetWithType(g, name, dims, dt, opts...)
		return err
	})
	return out, err
}

// CreateDataset creates a dataset holding data inside the transaction.
func (t *Tx) CreateDataset(parent *Group, name string, data any, opts ...DatasetOption) (*Dataset, error) {
	if err := t.own(parent); err != nil {
		return nil, err
	}

	dims, dt, raw, err := encodeData(data)
	if err != nil {
		return nil, fmt.Errorf("creating dataset %q: %w", name, err)
	}
	return t.createDataset(parent, name, object.NewDatasetHeader(object.Dataspace{Dims: dims}, dt), raw, opts)
}

// CreateDatasetWithType creates a zero-filled dataset inside the transaction.
func (t *Tx) CreateDatasetWithType(parent *Group, name string, dims []uint64, dt *Datatype, opts ...DatasetOption) (*Dataset, error) {
	if err := t.own(parent); err != nil {
		return nil, err
	}
	if err := dt.Validate(); err != nil {
		return nil, fmt.Errorf("creating dataset %q: %w", name, err)
	}

	space := object.Dataspace{Dims: append([]uint64(nil), dims...)}
	var raw []byte
	if dt.IsString() {
		var err error
		raw, err = dtype.Encode(dt, make([]string, space.NumElements()))
		if err != nil {
			return nil, err
		}
	} else {
		raw = make([]byte, dtype.DataSize(dt, space.NumElements()))
	}
	copyDt := *dt
	return t.createDataset(parent, name, object.NewDatasetHeader(space, &copyDt), raw, opts)
}

func (t *Tx) createDataset(parent *Group, name string, h *object.Header, raw []byte, opts []DatasetOption) (*Dataset, error) {
	options := defaultDatasetOptions()
	for _, opt := range opts {
		opt(options)
	}
	for _, attr := range options.attributes {
		a, err := newAttribute(attr.name, attr.value)
		if err != nil {
			return nil, fmt.Errorf("creating attribute %q: %w", attr.name, err)
		}
		h.SetAttribute(a)
	}

	n, err := t.createMember(parent.Path(), name, h, raw)
	if err != nil {
		return nil, err
	}
	return n.(*Dataset), nil
}

// Write replaces the dataset contents. data must hold exactly NumElements
// values; its nesting is ignored.
func (d *Dataset) Write(data any) error {
	return d.file.Update(func(tx *Tx) error {
		return tx.Write(d, data)
	})
}

// Write replaces the contents of d inside the transaction.
func (t *Tx) Write(d *Dataset, data any) error {
	if err := t.own(d); err != nil {
		return err
	}
	h, b, err := t.header(d.Path())
	if err != nil {
		return err
	}

	val := reflect.ValueOf(data)
	if !val.IsValid() {
		return fmt.Errorf("writing %s: nil data", d.Path())
	}
	dims, _ := inferDimensionsAndType(val)
	if n := (object.Dataspace{Dims: dims}).NumElements(); n != h.Dataspace.NumElements() {
		return fmt.Errorf("writing %s: data size mismatch: expected %d elements, got %d",
			d.Path(), h.Dataspace.NumElements(), n)
	}

	flat, err := flatten(val, dims)
	if err != nil {
		return fmt.Errorf("writing %s: %w", d.Path(), err)
	}
	raw, err := dtype.Encode(h.Datatype, flat.Interface())
	if err != nil {
		return fmt.Errorf("encoding data: %w", err)
	}
	return putRaw(b, raw)
}

func putRaw(b *bolt.Bucket, raw []byte) error {
	if err := b.Put(rawKey, raw); err != nil {
		return fmt.Errorf("writing data: %w", err)
	}
	return nil
}

// encodeData infers shape and datatype of data and encodes it.
func encodeData(data any) ([]uint64, *dtype.Datatype, []byte, error) {
	val := reflect.ValueOf(data)
	if !val.IsValid() {
		return nil, nil, nil, fmt.Errorf("nil data")
	}

	dims, elemType := inferDimensionsAndType(val)
	dt, err := dtype.GoTypeToDatatype(elemType)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating datatype: %w", err)
	}

	flat, err := flatten(val, dims)
	if err != nil {
		return nil, nil, nil, err
	}
	raw, err := dtype.Encode(dt, flat.Interface())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("encoding data: %w", err)
	}
	return dims, dt, raw, nil
}

// inferDimensionsAndType infers the dimensions and element type from a Go value.
func inferDimensionsAndType(val reflect.Value) ([]uint64, reflect.Type) {
	var dims []uint64
	current := val
	if current.Kind() == reflect.Ptr {
		current = current.Elem()
	}

	for {
		switch current.Kind() {
		case reflect.Slice, reflect.Array:
			dims = append(dims, uint64(current.Len()))
			if current.Len() == 0 {
				t := current.Type().Elem()
				for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
					t = t.Elem()
				}
				return dims, t
			}
			current = current.Index(0)
		default:
			if len(dims) == 0 {
				dims = []uint64{1}
			}
			return dims, current.Type()
		}
	}
}

// flatten collects the leaf values of val into a 1-D slice, checking that
// every nested slice matches dims.
func flatten(val reflect.Value, dims []uint64) (reflect.Value, error) {
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	_, elemType := inferDimensionsAndType(val)
	out := reflect.MakeSlice(reflect.SliceOf(elemType), 0, int(object.Dataspace{Dims: dims}.NumElements()))

	if k := val.Kind(); k != reflect.Slice && k != reflect.Array {
		return reflect.Append(out, val), nil
	}

	var walk func(v reflect.Value, depth int) error
	walk = func(v reflect.Value, depth int) error {
		if depth == len(dims) {
			out = reflect.Append(out, v)
			return nil
		}
		if k := v.Kind(); (k != reflect.Slice && k != reflect.Array) || uint64(v.Len()) != dims[depth] {
			return fmt.Errorf("ragged data: axis %d expects length %d", depth, dims[depth])
		}
		for i := 0; i < v.Len(); i++ {
			if err := walk(v.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(val, 0); err != nil {
		return reflect.Value{}, err
	}
	return out, nil
}
