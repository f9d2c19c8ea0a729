package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	nbin "github.com/robert-malhotra/go-nsid/internal/binary"
)

// Convert decodes n elements of raw data into dest.
// The dest parameter must be a pointer to a slice. Numeric elements are
// converted to the slice's element type; a []any destination receives the
// natural Go type of each element.
func Convert(dt *Datatype, data []byte, n uint64, dest any) error {
	if err := dt.Validate(); err != nil {
		return err
	}

	destVal := reflect.ValueOf(dest)
	if destVal.Kind() != reflect.Ptr || destVal.IsNil() {
		return fmt.Errorf("dest must be a non-nil pointer, got %T", dest)
	}
	elemVal := destVal.Elem()
	if elemVal.Kind() != reflect.Slice {
		return fmt.Errorf("dest must point to a slice, got %T", dest)
	}

	values, err := decode(dt, data, n)
	if err != nil {
		return err
	}

	elemType := elemVal.Type().Elem()
	out := reflect.MakeSlice(elemVal.Type(), len(values), len(values))
	for i, v := range values {
		if elemType.Kind() == reflect.Interface {
			out.Index(i).Set(v)
			continue
		}
		if !convertible(v, elemType) {
			return fmt.Errorf("cannot convert %s to %v", dt, elemType)
		}
		out.Index(i).Set(v.Convert(elemType))
	}
	elemVal.Set(out)
	return nil
}

// convertible allows numeric-to-numeric and string-to-string conversion only.
func convertible(v reflect.Value, to reflect.Type) bool {
	if v.Kind() == reflect.String || to.Kind() == reflect.String {
		return v.Kind() == to.Kind()
	}
	return v.Type().ConvertibleTo(to)
}

func decode(dt *Datatype, data []byte, n uint64) ([]reflect.Value, error) {
	switch dt.Class {
	case ClassFixedPoint:
		return decodeFixedPoint(dt, data, n)
	case ClassFloatPoint:
		return decodeFloatPoint(dt, data, n)
	case ClassString:
		return decodeString(data, n)
	default:
		return nil, fmt.Errorf("unsupported datatype class for conversion: %d", dt.Class)
	}
}

func decodeFixedPoint(dt *Datatype, data []byte, n uint64) ([]reflect.Value, error) {
	size := int(dt.Size)
	if needed := n * uint64(size); needed > uint64(len(data)) {
		return nil, fmt.Errorf("not enough data: need %d bytes, have %d", needed, len(data))
	}

	out := make([]reflect.Value, n)
	for i := range out {
		b := data[i*size : (i+1)*size]
		var val any
		switch size {
		case 1:
			if dt.Signed {
				val = int8(b[0])
			} else {
				val = b[0]
			}
		case 2:
			v := binary.LittleEndian.Uint16(b)
			if dt.Signed {
				val = int16(v)
			} else {
				val = v
			}
		case 4:
			v := binary.LittleEndian.Uint32(b)
			if dt.Signed {
				val = int32(v)
			} else {
				val = v
			}
		case 8:
			v := binary.LittleEndian.Uint64(b)
			if dt.Signed {
				val = int64(v)
			} else {
				val = v
			}
		}
		out[i] = reflect.ValueOf(val)
	}
	return out, nil
}

func decodeFloatPoint(dt *Datatype, data []byte, n uint64) ([]reflect.Value, error) {
	size := int(dt.Size)
	if needed := n * uint64(size); needed > uint64(len(data)) {
		return nil, fmt.Errorf("not enough data: need %d bytes, have %d", needed, len(data))
	}

	out := make([]reflect.Value, n)
	for i := range out {
		b := data[i*size : (i+1)*size]
		if size == 4 {
			out[i] = reflect.ValueOf(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		} else {
			out[i] = reflect.ValueOf(math.Float64frombits(binary.LittleEndian.Uint64(b)))
		}
	}
	return out, nil
}

func decodeString(data []byte, n uint64) ([]reflect.Value, error) {
	r := nbin.NewReader(data)
	out := make([]reflect.Value, n)
	for i := range out {
		s, err := r.ReadString()
		if err != nil {
			return nil, fmt.Errorf("reading string %d: %w", i, err)
		}
		out[i] = reflect.ValueOf(s)
	}
	return out, nil
}

// ConvertToSlice converts raw data to a newly allocated slice.
func ConvertToSlice[T any](dt *Datatype, data []byte, n uint64) ([]T, error) {
	var result []T
	if err := Convert(dt, data, n, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ReadScalar reads a single scalar value from raw data.
func ReadScalar[T any](dt *Datatype, data []byte) (T, error) {
	var zero T
	result, err := ConvertToSlice[T](dt, data, 1)
	if err != nil {
		return zero, err
	}
	return result[0], nil
}
