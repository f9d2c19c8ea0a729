package dtype

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	nbin "github.com/robert-malhotra/go-nsid/internal/binary"
)

// Encode converts Go values to raw little-endian bytes.
// The src parameter may be a slice, an array, a pointer to either, or a scalar.
func Encode(dt *Datatype, src any) ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}

	srcVal := reflect.ValueOf(src)
	if !srcVal.IsValid() {
		return nil, fmt.Errorf("nil source value")
	}
	if srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}

	switch dt.Class {
	case ClassFixedPoint:
		return encodeFixedPoint(dt, srcVal)
	case ClassFloatPoint:
		return encodeFloatPoint(dt, srcVal)
	case ClassString:
		return encodeString(srcVal)
	default:
		return nil, fmt.Errorf("unsupported datatype class for encoding: %d", dt.Class)
	}
}

// elements returns the values to encode, treating a scalar as a single element.
func elements(srcVal reflect.Value) []reflect.Value {
	switch srcVal.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]reflect.Value, srcVal.Len())
		for i := range out {
			out[i] = srcVal.Index(i)
		}
		return out
	default:
		return []reflect.Value{srcVal}
	}
}

func encodeFixedPoint(dt *Datatype, srcVal reflect.Value) ([]byte, error) {
	size := int(dt.Size)
	elems := elements(srcVal)
	buf := make([]byte, len(elems)*size)

	for i, ev := range elems {
		var v uint64
		switch ev.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v = uint64(ev.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			v = ev.Uint()
		case reflect.Float32, reflect.Float64:
			f := ev.Float()
			if dt.Signed {
				v = uint64(int64(f))
			} else {
				v = uint64(f)
			}
		default:
			return nil, fmt.Errorf("cannot encode %v as %s", ev.Type(), dt)
		}

		b := buf[i*size : (i+1)*size]
		switch size {
		case 1:
			b[0] = uint8(v)
		case 2:
			binary.LittleEndian.PutUint16(b, uint16(v))
		case 4:
			binary.LittleEndian.PutUint32(b, uint32(v))
		case 8:
			binary.LittleEndian.PutUint64(b, v)
		}
	}

	return buf, nil
}

func encodeFloatPoint(dt *Datatype, srcVal reflect.Value) ([]byte, error) {
	size := int(dt.Size)
	elems := elements(srcVal)
	buf := make([]byte, len(elems)*size)

	for i, ev := range elems {
		var f float64
		switch ev.Kind() {
		case reflect.Float32, reflect.Float64:
			f = ev.Float()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(ev.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(ev.Uint())
		default:
			return nil, fmt.Errorf("cannot encode %v as %s", ev.Type(), dt)
		}

		b := buf[i*size : (i+1)*size]
		if size == 4 {
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(f)))
		} else {
			binary.LittleEndian.PutUint64(b, math.Float64bits(f))
		}
	}

	return buf, nil
}

func encodeString(srcVal reflect.Value) ([]byte, error) {
	w := nbin.NewWriter()
	for _, ev := range elements(srcVal) {
		if ev.Kind() != reflect.String {
			return nil, fmt.Errorf("cannot encode %v as string", ev.Type())
		}
		w.WriteString(ev.String())
	}
	return w.Bytes(), nil
}

// DataSize returns the number of bytes n fixed-width elements occupy.
// Strings have no fixed size and return 0.
func DataSize(dt *Datatype, n uint64) uint64 {
	return uint64(ElementSize(dt)) * n
}
