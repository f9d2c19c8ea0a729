// Package dtype maps element types stored in an nsid container to Go types.
//
// Three element classes are supported:
//
//	Class        | Go Type
//	-------------|------------------------------------------------------
//	Fixed-point  | int8/16/32/64 or uint8/16/32/64 by size and signedness
//	Float-point  | float32 (4 bytes) or float64 (8 bytes)
//	String       | string (variable length, length-prefixed per element)
//
// All numeric payloads are little-endian.
//
// # Reading Data
//
// Use [Convert] to turn raw bytes into Go values:
//
//	var values []float64
//	err := dtype.Convert(datatype, rawBytes, numElements, &values)
//
// # Writing Data
//
// Use [GoTypeToDatatype] to derive a datatype from a Go value and [Encode] to
// produce its bytes:
//
//	dt, err := dtype.GoTypeToDatatype(reflect.TypeOf([]float64{}))
//	data, err := dtype.Encode(dt, []float64{1, 2, 3})
package dtype
