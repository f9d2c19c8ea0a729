package hstore

import (
	"github.com/robert-malhotra/go-nsid/internal/dtype"
)

// Datatype describes the element type of a dataset or attribute.
type Datatype = dtype.Datatype

// DtypeClass identifies the element class of a datatype.
type DtypeClass = dtype.Class

// Element classes.
const (
	ClassFixedPoint = dtype.ClassFixedPoint
	ClassFloatPoint = dtype.ClassFloatPoint
	ClassString     = dtype.ClassString
)

// IntType returns a fixed-point datatype of size bytes.
func IntType(size uint32, signed bool) *Datatype {
	return dtype.Fixed(size, signed)
}

// FloatType returns a floating-point datatype of size bytes (4 or 8).
func FloatType(size uint32) *Datatype {
	return dtype.Float(size)
}

// StringType returns the variable-length string datatype.
func StringType() *Datatype {
	return dtype.String()
}
