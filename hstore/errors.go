// Package hstore provides a hierarchical array store: groups containing named
// multidimensional datasets, with attributes on both and per-axis dimension
// scale linkage on datasets. Files are single-writer bbolt databases.
package hstore

import "errors"

// Common errors
var (
	ErrNotStore    = errors.New("not an nsid container")
	ErrNotFound    = errors.New("object not found")
	ErrNotDataset  = errors.New("object is not a dataset")
	ErrNotGroup    = errors.New("object is not a group")
	ErrUnsupported = errors.New("unsupported feature")
	ErrInvalidPath = errors.New("invalid path")
	ErrClosed      = errors.New("file is closed")
	ErrReadOnly    = errors.New("file is read-only")
	ErrExists      = errors.New("object already exists")
	ErrChecksum    = errors.New("checksum mismatch")
	ErrAxis        = errors.New("axis out of range")
)
