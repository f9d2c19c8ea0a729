// Package object encodes the object headers stored for every group and
// dataset in a container.
//
// A header carries the object kind, and for datasets the dataspace (shape)
// and element datatype, followed by the object's attributes. Each attribute
// holds its own datatype, dataspace and raw little-endian value.
//
// # Record Layout
//
//	"OHDR" | version | kind | [dataspace | datatype] | nattrs | attributes... | lookup3
//
// The trailing lookup3 checksum covers every preceding byte.
//
// # Usage
//
//	rec := object.Encode(object.NewDatasetHeader(space, dt))
//	h, err := object.Decode(rec)
//
// # Errors
//
//   - [ErrInvalidHeader]: signature or kind not recognized
//   - [ErrUnsupportedVersion]: header version not supported
//   - [ErrChecksumMismatch]: checksum verification failed
package object
