// Package superblock encodes the record that identifies a file as an nsid
// container.
//
// The superblock is stored under the key "superblock" in the "meta" bucket.
// It starts with an 8-byte signature: 0x89 N S D \r \n 0x1a \n, followed by
// the format version, the file UUID and the creation time, and ends with a
// lookup3 checksum of the preceding bytes.
//
// # Errors
//
//   - [ErrNotStore]: signature not found
//   - [ErrUnsupportedVersion]: version not supported
//   - [ErrInvalidSuperblock]: truncated record or checksum mismatch
package superblock
