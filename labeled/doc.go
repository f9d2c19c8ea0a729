// Package labeled holds the in-memory, self-describing form of an
// N-dimensional array: raw or lazily loaded values, one coordinate
// descriptor per axis, and the descriptive attributes a Main dataset
// carries once it is persisted.
//
// Values are float64 in row-major order. A nil entry in Array.Dims marks
// an axis whose descriptor has not been set yet.
package labeled
