package hstore

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultCacheSize is the number of decoded object headers kept per file.
const DefaultCacheSize = 256

// FileOption configures how a file is created or opened.
type FileOption func(*fileOptions)

type fileOptions struct {
	cacheSize   int
	lockTimeout time.Duration
	clock       clockwork.Clock
}

func defaultFileOptions() *fileOptions {
	return &fileOptions{
		cacheSize:   DefaultCacheSize,
		lockTimeout: time.Second,
		clock:       clockwork.NewRealClock(),
	}
}

// WithCacheSize sets how many object headers are cached. Zero disables the cache.
func WithCacheSize(n int) FileOption {
	return func(o *fileOptions) {
		if n >= 0 {
			o.cacheSize = n
		}
	}
}

// WithLockTimeout bounds how long opening waits for the file lock held by
// another process. Zero waits forever.
func WithLockTimeout(d time.Duration) FileOption {
	return func(o *fileOptions) {
		o.lockTimeout = d
	}
}

// WithClock sets the clock used to stamp the creation time of new files.
func WithClock(c clockwork.Clock) FileOption {
	return func(o *fileOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// DatasetOption configures dataset creation options.
type DatasetOption func(*datasetOptions)

// attrDef holds an attribute definition for creation.
type attrDef struct {
	name  string
	value any
}

type datasetOptions struct {
	attributes []attrDef
}

func defaultDatasetOptions() *datasetOptions {
	return &datasetOptions{}
}

// WithAttribute adds an attribute to the dataset.
// The value can be a scalar or slice of: int, int8-64, uint, uint8-64, float32, float64, string.
// Multiple WithAttribute options can be used to add multiple attributes.
func WithAttribute(name string, value any) DatasetOption {
	return func(o *datasetOptions) {
		o.attributes = append(o.attributes, attrDef{name: name, value: value})
	}
}
