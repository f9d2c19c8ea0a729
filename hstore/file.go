package hstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/robert-malhotra/go-nsid/internal/object"
	"github.com/robert-malhotra/go-nsid/internal/superblock"
)

var (
	metaBucket    = []byte("meta")
	rootBucket    = []byte("/")
	superblockKey = []byte("superblock")
	headerKey     = []byte("\x00hdr")
	rawKey        = []byte("\x00raw")
)

// File represents an open container file.
type File struct {
	path       string
	db         *bolt.DB
	superblock *superblock.Superblock
	root       *Group
	closed     bool
	readOnly   bool

	// cache holds decoded headers of committed objects, keyed by path.
	cache *lru.Cache[string, *object.Header]

	// gen advances after every write transaction; handles compare it to
	// decide whether their header snapshot is stale.
	gen     uint64
	writing bool
}

// Create creates a new container file at the given path, replacing any
// existing file.
func Create(path string, opts ...FileOption) (*File, error) {
	options := defaultFileOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("replacing file: %w", err)
	}

	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: options.lockTimeout})
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	sb := superblock.New(uuid.New(), options.clock.Now())
	err = db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucket(metaBucket)
		if err != nil {
			return err
		}
		if err := meta.Put(superblockKey, sb.Encode()); err != nil {
			return err
		}
		root, err := tx.CreateBucket(rootBucket)
		if err != nil {
			return err
		}
		return root.Put(headerKey, object.Encode(object.NewGroupHeader()))
	})
	if err != nil {
		db.Close()
		os.Remove(path)
		return nil, fmt.Errorf("writing superblock: %w", err)
	}

	return newFile(path, db, sb, false, options)
}

// Open opens a container file for reading.
func Open(path string, opts ...FileOption) (*File, error) {
	return open(path, true, opts)
}

// OpenReadWrite opens an existing container file for reading and writing.
func OpenReadWrite(path string, opts ...FileOption) (*File, error) {
	return open(path, false, opts)
}

func open(path string, readOnly bool, opts []FileOption) (*File, error) {
	options := defaultFileOptions()
	for _, opt := range opts {
		opt(options)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	db, err := bolt.Open(path, 0o644, &bolt.Options{ReadOnly: readOnly, Timeout: options.lockTimeout})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, fmt.Errorf("opening file: %w", err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNotStore, path, err)
	}

	var sb *superblock.Superblock
	err = db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		if meta == nil || tx.Bucket(rootBucket) == nil {
			return ErrNotStore
		}
		var err error
		sb, err = superblock.Decode(meta.Get(superblockKey))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotStore, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("reading superblock: %w", err)
	}

	return newFile(path, db, sb, readOnly, options)
}

func newFile(path string, db *bolt.DB, sb *superblock.Superblock, readOnly bool, options *fileOptions) (*File, error) {
	f := &File{
		path:       path,
		db:         db,
		superblock: sb,
		readOnly:   readOnly,
	}
	if options.cacheSize > 0 {
		cache, err := lru.New[string, *object.Header](options.cacheSize)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("creating header cache: %w", err)
		}
		f.cache = cache
	}

	h, err := f.loadHeader("/")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening root group: %w", err)
	}
	f.root = &Group{node: node{file: f, path: "/", h: h, gen: f.gen}}
	return f, nil
}

// Close closes the file. Closing twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	if f.cache != nil {
		f.cache.Purge()
	}
	return f.db.Close()
}

// Flush syncs committed changes to disk.
func (f *File) Flush() error {
	if f.closed {
		return ErrClosed
	}
	if f.readOnly {
		return nil
	}
	return f.db.Sync()
}

// Root returns the root group of the file.
func (f *File) Root() *Group {
	return f.root
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Version returns the superblock version.
func (f *File) Version() int {
	return int(f.superblock.Version)
}

// ID returns the unique identifier assigned when the file was created.
func (f *File) ID() uuid.UUID {
	return f.superblock.ID
}

// Created returns the file creation time.
func (f *File) Created() time.Time {
	return f.superblock.Created
}

// IsWritable returns true if the file was opened for writing.
func (f *File) IsWritable() bool {
	return !f.readOnly
}

// OpenGroup opens a group by path.
func (f *File) OpenGroup(path string) (*Group, error) {
	if f.closed {
		return nil, ErrClosed
	}
	return f.root.OpenGroup(path)
}

// OpenDataset opens a dataset by path.
func (f *File) OpenDataset(path string) (*Dataset, error) {
	if f.closed {
		return nil, ErrClosed
	}
	return f.root.OpenDataset(path)
}

// GetAttr returns an attribute by path.
// Path format: /group/object@attribute_name
//
// Examples:
//   - "/@root_attr" - attribute on root group
//   - "/data@units" - attribute on dataset 'data'
//   - "/sensors/temp@calibration" - attribute on nested dataset
func (f *File) GetAttr(path string) (*Attribute, error) {
	if f.closed {
		return nil, ErrClosed
	}

	objectPath, attrName, err := ParseAttrPath(path)
	if err != nil {
		return nil, err
	}

	obj, err := f.root.Open(objectPath)
	if err != nil {
		return nil, fmt.Errorf("opening object %s: %w", objectPath, err)
	}

	attr := obj.Attr(attrName)
	if attr == nil {
		return nil, fmt.Errorf("attribute %s: %w", attrName, ErrNotFound)
	}
	return attr, nil
}

// ReadAttr reads an attribute value by path.
// This is a convenience method that combines GetAttr and Attribute.Value().
//
// Examples:
//
//	val, err := f.ReadAttr("/@version")
//	val, err := f.ReadAttr("/dataset@units")
func (f *File) ReadAttr(path string) (any, error) {
	attr, err := f.GetAttr(path)
	if err != nil {
		return nil, err
	}
	return attr.Value()
}

// loadHeader returns the committed header at path, consulting the cache first.
func (f *File) loadHeader(p string) (*object.Header, error) {
	if f.closed {
		return nil, ErrClosed
	}
	p = CleanPath(p)
	if f.cache != nil {
		if h, ok := f.cache.Get(p); ok {
			return h, nil
		}
	}

	var h *object.Header
	err := f.db.View(func(tx *bolt.Tx) error {
		b, err := bucketFor(tx, p)
		if err != nil {
			return err
		}
		h, err = decodeHeader(b, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.Add(p, h)
	}
	return h, nil
}

// loadRaw returns a copy of the committed raw data of the dataset at path.
func (f *File) loadRaw(p string) ([]byte, error) {
	if f.closed {
		return nil, ErrClosed
	}
	var raw []byte
	err := f.db.View(func(tx *bolt.Tx) error {
		b, err := bucketFor(tx, p)
		if err != nil {
			return err
		}
		raw = append([]byte(nil), b.Get(rawKey)...)
		return nil
	})
	return raw, err
}

// bucketFor walks from the root bucket to the bucket of the object at p.
func bucketFor(tx *bolt.Tx, p string) (*bolt.Bucket, error) {
	b := tx.Bucket(rootBucket)
	if b == nil {
		return nil, ErrNotStore
	}

	parts := SplitPath(p)
	for i, name := range parts {
		if b.Get(rawKey) != nil {
			return nil, fmt.Errorf("%q is not a group: %w", "/"+strings.Join(parts[:i], "/"), ErrNotGroup)
		}
		next := b.Bucket([]byte(name))
		if next == nil {
			return nil, fmt.Errorf("finding %q: %w", CleanPath(strings.Join(parts[:i+1], "/")), ErrNotFound)
		}
		b = next
	}
	return b, nil
}

func decodeHeader(b *bolt.Bucket, p string) (*object.Header, error) {
	rec := b.Get(headerKey)
	if rec == nil {
		return nil, fmt.Errorf("%s: missing object header: %w", p, ErrNotStore)
	}
	h, err := object.Decode(rec)
	if err != nil {
		if errors.Is(err, object.ErrChecksumMismatch) {
			return nil, fmt.Errorf("%s: %w", p, ErrChecksum)
		}
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return h, nil
}

// newNode wraps a decoded header in the matching handle type.
func (f *File) newNode(p string, h *object.Header) Node {
	n := node{file: f, path: CleanPath(p), h: h, gen: f.gen}
	if h.Kind == object.KindDataset {
		return &Dataset{node: n}
	}
	return &Group{node: n}
}
