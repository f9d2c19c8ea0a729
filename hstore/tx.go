package hstore

import (
	"errors"
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"

	"github.com/robert-malhotra/go-nsid/internal/object"
)

// Tx is a write transaction. Every change made through a Tx is committed
// together when the function passed to Update returns nil, and discarded
// otherwise.
//
// Inside a transaction, objects must be addressed through the Tx; reading
// through handles of the same file sees the state before the transaction.
type Tx struct {
	file  *File
	tx    *bolt.Tx
	dirty map[string]struct{}
	purge bool
}

// Update runs fn inside a single write transaction.
func (f *File) Update(fn func(tx *Tx) error) error {
	if f.closed {
		return ErrClosed
	}
	if f.readOnly {
		return ErrReadOnly
	}
	if f.writing {
		return fmt.Errorf("%w: nested update", ErrUnsupported)
	}

	t := &Tx{file: f, dirty: make(map[string]struct{})}
	f.writing = true
	defer func() {
		f.writing = false
		f.gen++
		t.invalidate()
	}()

	return f.db.Update(func(btx *bolt.Tx) error {
		t.tx = btx
		return fn(t)
	})
}

func (t *Tx) invalidate() {
	c := t.file.cache
	if c == nil {
		return
	}
	if t.purge {
		c.Purge()
		return
	}
	for p := range t.dirty {
		c.Remove(p)
	}
}

// own checks that n belongs to the transaction's file.
func (t *Tx) own(n Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrNotFound)
	}
	if n.File() != t.file {
		return fmt.Errorf("%s belongs to %s: %w", n.Path(), n.File().Path(), ErrUnsupported)
	}
	return nil
}

func (t *Tx) header(p string) (*object.Header, *bolt.Bucket, error) {
	b, err := bucketFor(t.tx, p)
	if err != nil {
		return nil, nil, err
	}
	h, err := decodeHeader(b, p)
	if err != nil {
		return nil, nil, err
	}
	return h, b, nil
}

func (t *Tx) putHeader(b *bolt.Bucket, p string, h *object.Header) error {
	if err := b.Put(headerKey, object.Encode(h)); err != nil {
		return fmt.Errorf("writing header of %s: %w", p, err)
	}
	t.dirty[CleanPath(p)] = struct{}{}
	return nil
}

// createMember adds a new object bucket under the group at parentPath.
func (t *Tx) createMember(parentPath, name string, h *object.Header, raw []byte) (Node, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	parent, err := bucketFor(t.tx, parentPath)
	if err != nil {
		return nil, err
	}
	if parent.Get(rawKey) != nil {
		return nil, fmt.Errorf("%s: %w", parentPath, ErrNotGroup)
	}
	if parent.Bucket([]byte(name)) != nil {
		return nil, fmt.Errorf("%s: %w", JoinPath(parentPath, name), ErrExists)
	}

	b, err := parent.CreateBucket([]byte(name))
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", name, err)
	}
	p := JoinPath(parentPath, name)
	if err := t.putHeader(b, p, h); err != nil {
		return nil, err
	}
	if h.Kind == object.KindDataset {
		if raw == nil {
			raw = []byte{}
		}
		if err := b.Put(rawKey, raw); err != nil {
			return nil, fmt.Errorf("writing data of %s: %w", p, err)
		}
	}
	return t.file.newNode(p, h), nil
}

// CreateGroup creates a subgroup of parent.
func (t *Tx) CreateGroup(parent *Group, name string) (*Group, error) {
	if err := t.own(parent); err != nil {
		return nil, err
	}
	n, err := t.createMember(parent.Path(), name, object.NewGroupHeader(), nil)
	if err != nil {
		return nil, err
	}
	return n.(*Group), nil
}

// Delete removes the member name from parent, including everything below it.
func (t *Tx) Delete(parent *Group, name string) error {
	if err := t.own(parent); err != nil {
		return err
	}
	if err := validName(name); err != nil {
		return err
	}
	b, err := bucketFor(t.tx, parent.Path())
	if err != nil {
		return err
	}
	if err := b.DeleteBucket([]byte(name)); err != nil {
		if errors.Is(err, bolt.ErrBucketNotFound) {
			return fmt.Errorf("%s: %w", JoinPath(parent.Path(), name), ErrNotFound)
		}
		return fmt.Errorf("deleting %q: %w", name, err)
	}
	t.purge = true
	return nil
}

// SetAttrs creates or replaces attributes on n. Keys are applied in sorted order.
func (t *Tx) SetAttrs(n Node, attrs map[string]any) error {
	if err := t.own(n); err != nil {
		return err
	}
	h, b, err := t.header(n.Path())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		a, err := newAttribute(name, attrs[name])
		if err != nil {
			return fmt.Errorf("setting attribute %q on %s: %w", name, n.Path(), err)
		}
		h.SetAttribute(a)
	}
	return t.putHeader(b, n.Path(), h)
}

// DeleteAttr removes an attribute from n. Removing a missing attribute is not an error.
func (t *Tx) DeleteAttr(n Node, name string) error {
	if err := t.own(n); err != nil {
		return err
	}
	h, b, err := t.header(n.Path())
	if err != nil {
		return err
	}
	if !h.DeleteAttribute(name) {
		return nil
	}
	return t.putHeader(b, n.Path(), h)
}

// SetAttrs creates or replaces attributes on n in one transaction.
func SetAttrs(n Node, attrs map[string]any) error {
	return n.File().Update(func(tx *Tx) error {
		return tx.SetAttrs(n, attrs)
	})
}

// DeleteAttr removes an attribute from n.
func DeleteAttr(n Node, name string) error {
	return n.File().Update(func(tx *Tx) error {
		return tx.DeleteAttr(n, name)
	})
}
