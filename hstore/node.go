package hstore

import (
	"fmt"
	"path"

	"github.com/robert-malhotra/go-nsid/internal/object"
)

// NodeKind distinguishes the two kinds of objects in a file.
type NodeKind int

const (
	KindGroup NodeKind = iota + 1
	KindDataset
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindDataset:
		return "dataset"
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Node is a group or a dataset. The set of implementations is closed:
// only *Group and *Dataset satisfy it.
type Node interface {
	Kind() NodeKind
	Name() string
	Path() string
	File() *File
	Parent() (*Group, error)
	Attrs() []string
	Attr(name string) *Attribute
	HasAttr(name string) bool

	isNode()
}

// AsGroup returns n as a group if it is one.
func AsGroup(n Node) (*Group, bool) {
	g, ok := n.(*Group)
	return g, ok && g != nil
}

// AsDataset returns n as a dataset if it is one. Types embedding a
// *Dataset are unwrapped.
func AsDataset(n Node) (*Dataset, bool) {
	switch d := n.(type) {
	case *Dataset:
		return d, d != nil
	case interface{ dataset() *Dataset }:
		ds := d.dataset()
		return ds, ds != nil
	}
	return nil, false
}

// SameFile reports whether a and b live in the same file.
func SameFile(a, b Node) bool {
	return a.File().ID() == b.File().ID()
}

// node holds what groups and datasets share: location and a header snapshot.
type node struct {
	file *File
	path string
	h    *object.Header
	gen  uint64
}

func (n *node) isNode() {}

// header returns the object header, reloading it if the file was written
// since the snapshot was taken. A failed reload keeps the old snapshot.
func (n *node) header() *object.Header {
	f := n.file
	if n.gen != f.gen && !f.closed && !f.writing {
		if h, err := f.loadHeader(n.path); err == nil {
			n.h = h
		}
		n.gen = f.gen
	}
	return n.h
}

// Name returns the last component of the path ("/" for the root group).
func (n *node) Name() string {
	if n.path == "/" {
		return "/"
	}
	return path.Base(n.path)
}

// Path returns the full path to this object.
func (n *node) Path() string {
	return n.path
}

// File returns the file containing this object.
func (n *node) File() *File {
	return n.file
}

// Parent returns the group containing this object.
func (n *node) Parent() (*Group, error) {
	if n.path == "/" {
		return nil, fmt.Errorf("root group has no parent: %w", ErrNotFound)
	}
	return n.file.OpenGroup(path.Dir(n.path))
}

// Attrs returns the attribute names in creation order.
func (n *node) Attrs() []string {
	var names []string
	for _, a := range n.header().Attributes {
		names = append(names, a.Name)
	}
	return names
}

// Attr returns an attribute by name, or nil if not found.
func (n *node) Attr(name string) *Attribute {
	a := n.header().Attribute(name)
	if a == nil {
		return nil
	}
	return &Attribute{attr: a}
}

// HasAttr returns true if the object has an attribute with the given name.
func (n *node) HasAttr(name string) bool {
	return n.header().Attribute(name) != nil
}
