package hstore

import (
	"errors"
)

// ErrStopWalk can be returned from a WalkFunc or WalkAttrsFunc to stop
// walking without an error.
var ErrStopWalk = errors.New("walk stopped")

// WalkFunc is called for each object during traversal.
// path is the full path to the object.
// obj is a *Group or *Dataset, nil if err is set.
// err is any error encountered opening the object.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(path string, obj Node, err error) error

// Walk traverses all objects (groups and datasets) in the hierarchy starting from g.
// The callback is called for each group and dataset, including the starting group.
// Members are visited in lexicographic order, depth first, so the traversal
// order of an unchanged file is deterministic.
//
// Example:
//
//	Walk(root, func(path string, obj Node, err error) error {
//	    if err != nil {
//	        return err // or skip: return nil
//	    }
//	    if ds, ok := AsDataset(obj); ok {
//	        fmt.Println("Dataset:", path, "shape:", ds.Shape())
//	    }
//	    return nil
//	})
func Walk(g *Group, fn WalkFunc) error {
	err := walkGroup(g, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

// walkGroup recursively walks a group and its children.
func walkGroup(g *Group, fn WalkFunc) error {
	if err := fn(g.Path(), g, nil); err != nil {
		return err
	}

	members, err := g.Members()
	if err != nil {
		return err
	}

	for _, name := range members {
		childPath := JoinPath(g.Path(), name)

		child, err := g.Open(name)
		if err != nil {
			if err := fn(childPath, nil, err); err != nil {
				return err
			}
			continue
		}

		if sub, ok := AsGroup(child); ok {
			if err := walkGroup(sub, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(childPath, child, nil); err != nil {
			return err
		}
	}

	return nil
}

// AttrInfo contains information about an attribute during walking.
type AttrInfo struct {
	// Path is the full attribute path (e.g., "/group/dataset@attr")
	Path string

	// ObjectPath is the path to the object containing this attribute
	ObjectPath string

	// ObjectKind is the kind of the object containing this attribute
	ObjectKind NodeKind

	// Name is the attribute name
	Name string

	// Attr provides access to the full attribute for detailed reading
	Attr *Attribute

	// Value contains the auto-read attribute value (nil on read error)
	Value any

	// Err contains any error from reading the attribute value
	Err error
}

// WalkAttrsFunc is the callback function type for WalkAttrs.
// Return nil to continue walking, or an error to stop.
type WalkAttrsFunc func(info AttrInfo) error

// WalkAttrs recursively walks all attributes in the file.
// The callback is called for each attribute on groups and datasets.
//
// Example:
//
//	f.WalkAttrs(func(info hstore.AttrInfo) error {
//	    fmt.Printf("%s = %v\n", info.Path, info.Value)
//	    return nil
//	})
func (f *File) WalkAttrs(fn WalkAttrsFunc) error {
	if f.closed {
		return ErrClosed
	}
	return Walk(f.root, func(p string, obj Node, err error) error {
		if err != nil {
			// Skip objects we can't open
			return nil
		}
		for _, name := range obj.Attrs() {
			attr := obj.Attr(name)
			info := AttrInfo{
				Path:       JoinAttrPath(p, name),
				ObjectPath: p,
				ObjectKind: obj.Kind(),
				Name:       name,
				Attr:       attr,
			}
			if attr != nil {
				info.Value, info.Err = attr.Value()
			}
			if err := fn(info); err != nil {
				return err
			}
		}
		return nil
	})
}
