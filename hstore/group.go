package hstore

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// Group represents a group: a container of named groups and datasets.
type Group struct {
	node
}

// Kind returns KindGroup.
func (g *Group) Kind() NodeKind {
	return KindGroup
}

// Members returns the names of all members (groups and datasets) in this
// group, in lexicographic byte order.
func (g *Group) Members() ([]string, error) {
	if g.file.closed {
		return nil, ErrClosed
	}
	var names []string
	err := g.file.db.View(func(tx *bolt.Tx) error {
		b, err := bucketFor(tx, g.path)
		if err != nil {
			return err
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			// nested buckets have nil values; header and data keys do not
			if v == nil {
				names = append(names, string(k))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", g.path, err)
	}
	return names, nil
}

// NumObjects returns the number of objects in this group.
func (g *Group) NumObjects() (int, error) {
	members, err := g.Members()
	if err != nil {
		return 0, err
	}
	return len(members), nil
}

// Has returns true if the group has a direct member with the given name.
func (g *Group) Has(name string) bool {
	if validName(name) != nil || g.file.closed {
		return false
	}
	found := false
	g.file.db.View(func(tx *bolt.Tx) error {
		b, err := bucketFor(tx, g.path)
		if err == nil {
			found = b.Bucket([]byte(name)) != nil
		}
		return nil
	})
	return found
}

// Open opens a group or dataset by path relative to g. Absolute paths are
// resolved from the root group.
func (g *Group) Open(relativePath string) (Node, error) {
	if g.file.closed {
		return nil, ErrClosed
	}
	p := relativePath
	if len(p) == 0 || p[0] != '/' {
		p = JoinPath(g.path, p)
	}
	p = CleanPath(p)

	h, err := g.file.loadHeader(p)
	if err != nil {
		return nil, err
	}
	return g.file.newNode(p, h), nil
}

// OpenGroup opens a subgroup by relative path.
func (g *Group) OpenGroup(relativePath string) (*Group, error) {
	obj, err := g.Open(relativePath)
	if err != nil {
		return nil, err
	}
	group, ok := AsGroup(obj)
	if !ok {
		return nil, fmt.Errorf("%s: %w", obj.Path(), ErrNotGroup)
	}
	return group, nil
}

// OpenDataset opens a dataset by relative path.
func (g *Group) OpenDataset(relativePath string) (*Dataset, error) {
	obj, err := g.Open(relativePath)
	if err != nil {
		return nil, err
	}
	dataset, ok := AsDataset(obj)
	if !ok {
		return nil, fmt.Errorf("%s: %w", obj.Path(), ErrNotDataset)
	}
	return dataset, nil
}

// CreateGroup creates a new subgroup with the given name.
func (g *Group) CreateGroup(name string) (*Group, error) {
	var out *Group
	err := g.file.Update(func(tx *Tx) error {
		var err error
		out, err = tx.CreateGroup(g, name)
		return err
	})
	return out, err
}

// Delete removes the named member and everything below it.
func (g *Group) Delete(name string) error {
	return g.file.Update(func(tx *Tx) error {
		return tx.Delete(g, name)
	})
}
