package hstore

import (
	"fmt"

	"github.com/robert-malhotra/go-nsid/internal/object"
)

// linkAttrs name the attributes that point at other objects by path; they
// are meaningless in a copy and are not carried over.
var linkAttrs = []string{AttrDimensionList, AttrReferenceList, AttrDimensionLabels}

// CopyDataset copies src, attributes and data, into dst under the same name.
// src may belong to another file and is left untouched.
func CopyDataset(src *Dataset, dst *Group) (*Dataset, error) {
	var out *Dataset
	err := dst.File().Update(func(tx *Tx) error {
		var err error
		out, err = tx.CopyDataset(src, dst)
		return err
	})
	return out, err
}

// CopyDataset copies src into dst inside the transaction.
func (t *Tx) CopyDataset(src *Dataset, dst *Group) (*Dataset, error) {
	if err := t.own(dst); err != nil {
		return nil, err
	}

	var (
		h   *object.Header
		raw []byte
	)
	if src.File() == t.file {
		sh, b, err := t.header(src.Path())
		if err != nil {
			return nil, err
		}
		h = sh
		raw = append([]byte(nil), b.Get(rawKey)...)
	} else {
		var err error
		if raw, err = src.ReadRaw(); err != nil {
			return nil, fmt.Errorf("copying %s: %w", src.Path(), err)
		}
		h = src.header().Clone()
	}
	if h.Kind != object.KindDataset {
		return nil, fmt.Errorf("copying %s: %w", src.Path(), ErrNotDataset)
	}

	for _, name := range linkAttrs {
		h.DeleteAttribute(name)
	}

	n, err := t.createMember(dst.Path(), src.Name(), h, raw)
	if err != nil {
		return nil, fmt.Errorf("copying %s: %w", src.Path(), err)
	}
	return n.(*Dataset), nil
}
