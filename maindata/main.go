// Package maindata provides a handle around datasets that satisfy the Main
// dataset convention, and writes and reads labeled arrays as Main datasets.
package maindata

import (
	"fmt"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/nsid"
)

// ErrNotMain reports a dataset that does not satisfy the Main predicate.
var ErrNotMain = fmt.Errorf("%w: not a main dataset", nsid.ErrType)

// Main is a dataset known to satisfy the Main predicate when it was wrapped.
type Main struct {
	*hstore.Dataset
}

// Wrap returns n as a Main handle, or ErrNotMain describing every failed
// condition.
func Wrap(n hstore.Node) (*Main, error) {
	r := nsid.CheckMain(n)
	if !r.OK() {
		return nil, fmt.Errorf("%w: %s", ErrNotMain, r)
	}
	d, _ := hstore.AsDataset(n)
	return &Main{Dataset: d}, nil
}

// Attach links one dimension scale per axis to n as nsid.LinkAsMain does.
// The result is a *Main when the dataset now satisfies the predicate, and
// the plain *hstore.Dataset otherwise.
func Attach(n hstore.Node, dims map[int]hstore.Node) (hstore.Node, error) {
	d, err := nsid.LinkAsMain(n, dims)
	if err != nil {
		return nil, err
	}
	if m, err := Wrap(d); err == nil {
		return m, nil
	}
	return d, nil
}

// FindMain returns a handle for every Main dataset under container.
func FindMain(container any, opts ...nsid.Option) ([]*Main, error) {
	found, err := nsid.FindMain(container, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]*Main, len(found))
	for i, d := range found {
		out[i] = &Main{Dataset: d}
	}
	return out, nil
}

// FindByName returns every dataset under container named name, as a *Main
// where the predicate holds and as a *hstore.Dataset otherwise.
func FindByName(container any, name string) ([]hstore.Node, error) {
	matches, err := nsid.FindByName(container, name)
	if err != nil {
		return nil, err
	}
	out := make([]hstore.Node, len(matches))
	for i, m := range matches {
		if m.IsMain {
			out[i] = &Main{Dataset: m.Dataset}
		} else {
			out[i] = m.Dataset
		}
	}
	return out, nil
}

// Quantity returns the physical quantity of the values.
func (m *Main) Quantity() string { return m.str(nsid.AttrQuantity) }

// Units returns the units of the values.
func (m *Main) Units() string { return m.str(nsid.AttrUnits) }

// MainDataName returns the human readable name.
func (m *Main) MainDataName() string { return m.str(nsid.AttrMainDataName) }

// DataType returns the data type tag, such as IMAGE or SPECTRUM.
func (m *Main) DataType() string { return m.str(nsid.AttrDataType) }

// Modality returns the modality tag.
func (m *Main) Modality() string { return m.str(nsid.AttrModality) }

// Source returns the source tag.
func (m *Main) Source() string { return m.str(nsid.AttrSource) }

func (m *Main) str(name string) string {
	a := m.Attr(name)
	if a == nil {
		return ""
	}
	s, err := a.ReadScalarString()
	if err != nil {
		return ""
	}
	return s
}

// Labels returns the axis labels.
func (m *Main) Labels() []string {
	return hstore.AxisLabels(m.Dataset)
}

// Dimensions returns the scale attached to each axis.
func (m *Main) Dimensions() ([]*hstore.Dataset, error) {
	out := make([]*hstore.Dataset, m.Rank())
	for axis := range out {
		n, err := hstore.ResolveAxisLabel(m.Dataset, axis)
		if err != nil {
			return nil, err
		}
		d, ok := hstore.AsDataset(n)
		if !ok {
			return nil, fmt.Errorf("%s axis %d resolves to %s: %w", m.Path(), axis, n.Path(), hstore.ErrNotDataset)
		}
		out[axis] = d
	}
	return out, nil
}

func (m *Main) String() string {
	return fmt.Sprintf("%s: %s (%s) of shape %v, %s", m.Path(), m.Quantity(), m.Units(), m.Shape(), m.DataType())
}
