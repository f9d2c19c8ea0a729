package maindata

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/labeled"
	"github.com/robert-malhotra/go-nsid/nsid"
)

// Read reconstructs the labeled array stored in m. Dimension descriptors
// are read immediately; the values are loaded on first use, so m's file
// must stay open until then.
func Read(m *Main) (*labeled.Array, error) {
	if m == nil || m.Dataset == nil {
		return nil, fmt.Errorf("%w: nil main dataset", nsid.ErrType)
	}

	arr := labeled.NewLazy(m.ReadFloat64, m.Shape()...)
	arr.Quantity = m.Quantity()
	arr.Units = m.Units()
	arr.MainDataName = m.MainDataName()
	arr.DataType = m.DataType()
	arr.Modality = m.Modality()
	arr.Source = m.Source()

	scales, err := m.Dimensions()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", m.Path(), err)
	}
	for axis, s := range scales {
		values, err := s.ReadFloat64()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.Path(), err)
		}
		d := &labeled.Dimension{
			Name:          attrString(s, nsid.AttrName),
			Quantity:      attrString(s, nsid.AttrQuantity),
			Units:         attrString(s, nsid.AttrUnits),
			DimensionType: attrString(s, nsid.AttrDimensionType),
			Values:        values,
		}
		if err := arr.SetDimension(axis, d); err != nil {
			return nil, fmt.Errorf("reading %s: %w", m.Path(), err)
		}
	}
	return arr, nil
}

func attrString(n hstore.Node, name string) string {
	a := n.Attr(name)
	if a == nil {
		return ""
	}
	s, err := a.ReadScalarString()
	if err != nil {
		return ""
	}
	return s
}

// CopyMainAttributes copies quantity and units from src to dst.
func CopyMainAttributes(src, dst *hstore.Dataset) error {
	if src == nil || dst == nil {
		return fmt.Errorf("%w: nil dataset", nsid.ErrType)
	}
	attrs := make(map[string]any, 2)
	for _, name := range []string{nsid.AttrQuantity, nsid.AttrUnits} {
		a := src.Attr(name)
		if a == nil {
			return fmt.Errorf("%s has no %s attribute: %w", src.Path(), name, hstore.ErrNotFound)
		}
		v, err := a.Value()
		if err != nil {
			return fmt.Errorf("reading %s of %s: %w", name, src.Path(), err)
		}
		attrs[name] = v
	}
	return hstore.SetAttrs(dst, attrs)
}

// SourceDataset returns the Main dataset a results group was derived from.
// Results groups are named "<source>-<process>" and sit next to their source.
func SourceDataset(g *hstore.Group) (*Main, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil group", nsid.ErrType)
	}
	parts := strings.Split(g.Name(), "-")
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: group name %q is not of the form <source>-<process>", hstore.ErrInvalidPath, g.Name())
	}
	parent, err := g.Parent()
	if err != nil {
		return nil, err
	}
	src, err := parent.OpenDataset(parts[0])
	if err != nil {
		return nil, fmt.Errorf("source of %s: %w", g.Path(), err)
	}
	return Wrap(src)
}
