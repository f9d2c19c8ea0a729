package nsid

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-nsid/hstore"
)

// LinkAsMain attaches one dimension scale per axis to main. dims must map
// every axis 0..rank-1 to a dataset. Every scale is validated against its
// axis and names are checked for uniqueness before anything is written.
// Scales from another file are copied into main's parent group. Copies,
// scale marking, labels and links are committed in one transaction, so
// either every axis is linked or none is.
//
// The returned dataset is main; whether it is now a Main dataset also
// depends on its own attributes, see IsMain.
func LinkAsMain(main hstore.Node, dims map[int]hstore.Node) (*hstore.Dataset, error) {
	d, ok := hstore.AsDataset(main)
	if !ok {
		return nil, fmt.Errorf("%w: main must be a dataset, got %s", ErrType, describe(main))
	}

	shape := d.Shape()
	rank := len(shape)
	if len(dims) != rank {
		return nil, fmt.Errorf("%w: %d dimensions given for %s of shape %v", ErrShape, len(dims), d.Path(), shape)
	}
	for axis := range dims {
		if axis < 0 || axis >= rank {
			return nil, fmt.Errorf("%w: axis %d outside 0..%d", ErrKey, axis, rank-1)
		}
	}

	scales := make([]*hstore.Dataset, rank)
	for axis := range scales {
		s, ok := hstore.AsDataset(dims[axis])
		if !ok {
			return nil, fmt.Errorf("%w: dimension %d must be a dataset, got %s", ErrType, axis, describe(dims[axis]))
		}
		scales[axis] = s
	}

	var errs []error
	for axis, s := range scales {
		if vs := ValidateScale(s, shape[axis]); !vs.OK() {
			errs = append(errs, &AxisError{Axis: axis, Violations: vs})
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("linking %s: %w", d.Path(), errors.Join(errs...))
	}

	names := make([]string, rank)
	seen := make(map[string]int, rank)
	for axis, s := range scales {
		name := scaleName(s)
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q on dimensions %d and %d", ErrDuplicateName, name, prev, axis)
		}
		seen[name] = axis
		names[axis] = name
	}

	parent, err := d.Parent()
	if err != nil {
		return nil, fmt.Errorf("linking %s: %w", d.Path(), err)
	}

	err = d.File().Update(func(tx *hstore.Tx) error {
		return LinkScales(tx, d, parent, scales, names)
	})
	if err != nil {
		return nil, fmt.Errorf("linking %s: %w", d.Path(), err)
	}
	return d, nil
}

// LinkScales marks scales[axis] as a dimension scale named names[axis],
// labels that axis of main and links it, inside tx. Scales from another
// file are copied into parent first. Nothing is validated.
func LinkScales(tx *hstore.Tx, main *hstore.Dataset, parent *hstore.Group, scales []*hstore.Dataset, names []string) error {
	f := main.File()
	for axis, s := range scales {
		if s.File() != f {
			cp, err := tx.CopyDataset(s, parent)
			if err != nil {
				return fmt.Errorf("dimension %d: %w", axis, err)
			}
			s = cp
		}
		if err := tx.MakeScale(s, names[axis]); err != nil {
			return fmt.Errorf("dimension %d: %w", axis, err)
		}
		if err := tx.SetAxisLabel(main, axis, names[axis]); err != nil {
			return fmt.Errorf("dimension %d: %w", axis, err)
		}
		if err := tx.AttachScale(main, axis, s); err != nil {
			return fmt.Errorf("dimension %d: %w", axis, err)
		}
	}
	return nil
}
