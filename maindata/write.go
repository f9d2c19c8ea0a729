package maindata

import (
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/labeled"
	"github.com/robert-malhotra/go-nsid/nsid"
)

// WriteOption configures Write.
type WriteOption func(*writeOptions)

type writeOptions struct {
	clock  clockwork.Clock
	logger *slog.Logger
}

// WithClock sets the clock used for the book-keeping timestamp.
func WithClock(c clockwork.Clock) WriteOption {
	return func(o *writeOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger logs the planned action for every axis at debug level.
func WithLogger(l *slog.Logger) WriteOption {
	return func(o *writeOptions) {
		o.logger = l
	}
}

// Write stores arr in g as a Main dataset named name. Each dimension
// descriptor becomes a scale dataset in g, or reuses a matching scale that
// is already there. Everything is validated first and written in a single
// transaction; on error nothing is written.
func Write(g *hstore.Group, name string, arr *labeled.Array, opts ...WriteOption) (*Main, error) {
	o := &writeOptions{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(o)
	}

	if g == nil {
		return nil, fmt.Errorf("%w: nil group", nsid.ErrType)
	}
	if err := nsid.ValidateMainDset(arr, false); err != nil {
		return nil, fmt.Errorf("writing %s: %w", name, err)
	}
	if g.Has(name) {
		return nil, fmt.Errorf("writing %s: %w", hstore.JoinPath(g.Path(), name), hstore.ErrExists)
	}

	dims := make(map[int]nsid.Dim, arr.Rank())
	for axis, d := range arr.Dims {
		dims[axis] = nsid.DescriptorDim(d)
	}
	plan, err := nsid.PlanDimensions(arr.Shape, dims, g)
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", name, err)
	}
	for i := range plan.Axes {
		a := &plan.Axes[i]
		if a.Name == name {
			return nil, fmt.Errorf("writing %s: %w: %q names both the dataset and dimension %d",
				name, nsid.ErrDuplicateName, name, a.Axis)
		}
		if o.logger != nil {
			o.logger.Debug("dimension", "name", a.Name, "axis", a.Axis, "action", a.Action.String(), "ok", a.OK())
		}
	}
	if err := plan.Err(); err != nil {
		return nil, fmt.Errorf("writing %s: %w", name, err)
	}

	values, err := arr.Values()
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", name, err)
	}

	attrs := map[string]any{
		nsid.AttrQuantity:     arr.Quantity,
		nsid.AttrUnits:        arr.Units,
		nsid.AttrMainDataName: arr.MainDataName,
		nsid.AttrDataType:     arr.DataType,
		nsid.AttrModality:     arr.Modality,
		nsid.AttrSource:       arr.Source,
	}
	for k, v := range nsid.BookKeeping(o.clock) {
		attrs[k] = v
	}

	var main *hstore.Dataset
	err = g.File().Update(func(tx *hstore.Tx) error {
		scales := make([]*hstore.Dataset, len(plan.Axes))
		names := make([]string, len(plan.Axes))
		for i, a := range plan.Axes {
			names[i] = a.Name
			if a.Action == nsid.ActionReuse {
				scales[i] = a.Scale
				continue
			}
			s, err := createScale(tx, g, a.Descriptor)
			if err != nil {
				return err
			}
			scales[i] = s
		}

		d, err := tx.CreateDatasetWithType(g, name, arr.Shape, hstore.FloatType(8))
		if err != nil {
			return err
		}
		if err := tx.Write(d, values); err != nil {
			return err
		}
		if err := tx.SetAttrs(d, attrs); err != nil {
			return err
		}
		if err := nsid.LinkScales(tx, d, g, scales, names); err != nil {
			return err
		}
		main = d
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", name, err)
	}
	return Wrap(main)
}

func createScale(tx *hstore.Tx, g *hstore.Group, d *labeled.Dimension) (*hstore.Dataset, error) {
	return tx.CreateDataset(g, d.Name, d.Values,
		hstore.WithAttribute(nsid.AttrName, d.Name),
		hstore.WithAttribute(nsid.AttrQuantity, d.Quantity),
		hstore.WithAttribute(nsid.AttrUnits, d.Units),
		hstore.WithAttribute(nsid.AttrDimensionType, d.DimensionType),
	)
}

// CreateEmpty creates a zero-filled float64 dataset of the given shape, to
// be filled and linked later.
func CreateEmpty(g *hstore.Group, name string, shape []uint64) (*hstore.Dataset, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil group", nsid.ErrType)
	}
	for _, n := range shape {
		if n == 0 {
			return nil, fmt.Errorf("%w: shape %v has an empty axis", nsid.ErrShape, shape)
		}
	}
	return g.CreateDatasetWithType(name, shape, hstore.FloatType(8))
}
