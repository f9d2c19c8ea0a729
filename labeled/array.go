package labeled

import (
	"errors"
	"fmt"
)

var (
	ErrShape = errors.New("labeled: shape mismatch")
	ErrAxis  = errors.New("labeled: axis out of range")
)

// Loader produces the values of a lazily evaluated Array.
type Loader func() ([]float64, error)

// Array is an N-dimensional array with per-axis descriptors and the six
// descriptive attributes of a Main dataset.
type Array struct {
	Shape []uint64
	Dims  []*Dimension

	Quantity     string
	Units        string
	Source       string
	MainDataName string
	DataType     string
	Modality     string

	data   []float64
	loader Loader
}

// New wraps data, which must hold exactly the product of shape elements.
func New(data []float64, shape ...uint64) (*Array, error) {
	a := newArray(shape)
	if uint64(len(data)) != a.NumElements() {
		return nil, fmt.Errorf("%w: %d values for shape %v", ErrShape, len(data), shape)
	}
	a.data = data
	return a, nil
}

// NewLazy returns an Array whose values are produced by load on first use.
func NewLazy(load Loader, shape ...uint64) *Array {
	a := newArray(shape)
	a.loader = load
	return a
}

func newArray(shape []uint64) *Array {
	return &Array{
		Shape:        append([]uint64(nil), shape...),
		Dims:         make([]*Dimension, len(shape)),
		Quantity:     Generic,
		Units:        Generic,
		Source:       Generic,
		MainDataName: Generic,
		DataType:     DimensionUnknown,
		Modality:     Generic,
	}
}

// Rank returns the number of axes.
func (a *Array) Rank() int {
	return len(a.Shape)
}

// NumElements returns the product of the shape.
func (a *Array) NumElements() uint64 {
	n := uint64(1)
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// IsLazy reports whether the values have not been materialized yet.
func (a *Array) IsLazy() bool {
	return a.data == nil && a.loader != nil
}

// NumDimensions returns how many axes currently carry a descriptor.
func (a *Array) NumDimensions() int {
	n := 0
	for _, d := range a.Dims {
		if d != nil {
			n++
		}
	}
	return n
}

// Values returns the values in row-major order, running the loader if the
// array is lazy.
func (a *Array) Values() ([]float64, error) {
	if a.IsLazy() {
		data, err := a.loader()
		if err != nil {
			return nil, fmt.Errorf("loading values: %w", err)
		}
		if uint64(len(data)) != a.NumElements() {
			return nil, fmt.Errorf("%w: loader returned %d values for shape %v", ErrShape, len(data), a.Shape)
		}
		a.data = data
	}
	return a.data, nil
}

// Dimension returns the descriptor of the given axis, nil if unset.
func (a *Array) Dimension(axis int) *Dimension {
	if axis < 0 || axis >= len(a.Dims) {
		return nil
	}
	return a.Dims[axis]
}

// SetDimension sets the descriptor of the given axis. The descriptor must
// have one value per element along that axis.
func (a *Array) SetDimension(axis int, d *Dimension) error {
	if axis < 0 || axis >= a.Rank() {
		return fmt.Errorf("%w: axis %d of %d", ErrAxis, axis, a.Rank())
	}
	if d == nil {
		a.Dims[axis] = nil
		return nil
	}
	if d.Len() != a.Shape[axis] {
		return fmt.Errorf("%w: dimension %q has %d values, axis %d has length %d",
			ErrShape, d.Name, d.Len(), axis, a.Shape[axis])
	}
	a.Dims[axis] = d
	return nil
}

// SetGenericDimensions fills every unset axis with a descriptor named a, b,
// c, ... holding 0..n-1.
func (a *Array) SetGenericDimensions() {
	for i, d := range a.Dims {
		if d != nil {
			continue
		}
		a.Dims[i] = NewDimension(axisName(i), Arange(a.Shape[i]))
	}
}

func axisName(i int) string {
	name := ""
	for {
		name = string(rune('a'+i%26)) + name
		i = i/26 - 1
		if i < 0 {
			return name
		}
	}
}
