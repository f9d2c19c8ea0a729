package labeled

import "fmt"

// Dimension types commonly used for DimensionType.
const (
	DimensionSpatial    = "spatial"
	DimensionSpectral   = "spectral"
	DimensionTemporal   = "temporal"
	DimensionReciprocal = "reciprocal"
	DimensionUnknown    = "UNKNOWN"
)

// Generic is the placeholder used for descriptive strings that were not set.
const Generic = "generic"

// Dimension describes one axis of an Array before it is written out as a
// dimension scale.
type Dimension struct {
	Name          string
	Quantity      string
	Units         string
	DimensionType string
	Values        []float64
}

// NewDimension returns a descriptor with generic quantity and units and an
// unknown dimension type.
func NewDimension(name string, values []float64) *Dimension {
	return &Dimension{
		Name:          name,
		Quantity:      Generic,
		Units:         Generic,
		DimensionType: DimensionUnknown,
		Values:        values,
	}
}

// Arange returns 0, 1, ..., n-1.
func Arange(n uint64) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = float64(i)
	}
	return vals
}

// Len returns the number of coordinate values.
func (d *Dimension) Len() uint64 {
	return uint64(len(d.Values))
}

func (d *Dimension) String() string {
	return fmt.Sprintf("%s: %s (%s) of size %d, %s", d.Name, d.Quantity, d.Units, len(d.Values), d.DimensionType)
}
