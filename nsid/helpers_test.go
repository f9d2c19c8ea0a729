package nsid

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/labeled"
)

func newFile(t *testing.T) *hstore.File {
	t.Helper()
	f, err := hstore.Create(filepath.Join(t.TempDir(), "data.nsid"))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func scaleAttrs(name string) map[string]any {
	return map[string]any{
		AttrName:          name,
		AttrQuantity:      "Length",
		AttrUnits:         "um",
		AttrDimensionType: labeled.DimensionSpatial,
	}
}

func mainAttrs() map[string]any {
	return map[string]any{
		AttrQuantity:     "Intensity",
		AttrUnits:        "counts",
		AttrMainDataName: "Image",
		AttrDataType:     "SPECTRAL_IMAGE",
		AttrModality:     "STEM",
		AttrSource:       "test",
	}
}

// newScale writes a conformant scale of length n named name.
func newScale(t *testing.T, g *hstore.Group, name string, n uint64) *hstore.Dataset {
	t.Helper()
	d, err := g.CreateDataset(name, labeled.Arange(n))
	require.NoError(t, err)
	require.NoError(t, hstore.SetAttrs(d, scaleAttrs(name)))
	return d
}

// newMain writes a zero-filled dataset carrying the six Main attributes but
// no scales.
func newMain(t *testing.T, g *hstore.Group, name string, shape ...uint64) *hstore.Dataset {
	t.Helper()
	d, err := g.CreateDatasetWithType(name, shape, hstore.FloatType(8))
	require.NoError(t, err)
	require.NoError(t, hstore.SetAttrs(d, mainAttrs()))
	return d
}

// newLinkedMain writes a complete Main dataset with one scale per axis
// named <name>_dim<axis>.
func newLinkedMain(t *testing.T, g *hstore.Group, name string, shape ...uint64) *hstore.Dataset {
	t.Helper()
	d := newMain(t, g, name, shape...)
	dims := make(map[int]hstore.Node, len(shape))
	for axis, n := range shape {
		dims[axis] = newScale(t, g, fmt.Sprintf("%s_dim%d", name, axis), n)
	}
	_, err := LinkAsMain(d, dims)
	require.NoError(t, err)
	return d
}

// attachRaw links scale to main's axis with the storage primitives only,
// bypassing validation.
func attachRaw(t *testing.T, main *hstore.Dataset, axis int, scale *hstore.Dataset) {
	t.Helper()
	require.NoError(t, hstore.MakeScale(scale, scale.Name()))
	require.NoError(t, hstore.SetAxisLabel(main, axis, scale.Name()))
	require.NoError(t, hstore.AttachScale(main, axis, scale))
}
