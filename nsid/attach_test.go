package nsid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-nsid/hstore"
)

func assertNothingAttached(t *testing.T, main *hstore.Dataset, scales ...*hstore.Dataset) {
	t.Helper()
	assert.Equal(t, 0, hstore.NumAttached(main))
	for _, l := range hstore.AxisLabels(main) {
		assert.Empty(t, l)
	}
	for _, s := range scales {
		assert.False(t, hstore.IsScale(s), "%s marked as scale", s.Path())
		assert.Empty(t, hstore.References(s))
	}
}

func TestLinkAsMainPreconditions(t *testing.T) {
	f := newFile(t)
	g := f.Root()
	d := newMain(t, g, "m", 3, 4)
	x := newScale(t, g, "x", 3)
	y := newScale(t, g, "y", 4)
	grp, err := g.CreateGroup("grp")
	require.NoError(t, err)

	tests := []struct {
		name string
		main hstore.Node
		dims map[int]hstore.Node
		want error
	}{
		{"group main", grp, map[int]hstore.Node{0: x, 1: y}, ErrType},
		{"nil main", nil, map[int]hstore.Node{0: x, 1: y}, ErrType},
		{"too few", d, map[int]hstore.Node{0: x}, ErrShape},
		{"too many", d, map[int]hstore.Node{0: x, 1: y, 2: y}, ErrShape},
		{"gap", d, map[int]hstore.Node{0: x, 2: y}, ErrKey},
		{"negative", d, map[int]hstore.Node{-1: x, 1: y}, ErrKey},
		{"group scale", d, map[int]hstore.Node{0: x, 1: grp}, ErrType},
		{"nil scale", d, map[int]hstore.Node{0: x, 1: nil}, ErrType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LinkAsMain(tt.main, tt.dims)
			require.ErrorIs(t, err, tt.want)
			assertNothingAttached(t, d, x, y)
		})
	}
}

func TestLinkAsMainInvalidAxisAttachesNothing(t *testing.T) {
	f := newFile(t)
	g := f.Root()
	d := newMain(t, g, "m", 10, 10, 32)
	x := newScale(t, g, "x", 10)
	y := newScale(t, g, "y", 10)
	short := newScale(t, g, "spectrum", 30)

	_, err := LinkAsMain(d, map[int]hstore.Node{0: x, 1: y, 2: short})
	require.ErrorIs(t, err, ErrContent)

	var axisErr *AxisError
	require.True(t, errors.As(err, &axisErr))
	assert.Equal(t, 2, axisErr.Axis)
	assert.Equal(t, Violations{{Reason: ReasonLength, Got: 30, Want: 32}}, axisErr.Violations)

	assertNothingAttached(t, d, x, y, short)
	assert.False(t, IsMain(d))
}

func TestLinkAsMainReportsEveryInvalidAxis(t *testing.T) {
	f := newFile(t)
	g := f.Root()
	d := newMain(t, g, "m", 3, 4)
	x := newScale(t, g, "x", 2)
	y := newScale(t, g, "y", 4)
	require.NoError(t, hstore.DeleteAttr(y, AttrQuantity))

	_, err := LinkAsMain(d, map[int]hstore.Node{0: x, 1: y})
	require.ErrorIs(t, err, ErrContent)
	assert.Contains(t, err.Error(), "dimension 0: dimension has length 2, want 3")
	assert.Contains(t, err.Error(), "dimension 1: missing quantity attribute")
	assertNothingAttached(t, d, x, y)
}

func TestLinkAsMainDuplicateNames(t *testing.T) {
	f := newFile(t)
	g := f.Root()
	d := newMain(t, g, "m", 3, 3)
	a := newScale(t, g, "a", 3)
	b := newScale(t, g, "b", 3)
	require.NoError(t, hstore.SetAttrs(a, map[string]any{AttrName: "x"}))
	require.NoError(t, hstore.SetAttrs(b, map[string]any{AttrName: "x"}))

	_, err := LinkAsMain(d, map[int]hstore.Node{0: a, 1: b})
	require.ErrorIs(t, err, ErrDuplicateName)
	require.ErrorIs(t, err, ErrKey)
	assert.Contains(t, err.Error(), `"x"`)
	assertNothingAttached(t, d, a, b)
}

func TestLinkAsMainCopiesForeignScale(t *testing.T) {
	f := newFile(t)
	g, err := f.Root().CreateGroup("g")
	require.NoError(t, err)
	d := newMain(t, g, "m", 3, 4)
	x := newScale(t, g, "x", 3)

	other := newFile(t)
	src := newScale(t, other.Root(), "energy", 4)
	require.NoError(t, hstore.SetAttrs(src, map[string]any{AttrUnits: "eV", AttrDimensionType: "spectral"}))

	linked, err := LinkAsMain(d, map[int]hstore.Node{0: x, 1: src})
	require.NoError(t, err)
	assert.Same(t, d, linked)
	assert.True(t, IsMain(d))

	cp, err := g.OpenDataset("energy")
	require.NoError(t, err)
	assert.Equal(t, "/g/energy", hstore.DimensionList(d)[1])
	for _, name := range ScaleAttrs {
		want, err := src.Attr(name).ReadScalarString()
		require.NoError(t, err)
		got, err := cp.Attr(name).ReadScalarString()
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
	srcVals, err := src.ReadFloat64()
	require.NoError(t, err)
	cpVals, err := cp.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, srcVals, cpVals)

	// the source is left as it was
	assert.False(t, hstore.IsScale(src))
	assert.Empty(t, hstore.References(src))
	assert.False(t, other.Root().Has("m"))
}

func TestLinkAsMainCopyCollisionRollsBack(t *testing.T) {
	f := newFile(t)
	g := f.Root()
	d := newMain(t, g, "m", 3, 4)
	x := newScale(t, g, "x", 3)
	_, err := g.CreateDataset("energy", []float64{0})
	require.NoError(t, err)

	other := newFile(t)
	src := newScale(t, other.Root(), "energy", 4)

	_, err = LinkAsMain(d, map[int]hstore.Node{0: x, 1: src})
	require.ErrorIs(t, err, hstore.ErrExists)
	assertNothingAttached(t, d, x)
}

func TestLinkAsMainWithoutMainAttributes(t *testing.T) {
	f := newFile(t)
	g := f.Root()
	d, err := g.CreateDatasetWithType("raw", []uint64{3}, hstore.FloatType(8))
	require.NoError(t, err)

	linked, err := LinkAsMain(d, map[int]hstore.Node{0: newScale(t, g, "x", 3)})
	require.NoError(t, err)
	assert.Equal(t, 1, hstore.NumAttached(linked))
	assert.False(t, IsMain(linked))
}

func TestLinkAsMainReplacesScales(t *testing.T) {
	f := newFile(t)
	g := f.Root()
	d := newLinkedMain(t, g, "m", 3)
	old, err := g.OpenDataset("m_dim0")
	require.NoError(t, err)

	_, err = LinkAsMain(d, map[int]hstore.Node{0: newScale(t, g, "t", 3)})
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, hstore.AxisLabels(d))
	assert.Empty(t, hstore.References(old))
	assert.True(t, IsMain(d))
}
