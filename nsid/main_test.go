package nsid

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-nsid/hstore"
)

func TestIsMainConformant(t *testing.T) {
	f := newFile(t)
	d := newLinkedMain(t, f.Root(), "image", 4, 5)

	assert.True(t, IsMain(d))

	r := CheckMain(d)
	require.True(t, r.OK())
	assert.Equal(t, "/image", r.Path)
	require.Len(t, r.Axes, 2)
	for i, a := range r.Axes {
		assert.Equal(t, i, a.Axis)
		assert.True(t, a.OK())
		assert.Empty(t, a.Violations)
		require.NotNil(t, a.Scale)
		assert.Equal(t, a.Label, a.Scale.Name())
	}
}

// Each case breaks exactly one condition of a conformant Main dataset.
func TestIsMainSingleViolation(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T, g *hstore.Group) hstore.Node
		check func(t *testing.T, r *Report)
	}{
		{
			name: "axis without scale",
			build: func(t *testing.T, g *hstore.Group) hstore.Node {
				d := newMain(t, g, "m", 3, 4)
				attachRaw(t, d, 0, newScale(t, g, "x", 3))
				return d
			},
			check: func(t *testing.T, r *Report) {
				assert.ErrorIs(t, r.Err, ErrShape)
			},
		},
		{
			name: "scale of wrong length",
			build: func(t *testing.T, g *hstore.Group) hstore.Node {
				d := newMain(t, g, "m", 3, 4)
				attachRaw(t, d, 0, newScale(t, g, "x", 3))
				attachRaw(t, d, 1, newScale(t, g, "y", 5))
				return d
			},
			check: func(t *testing.T, r *Report) {
				assert.True(t, r.Axes[0].OK())
				assert.False(t, r.Axes[1].LengthOK)
				assert.True(t, r.Axes[1].KindOK)
				assert.True(t, r.Axes[1].AttrsOK)
			},
		},
		{
			name: "scale missing an attribute",
			build: func(t *testing.T, g *hstore.Group) hstore.Node {
				d := newLinkedMain(t, g, "m", 3, 4)
				s, err := g.OpenDataset("m_dim1")
				require.NoError(t, err)
				require.NoError(t, hstore.DeleteAttr(s, AttrDimensionType))
				return d
			},
			check: func(t *testing.T, r *Report) {
				assert.False(t, r.Axes[1].AttrsOK)
				assert.True(t, r.Axes[1].LengthOK)
				assert.Equal(t, Violations{{Reason: ReasonMissingAttr, Attr: AttrDimensionType}}, r.Axes[1].Violations)
			},
		},
		{
			name: "label resolves to a group",
			build: func(t *testing.T, g *hstore.Group) hstore.Node {
				d := newLinkedMain(t, g, "m", 3, 4)
				_, err := g.CreateGroup("grp")
				require.NoError(t, err)
				require.NoError(t, hstore.SetAxisLabel(d, 0, "grp"))
				return d
			},
			check: func(t *testing.T, r *Report) {
				assert.False(t, r.Axes[0].KindOK)
				assert.False(t, r.Axes[0].LengthOK)
				assert.Equal(t, "grp", r.Axes[0].Label)
				assert.True(t, r.Axes[1].OK())
			},
		},
		{
			name: "mandatory attribute not a string",
			build: func(t *testing.T, g *hstore.Group) hstore.Node {
				d := newLinkedMain(t, g, "m", 3)
				require.NoError(t, hstore.SetAttrs(d, map[string]any{AttrUnits: 1.5}))
				return d
			},
			check: func(t *testing.T, r *Report) {
				assert.Equal(t, []string{AttrUnits}, r.NonStringAttrs)
				assert.Empty(t, r.MissingAttrs)
			},
		},
		{
			name: "group candidate",
			build: func(t *testing.T, g *hstore.Group) hstore.Node {
				sub, err := g.CreateGroup("sub")
				require.NoError(t, err)
				return sub
			},
			check: func(t *testing.T, r *Report) {
				assert.ErrorIs(t, r.Err, ErrType)
				assert.Equal(t, "/sub", r.Path)
			},
		},
	}

	for _, name := range MainAttrs {
		tests = append(tests, struct {
			name  string
			build func(t *testing.T, g *hstore.Group) hstore.Node
			check func(t *testing.T, r *Report)
		}{
			name: "missing " + name,
			build: func(t *testing.T, g *hstore.Group) hstore.Node {
				d := newLinkedMain(t, g, "m", 3, 4)
				require.NoError(t, hstore.DeleteAttr(d, name))
				return d
			},
			check: func(t *testing.T, r *Report) {
				assert.Equal(t, []string{name}, r.MissingAttrs)
				for i := range r.Axes {
					assert.True(t, r.Axes[i].OK())
				}
			},
		})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFile(t)
			n := tt.build(t, f.Root())
			assert.False(t, IsMain(n))
			r := CheckMain(n)
			assert.False(t, r.OK())
			tt.check(t, r)
		})
	}
}

func TestIsMainNil(t *testing.T) {
	assert.False(t, IsMain(nil))
	assert.ErrorIs(t, CheckMain(nil).Err, ErrType)
}

func TestIsMainLogsEveryFailingAxis(t *testing.T) {
	f := newFile(t)
	g := f.Root()
	d := newMain(t, g, "m", 3, 4, 5)
	attachRaw(t, d, 0, newScale(t, g, "x", 2))
	attachRaw(t, d, 1, newScale(t, g, "y", 4))
	attachRaw(t, d, 2, newScale(t, g, "z", 6))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	require.False(t, IsMain(d, WithLogger(logger)))
	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "dimension scale rejected"))
	assert.Contains(t, out, "axis=0")
	assert.Contains(t, out, "axis=2")
	assert.NotContains(t, out, "axis=1")
	assert.Contains(t, out, "axes_wrong_length")
}

func TestCheckMainUnresolvedAxis(t *testing.T) {
	f := newFile(t)
	g := f.Root()
	d := newLinkedMain(t, g, "m", 3, 4)
	require.NoError(t, g.Delete("m_dim0"))

	r := CheckMain(d)
	require.NoError(t, r.Err)
	ax := r.Axes[0]
	assert.Nil(t, ax.Scale)
	assert.False(t, ax.KindOK)
	assert.False(t, ax.LengthOK)
	assert.False(t, ax.AttrsOK)
	assert.True(t, r.Axes[1].OK())

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	require.False(t, IsMain(d, WithLogger(logger)))
	assert.Contains(t, buf.String(), "axes_bad_attributes=[0]")
}

func TestValidateMainDset(t *testing.T) {
	f := newFile(t)
	g := f.Root()
	linked := newLinkedMain(t, g, "linked", 2, 3)
	bare := newMain(t, g, "bare", 2, 3)

	require.NoError(t, ValidateMainDset(linked, true))
	assert.ErrorIs(t, ValidateMainDset(bare, true), ErrShape)
	assert.ErrorIs(t, ValidateMainDset(g, true), ErrType)
	assert.ErrorIs(t, ValidateMainDset([]float64{1}, true), ErrType)
	assert.ErrorIs(t, ValidateMainDset(nil, true), ErrType)
	assert.ErrorIs(t, ValidateMainDset((*hstore.Dataset)(nil), true), ErrType)

	// in-memory candidates must not be persisted
	assert.ErrorIs(t, ValidateMainDset(linked, false), ErrType)
}
