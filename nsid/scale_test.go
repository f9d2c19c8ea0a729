package nsid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-nsid/hstore"
)

func TestValidateScale(t *testing.T) {
	f := newFile(t)
	root := f.Root()

	good := newScale(t, root, "good", 32)
	short := newScale(t, root, "short", 30)

	flat, err := root.CreateDataset("flat", [][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	require.NoError(t, hstore.SetAttrs(flat, scaleAttrs("flat")))

	noUnits := newScale(t, root, "no_units", 32)
	require.NoError(t, hstore.DeleteAttr(noUnits, AttrUnits))

	numericUnits := newScale(t, root, "numeric_units", 32)
	require.NoError(t, hstore.SetAttrs(numericUnits, map[string]any{AttrUnits: 5}))

	listName := newScale(t, root, "list_name", 32)
	require.NoError(t, hstore.SetAttrs(listName, map[string]any{AttrName: []string{"a", "b"}}))

	grp, err := root.CreateGroup("grp")
	require.NoError(t, err)

	tests := []struct {
		name   string
		node   hstore.Node
		length uint64
		want   Violations
	}{
		{"conformant", good, 32, nil},
		{"wrong length", short, 32, Violations{{Reason: ReasonLength, Got: 30, Want: 32}}},
		{"rank 2", flat, 3, Violations{{Reason: ReasonRank, Got: 2, Want: 1}}},
		{"missing attribute", noUnits, 32, Violations{{Reason: ReasonMissingAttr, Attr: AttrUnits}}},
		{"numeric attribute", numericUnits, 32, Violations{{Reason: ReasonAttrNotString, Attr: AttrUnits}}},
		{"list attribute", listName, 32, Violations{{Reason: ReasonAttrNotString, Attr: AttrName}}},
		{"group", grp, 32, Violations{
			{Reason: ReasonNotDataset},
			{Reason: ReasonMissingAttr, Attr: AttrName},
			{Reason: ReasonMissingAttr, Attr: AttrQuantity},
			{Reason: ReasonMissingAttr, Attr: AttrUnits},
			{Reason: ReasonMissingAttr, Attr: AttrDimensionType},
		}},
		{"nil", nil, 32, Violations{{Reason: ReasonNotDataset}}},
		{"nil group", (*hstore.Group)(nil), 32, Violations{{Reason: ReasonNotDataset}}},
		{"nil dataset", (*hstore.Dataset)(nil), 32, Violations{{Reason: ReasonNotDataset}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateScale(tt.node, tt.length)
			assert.Equal(t, tt.want, got)

			// the text form must agree with the structured form
			msg := ValidateDimensions(tt.node, tt.length)
			assert.Equal(t, got.OK(), msg == "")
			assert.Equal(t, got.String(), msg)
		})
	}
}

func TestValidateScaleAccumulates(t *testing.T) {
	f := newFile(t)
	d, err := f.Root().CreateDataset("bare", []float64{1, 2, 3})
	require.NoError(t, err)

	vs := ValidateScale(d, 4)
	require.Len(t, vs, 5)
	assert.True(t, vs.Has(ReasonLength))
	assert.True(t, vs.Has(ReasonMissingAttr))
	assert.False(t, vs.Has(ReasonRank))
	assert.Equal(t,
		"dimension has length 3, want 4; missing name attribute; missing quantity attribute; "+
			"missing units attribute; missing dimension_type attribute",
		vs.String())
}

func TestViolationStrings(t *testing.T) {
	tests := []struct {
		v    Violation
		want string
	}{
		{Violation{Reason: ReasonNotDataset}, "dimension must be a dataset"},
		{Violation{Reason: ReasonRank, Got: 3, Want: 1}, "dimension has rank 3, want 1"},
		{Violation{Reason: ReasonAttrNotString, Attr: "units"}, "units attribute should be a string"},
		{Violation{Reason: ReasonDuplicateName, Attr: "x"}, `dimension name "x" is used more than once`},
		{Violation{Reason: ReasonNameTaken, Attr: "x"}, `"x" already exists and is not a matching dimension scale`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
	assert.Equal(t, "length", ReasonLength.String())
	assert.Equal(t, "", Violations(nil).String())
}
