package nsid

import (
	"github.com/robert-malhotra/go-nsid/hstore"
)

// Scale attribute names.
const (
	AttrName          = "name"
	AttrQuantity      = "quantity"
	AttrUnits         = "units"
	AttrDimensionType = "dimension_type"
)

// ScaleAttrs lists the string attributes every dimension scale carries.
var ScaleAttrs = []string{AttrName, AttrQuantity, AttrUnits, AttrDimensionType}

// ValidateScale checks that n can serve as the dimension scale of an axis
// of length expectedLength. All violations are collected.
func ValidateScale(n hstore.Node, expectedLength uint64) Violations {
	d, isDataset := hstore.AsDataset(n)
	if _, isGroup := hstore.AsGroup(n); !isDataset && !isGroup {
		return Violations{{Reason: ReasonNotDataset}}
	}

	var vs Violations
	if !isDataset {
		vs = append(vs, Violation{Reason: ReasonNotDataset})
	} else {
		shape := d.Shape()
		if len(shape) != 1 {
			vs = append(vs, Violation{Reason: ReasonRank, Got: uint64(len(shape)), Want: 1})
		}
		var length uint64
		if len(shape) > 0 {
			length = shape[0]
		}
		if length != expectedLength {
			vs = append(vs, Violation{Reason: ReasonLength, Got: length, Want: expectedLength})
		}
	}

	for _, name := range ScaleAttrs {
		if v, ok := checkStringAttr(n, name); !ok {
			vs = append(vs, v)
		}
	}
	return vs
}

// ValidateDimensions renders the result of ValidateScale as text; the empty
// string means valid.
func ValidateDimensions(n hstore.Node, expectedLength uint64) string {
	return ValidateScale(n, expectedLength).String()
}

// checkStringAttr reports whether n carries name as a scalar string.
func checkStringAttr(n hstore.Node, name string) (Violation, bool) {
	a := n.Attr(name)
	if a == nil {
		return Violation{Reason: ReasonMissingAttr, Attr: name}, false
	}
	if !a.IsString() || !a.IsScalar() {
		return Violation{Reason: ReasonAttrNotString, Attr: name}, false
	}
	return Violation{}, true
}

// scaleName returns the name attribute of n, "" when absent or not a string.
func scaleName(n hstore.Node) string {
	a := n.Attr(AttrName)
	if a == nil || !a.IsString() {
		return ""
	}
	s, err := a.ReadScalarString()
	if err != nil {
		return ""
	}
	return s
}
