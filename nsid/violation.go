package nsid

import (
	"fmt"
	"strings"
)

// Reason tags a single violation.
type Reason uint8

const (
	ReasonNotDataset Reason = iota + 1
	ReasonRank
	ReasonLength
	ReasonMissingAttr
	ReasonAttrNotString
	ReasonDuplicateName
	ReasonNameTaken
)

func (r Reason) String() string {
	switch r {
	case ReasonNotDataset:
		return "not-dataset"
	case ReasonRank:
		return "rank"
	case ReasonLength:
		return "length"
	case ReasonMissingAttr:
		return "missing-attribute"
	case ReasonAttrNotString:
		return "attribute-not-string"
	case ReasonDuplicateName:
		return "duplicate-name"
	case ReasonNameTaken:
		return "name-taken"
	default:
		return fmt.Sprintf("reason(%d)", uint8(r))
	}
}

// Violation is one reason a dimension scale or descriptor is rejected.
// Attr names the attribute or dimension name involved; Got and Want carry
// the mismatching rank or length.
type Violation struct {
	Reason Reason
	Attr   string
	Got    uint64
	Want   uint64
}

func (v Violation) String() string {
	switch v.Reason {
	case ReasonNotDataset:
		return "dimension must be a dataset"
	case ReasonRank:
		return fmt.Sprintf("dimension has rank %d, want 1", v.Got)
	case ReasonLength:
		return fmt.Sprintf("dimension has length %d, want %d", v.Got, v.Want)
	case ReasonMissingAttr:
		return fmt.Sprintf("missing %s attribute", v.Attr)
	case ReasonAttrNotString:
		return fmt.Sprintf("%s attribute should be a string", v.Attr)
	case ReasonDuplicateName:
		return fmt.Sprintf("dimension name %q is used more than once", v.Attr)
	case ReasonNameTaken:
		return fmt.Sprintf("%q already exists and is not a matching dimension scale", v.Attr)
	default:
		return v.Reason.String()
	}
}

// Violations is an ordered list of violations; empty means valid.
type Violations []Violation

// OK reports whether there are no violations.
func (vs Violations) OK() bool {
	return len(vs) == 0
}

// Has reports whether any violation carries reason r.
func (vs Violations) Has(r Reason) bool {
	for _, v := range vs {
		if v.Reason == r {
			return true
		}
	}
	return false
}

func (vs Violations) String() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}
