package nsid

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/labeled"
)

// Dim is the dimension proposed for one axis: either a persisted scale or
// an in-memory descriptor that has not been written yet.
type Dim struct {
	scale *hstore.Dataset
	desc  *labeled.Dimension
}

// ScaleDim proposes an existing dataset as the dimension.
func ScaleDim(d *hstore.Dataset) Dim {
	return Dim{scale: d}
}

// DescriptorDim proposes a descriptor to be written as the dimension.
func DescriptorDim(d *labeled.Dimension) Dim {
	return Dim{desc: d}
}

// Scale returns the proposed dataset, nil for descriptors.
func (d Dim) Scale() *hstore.Dataset { return d.scale }

// Descriptor returns the proposed descriptor, nil for datasets.
func (d Dim) Descriptor() *labeled.Dimension { return d.desc }

// IsZero reports whether d proposes nothing.
func (d Dim) IsZero() bool {
	return d.scale == nil && d.desc == nil
}

// Action says how an axis will get its scale.
type Action uint8

const (
	// ActionCreate writes the descriptor as a new dataset.
	ActionCreate Action = iota + 1
	// ActionReuse uses a matching dataset already in the target group.
	ActionReuse
	// ActionCopy copies a scale from another file into the target group.
	ActionCopy
	// ActionLink links a scale of the target's file as is.
	ActionLink
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionReuse:
		return "reuse"
	case ActionCopy:
		return "copy"
	case ActionLink:
		return "link"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// AxisPlan is the reconciled outcome for one axis.
type AxisPlan struct {
	Axis   int
	Name   string
	Action Action
	// Scale is the dataset to link or copy, or the existing one to reuse.
	Scale      *hstore.Dataset
	Descriptor *labeled.Dimension
	Violations Violations
}

// OK reports whether the axis can be materialized.
func (a *AxisPlan) OK() bool {
	return a.Violations.OK()
}

// Plan is the reconciled outcome for every axis of a Main dataset about
// to be written into Target.
type Plan struct {
	Target *hstore.Group
	Axes   []AxisPlan
}

// Valid returns one entry per axis, true where the axis is consistent.
func (p *Plan) Valid() []bool {
	out := make([]bool, len(p.Axes))
	for i := range p.Axes {
		out[i] = p.Axes[i].OK()
	}
	return out
}

// OK reports whether every axis is consistent.
func (p *Plan) OK() bool {
	for i := range p.Axes {
		if !p.Axes[i].OK() {
			return false
		}
	}
	return true
}

// Err joins an *AxisError for every inconsistent axis, nil if there is none.
func (p *Plan) Err() error {
	var errs []error
	for i := range p.Axes {
		if a := &p.Axes[i]; !a.OK() {
			errs = append(errs, &AxisError{Axis: a.Axis, Violations: a.Violations})
		}
	}
	return errors.Join(errs...)
}

// Reconcile checks proposed dimensions against a Main dataset of shape
// mainShape to be written into target, and reports per axis whether the
// proposal is consistent. Content problems never produce an error.
func Reconcile(mainShape []uint64, dims map[int]Dim, target *hstore.Group) ([]bool, error) {
	p, err := PlanDimensions(mainShape, dims, target)
	if err != nil {
		return nil, err
	}
	return p.Valid(), nil
}

// PlanDimensions performs the checks of Reconcile and also records, per
// axis, how the scale will be materialized and what is wrong with it.
// Nothing is written.
func PlanDimensions(mainShape []uint64, dims map[int]Dim, target *hstore.Group) (*Plan, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target group", ErrType)
	}
	rank := len(mainShape)
	if len(dims) != rank {
		return nil, fmt.Errorf("%w: %d dimensions given for shape %v", ErrShape, len(dims), mainShape)
	}
	for axis, dim := range dims {
		if axis < 0 || axis >= rank {
			return nil, fmt.Errorf("%w: axis %d outside 0..%d", ErrKey, axis, rank-1)
		}
		if dim.IsZero() {
			return nil, fmt.Errorf("%w: empty dimension for axis %d", ErrType, axis)
		}
	}

	p := &Plan{Target: target, Axes: make([]AxisPlan, rank)}
	for axis, length := range mainShape {
		dim := dims[axis]
		if dim.scale != nil {
			p.Axes[axis] = planScale(axis, length, dim.scale, target)
		} else {
			p.Axes[axis] = planDescriptor(axis, length, dim.desc, target)
		}
	}

	seen := make(map[string]bool, rank)
	for i := range p.Axes {
		a := &p.Axes[i]
		if a.Name == "" {
			continue
		}
		if seen[a.Name] {
			a.Violations = append(a.Violations, Violation{Reason: ReasonDuplicateName, Attr: a.Name})
		}
		seen[a.Name] = true
	}

	// copies and new scales are created under their member names
	members := make(map[string]bool, rank)
	for i := range p.Axes {
		a := &p.Axes[i]
		var member string
		switch a.Action {
		case ActionCopy:
			member = a.Scale.Name()
		case ActionCreate:
			member = a.Descriptor.Name
		}
		if member == "" {
			continue
		}
		if members[member] && !a.Violations.Has(ReasonDuplicateName) {
			a.Violations = append(a.Violations, Violation{Reason: ReasonDuplicateName, Attr: member})
		}
		members[member] = true
	}
	return p, nil
}

func planScale(axis int, length uint64, s *hstore.Dataset, target *hstore.Group) AxisPlan {
	a := AxisPlan{
		Axis:       axis,
		Name:       scaleName(s),
		Action:     ActionLink,
		Scale:      s,
		Violations: ValidateScale(s, length),
	}
	if s.File() != target.File() {
		a.Action = ActionCopy
		if target.Has(s.Name()) {
			a.Violations = append(a.Violations, Violation{Reason: ReasonNameTaken, Attr: s.Name()})
		}
	}
	return a
}

func planDescriptor(axis int, length uint64, desc *labeled.Dimension, target *hstore.Group) AxisPlan {
	a := AxisPlan{
		Axis:       axis,
		Name:       desc.Name,
		Action:     ActionCreate,
		Descriptor: desc,
	}
	if desc.Name == "" {
		a.Violations = append(a.Violations, Violation{Reason: ReasonMissingAttr, Attr: AttrName})
	}
	if desc.Len() != length {
		a.Violations = append(a.Violations, Violation{Reason: ReasonLength, Got: desc.Len(), Want: length})
	}
	if desc.Name == "" || !target.Has(desc.Name) {
		return a
	}

	existing, err := target.Open(desc.Name)
	if err != nil {
		a.Violations = append(a.Violations, Violation{Reason: ReasonNameTaken, Attr: desc.Name})
		return a
	}
	s, ok := hstore.AsDataset(existing)
	if !ok || !ValidateScale(s, length).OK() || !matchesDescriptor(s, desc) {
		a.Violations = append(a.Violations, Violation{Reason: ReasonNameTaken, Attr: desc.Name})
		return a
	}
	a.Action = ActionReuse
	a.Scale = s
	return a
}

// matchesDescriptor reports whether s holds exactly what writing desc
// would create: the same four attributes and the same float64 values.
func matchesDescriptor(s *hstore.Dataset, desc *labeled.Dimension) bool {
	want := map[string]string{
		AttrName:          desc.Name,
		AttrQuantity:      desc.Quantity,
		AttrUnits:         desc.Units,
		AttrDimensionType: desc.DimensionType,
	}
	for attr, v := range want {
		a := s.Attr(attr)
		if a == nil {
			return false
		}
		got, err := a.ReadScalarString()
		if err != nil || got != v {
			return false
		}
	}
	if !s.Datatype().Equal(hstore.FloatType(8)) {
		return false
	}
	values, err := s.ReadFloat64()
	if err != nil || len(values) != len(desc.Values) {
		return false
	}
	for i, v := range values {
		if v != desc.Values[i] {
			return false
		}
	}
	return true
}
