package nsid

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/robert-malhotra/go-nsid/hstore"
)

// Main dataset attribute names.
const (
	AttrMainDataName = "main_data_name"
	AttrDataType     = "data_type"
	AttrModality     = "modality"
	AttrSource       = "source"
)

// MainAttrs lists the string attributes every Main dataset carries.
var MainAttrs = []string{AttrQuantity, AttrUnits, AttrMainDataName, AttrDataType, AttrModality, AttrSource}

// Option configures IsMain and FindMain.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger reports why candidates fail, at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AxisReport is the outcome of checking the scale attached to one axis.
type AxisReport struct {
	Axis  int
	Label string
	// Scale is the object the axis resolved to, nil if nothing resolved.
	Scale hstore.Node

	KindOK   bool
	LengthOK bool
	AttrsOK  bool

	Violations Violations
}

// OK reports whether the axis passed every check.
func (r *AxisReport) OK() bool {
	return r.KindOK && r.LengthOK && r.AttrsOK
}

// Report is the outcome of CheckMain.
type Report struct {
	Path string
	// Err is set when the structural precheck failed; nothing else was checked.
	Err  error
	Axes []AxisReport

	MissingAttrs   []string
	NonStringAttrs []string
}

// OK reports whether the candidate is a Main dataset.
func (r *Report) OK() bool {
	if r.Err != nil || len(r.MissingAttrs) > 0 || len(r.NonStringAttrs) > 0 {
		return false
	}
	for i := range r.Axes {
		if !r.Axes[i].OK() {
			return false
		}
	}
	return true
}

func (r *Report) String() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	if r.OK() {
		return r.Path + ": main dataset"
	}
	var parts []string
	for i := range r.Axes {
		if a := &r.Axes[i]; !a.OK() {
			parts = append(parts, fmt.Sprintf("dimension %d (%s): %s", a.Axis, a.Label, a.Violations))
		}
	}
	if len(r.MissingAttrs) > 0 {
		parts = append(parts, "missing attributes: "+strings.Join(r.MissingAttrs, ", "))
	}
	if len(r.NonStringAttrs) > 0 {
		parts = append(parts, "non-string attributes: "+strings.Join(r.NonStringAttrs, ", "))
	}
	return r.Path + ": " + strings.Join(parts, "; ")
}

// CheckMain checks every Main dataset condition on n and reports all of
// them. It never fails; problems are recorded in the report.
func CheckMain(n hstore.Node) *Report {
	r := &Report{}
	if err := ValidateMainDset(n, true); err != nil {
		r.Err = err
		if d, ok := hstore.AsDataset(n); ok {
			r.Path = d.Path()
		} else if g, ok := hstore.AsGroup(n); ok {
			r.Path = g.Path()
		}
		return r
	}
	d, _ := hstore.AsDataset(n)
	r.Path = d.Path()

	shape := d.Shape()
	r.Axes = make([]AxisReport, len(shape))
	for i, length := range shape {
		r.Axes[i] = checkAxis(d, i, length)
	}

	for _, name := range MainAttrs {
		v, ok := checkStringAttr(d, name)
		switch {
		case ok:
		case v.Reason == ReasonMissingAttr:
			r.MissingAttrs = append(r.MissingAttrs, name)
		default:
			r.NonStringAttrs = append(r.NonStringAttrs, name)
		}
	}
	return r
}

func checkAxis(d *hstore.Dataset, axis int, length uint64) AxisReport {
	ar := AxisReport{Axis: axis, Label: hstore.AxisLabel(d, axis)}
	scale, err := hstore.ResolveAxisLabel(d, axis)
	if err != nil {
		ar.Violations = Violations{{Reason: ReasonNotDataset}}
		return ar
	}
	ar.Scale = scale
	ar.Violations = ValidateScale(scale, length)

	vs := ar.Violations
	ar.KindOK = !vs.Has(ReasonNotDataset)
	ar.LengthOK = ar.KindOK && !vs.Has(ReasonRank) && !vs.Has(ReasonLength)
	ar.AttrsOK = !vs.Has(ReasonMissingAttr) && !vs.Has(ReasonAttrNotString)
	return ar
}

// IsMain reports whether n is a Main dataset.
func IsMain(n hstore.Node, opts ...Option) bool {
	o := newOptions(opts)
	r := CheckMain(n)
	ok := r.OK()
	if o.logger != nil {
		r.log(o.logger)
	}
	return ok
}

func (r *Report) log(l *slog.Logger) {
	if r.Err != nil {
		l.Debug("not a main dataset", "path", r.Path, "error", r.Err)
		return
	}
	if r.OK() {
		l.Debug("main dataset", "path", r.Path)
		return
	}

	var kind, length, attrs []int
	for i := range r.Axes {
		a := &r.Axes[i]
		if !a.KindOK {
			kind = append(kind, a.Axis)
		}
		if !a.LengthOK {
			length = append(length, a.Axis)
		}
		if !a.AttrsOK {
			attrs = append(attrs, a.Axis)
		}
		if !a.OK() {
			l.Debug("dimension scale rejected", "path", r.Path, "axis", a.Axis,
				"label", a.Label, "violations", a.Violations.String())
		}
	}
	l.Debug("not a main dataset", "path", r.Path,
		"axes_not_dataset", kind,
		"axes_wrong_length", length,
		"axes_bad_attributes", attrs,
		"missing_attributes", r.MissingAttrs,
		"non_string_attributes", r.NonStringAttrs)
}
