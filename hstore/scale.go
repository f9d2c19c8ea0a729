package hstore

import (
	"fmt"
	"strconv"
	"strings"

	bolt "go.etcd.io/bbolt"

	"github.com/robert-malhotra/go-nsid/internal/dtype"
	"github.com/robert-malhotra/go-nsid/internal/object"
)

// Attribute names of the dimension scale convention.
const (
	AttrClass           = "CLASS"
	AttrName            = "NAME"
	AttrReferenceList   = "REFERENCE_LIST"
	AttrDimensionList   = "DIMENSION_LIST"
	AttrDimensionLabels = "DIMENSION_LABELS"

	// DimensionScaleClass is the CLASS value that marks a dataset as a scale.
	DimensionScaleClass = "DIMENSION_SCALE"
)

// Reference is one entry of a scale's REFERENCE_LIST.
type Reference struct {
	Axis int
	Path string
}

func (r Reference) String() string {
	return strconv.Itoa(r.Axis) + ":" + r.Path
}

// ParseReference parses a "<axis>:<path>" back reference.
func ParseReference(s string) (Reference, error) {
	axis, p, ok := strings.Cut(s, ":")
	if !ok {
		return Reference{}, fmt.Errorf("%w: malformed reference %q", ErrInvalidPath, s)
	}
	n, err := strconv.Atoi(axis)
	if err != nil || n < 0 {
		return Reference{}, fmt.Errorf("%w: malformed reference axis %q", ErrInvalidPath, s)
	}
	return Reference{Axis: n, Path: CleanPath(p)}, nil
}

// IsScale reports whether d has been marked as a dimension scale.
func IsScale(d *Dataset) bool {
	return scalarString(d.header(), AttrClass) == DimensionScaleClass
}

// ScaleName returns the NAME under which d was marked as a scale.
func ScaleName(d *Dataset) string {
	return scalarString(d.header(), AttrName)
}

// AxisLabel returns the label of the given axis, "" if unset or out of range.
func AxisLabel(main *Dataset, axis int) string {
	labels := AxisLabels(main)
	if axis < 0 || axis >= len(labels) {
		return ""
	}
	return labels[axis]
}

// AxisLabels returns one label per axis, "" where unset.
func AxisLabels(main *Dataset) []string {
	h := main.header()
	return padTo(stringList(h, AttrDimensionLabels), h.Dataspace.Rank())
}

// DimensionList returns the path of the scale attached to each axis, "" where unset.
func DimensionList(main *Dataset) []string {
	h := main.header()
	return padTo(stringList(h, AttrDimensionList), h.Dataspace.Rank())
}

// NumAttached returns how many axes of main currently have a scale attached.
func NumAttached(main *Dataset) int {
	n := 0
	for _, p := range DimensionList(main) {
		if p != "" {
			n++
		}
	}
	return n
}

// References returns the back references recorded on a scale.
func References(scale *Dataset) []Reference {
	var refs []Reference
	for _, s := range stringList(scale.header(), AttrReferenceList) {
		if r, err := ParseReference(s); err == nil {
			refs = append(refs, r)
		}
	}
	return refs
}

// ResolveAxisLabel returns the scale attached to the given axis of main.
// The axis label is looked up in main's parent group first; if that finds
// nothing, the path recorded in DIMENSION_LIST is used.
func ResolveAxisLabel(main *Dataset, axis int) (Node, error) {
	rank := main.Rank()
	if axis < 0 || axis >= rank {
		return nil, fmt.Errorf("%s axis %d of %d: %w", main.Path(), axis, rank, ErrAxis)
	}

	if label := AxisLabel(main, axis); label != "" && validName(label) == nil {
		if parent, err := main.Parent(); err == nil {
			if n, err := parent.Open(label); err == nil {
				return n, nil
			}
		}
	}

	if p := DimensionList(main)[axis]; p != "" {
		if n, err := main.File().Root().Open(p); err == nil {
			return n, nil
		}
	}

	return nil, fmt.Errorf("%s axis %d: no scale attached: %w", main.Path(), axis, ErrNotFound)
}

// MakeScale marks d as a dimension scale named name.
func MakeScale(d *Dataset, name string) error {
	return d.File().Update(func(tx *Tx) error {
		return tx.MakeScale(d, name)
	})
}

// AttachScale links scale to the given axis of main.
func AttachScale(main *Dataset, axis int, scale *Dataset) error {
	return main.File().Update(func(tx *Tx) error {
		return tx.AttachScale(main, axis, scale)
	})
}

// DetachScale removes the scale linked to the given axis of main, if any.
func DetachScale(main *Dataset, axis int) error {
	return main.File().Update(func(tx *Tx) error {
		return tx.DetachScale(main, axis)
	})
}

// SetAxisLabel sets the label of the given axis of main.
func SetAxisLabel(main *Dataset, axis int, label string) error {
	return main.File().Update(func(tx *Tx) error {
		return tx.SetAxisLabel(main, axis, label)
	})
}

// MakeScale marks d as a dimension scale named name.
func (t *Tx) MakeScale(d *Dataset, name string) error {
	if err := t.own(d); err != nil {
		return err
	}
	return t.SetAttrs(d, map[string]any{
		AttrClass: DimensionScaleClass,
		AttrName:  name,
	})
}

// AttachScale links scale to the given axis of main and records the back
// reference on scale. A scale previously linked to that axis is detached.
func (t *Tx) AttachScale(main *Dataset, axis int, scale *Dataset) error {
	if err := t.own(main); err != nil {
		return err
	}
	if err := t.own(scale); err != nil {
		return err
	}
	if main.Path() == scale.Path() {
		return fmt.Errorf("%w: %s cannot be its own scale", ErrUnsupported, main.Path())
	}

	mh, mb, err := t.header(main.Path())
	if err != nil {
		return err
	}
	if err := checkAxis(main.Path(), mh, axis); err != nil {
		return err
	}
	sh, sb, err := t.header(scale.Path())
	if err != nil {
		return err
	}
	if sh.Kind != object.KindDataset {
		return fmt.Errorf("%s: %w", scale.Path(), ErrNotDataset)
	}
	if scalarString(sh, AttrClass) != DimensionScaleClass {
		return fmt.Errorf("%w: %s is not a dimension scale", ErrUnsupported, scale.Path())
	}

	list := padTo(stringList(mh, AttrDimensionList), mh.Dataspace.Rank())
	if old := list[axis]; old != "" && old != scale.Path() {
		if err := t.dropReference(old, Reference{Axis: axis, Path: main.Path()}); err != nil {
			return err
		}
	}
	list[axis] = scale.Path()
	if err := t.putStrings(mb, main.Path(), mh, AttrDimensionList, list); err != nil {
		return err
	}

	ref := Reference{Axis: axis, Path: main.Path()}.String()
	refs := stringList(sh, AttrReferenceList)
	for _, r := range refs {
		if r == ref {
			return nil
		}
	}
	return t.putStrings(sb, scale.Path(), sh, AttrReferenceList, append(refs, ref))
}

// DetachScale removes the scale linked to the given axis of main, if any.
func (t *Tx) DetachScale(main *Dataset, axis int) error {
	if err := t.own(main); err != nil {
		return err
	}
	mh, mb, err := t.header(main.Path())
	if err != nil {
		return err
	}
	if err := checkAxis(main.Path(), mh, axis); err != nil {
		return err
	}

	list := padTo(stringList(mh, AttrDimensionList), mh.Dataspace.Rank())
	old := list[axis]
	if old == "" {
		return nil
	}
	list[axis] = ""
	if err := t.putStrings(mb, main.Path(), mh, AttrDimensionList, list); err != nil {
		return err
	}
	return t.dropReference(old, Reference{Axis: axis, Path: main.Path()})
}

// SetAxisLabel sets the label of the given axis of main.
func (t *Tx) SetAxisLabel(main *Dataset, axis int, label string) error {
	if err := t.own(main); err != nil {
		return err
	}
	h, b, err := t.header(main.Path())
	if err != nil {
		return err
	}
	if err := checkAxis(main.Path(), h, axis); err != nil {
		return err
	}
	labels := padTo(stringList(h, AttrDimensionLabels), h.Dataspace.Rank())
	labels[axis] = label
	return t.putStrings(b, main.Path(), h, AttrDimensionLabels, labels)
}

// dropReference removes ref from the REFERENCE_LIST of the scale at scalePath.
// A scale that no longer exists is ignored.
func (t *Tx) dropReference(scalePath string, ref Reference) error {
	h, b, err := t.header(scalePath)
	if err != nil {
		return nil
	}
	want := ref.String()
	refs := stringList(h, AttrReferenceList)
	kept := refs[:0]
	for _, r := range refs {
		if r != want {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(refs) {
		return nil
	}
	if len(kept) == 0 {
		h.DeleteAttribute(AttrReferenceList)
		return t.putHeader(b, scalePath, h)
	}
	return t.putStrings(b, scalePath, h, AttrReferenceList, kept)
}

func (t *Tx) putStrings(b *bolt.Bucket, p string, h *object.Header, name string, vals []string) error {
	a, err := newAttribute(name, vals)
	if err != nil {
		return err
	}
	h.SetAttribute(a)
	return t.putHeader(b, p, h)
}

func checkAxis(p string, h *object.Header, axis int) error {
	if h.Kind != object.KindDataset {
		return fmt.Errorf("%s: %w", p, ErrNotDataset)
	}
	if rank := h.Dataspace.Rank(); axis < 0 || axis >= rank {
		return fmt.Errorf("%s axis %d of %d: %w", p, axis, rank, ErrAxis)
	}
	return nil
}

// stringList reads a string attribute as a list; missing or non-string
// attributes yield nil.
func stringList(h *object.Header, name string) []string {
	a := h.Attribute(name)
	if a == nil || !a.Datatype.IsString() {
		return nil
	}
	vals, err := dtype.ConvertToSlice[string](a.Datatype, a.Data, a.Dataspace.NumElements())
	if err != nil {
		return nil
	}
	return vals
}

func scalarString(h *object.Header, name string) string {
	a := h.Attribute(name)
	if a == nil || !a.Dataspace.IsScalar() {
		return ""
	}
	vals := stringList(h, name)
	if len(vals) != 1 {
		return ""
	}
	return vals[0]
}

func padTo(list []string, n int) []string {
	out := make([]string, n)
	copy(out, list)
	return out
}
