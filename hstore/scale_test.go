package hstore

import (
	"errors"
	"reflect"
	"testing"
)

func scaleFixture(t *testing.T) (*File, *Dataset, *Dataset, *Dataset) {
	t.Helper()
	f, _ := newTestFile(t)
	root := f.Root()

	main, err := root.CreateDataset("main", [][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}
	x, err := root.CreateDataset("x", []float64{0, 1})
	if err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}
	y, err := root.CreateDataset("y", []float64{0, 1, 2})
	if err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}
	return f, main, x, y
}

func TestMakeAndAttachScale(t *testing.T) {
	_, main, x, y := scaleFixture(t)

	if NumAttached(main) != 0 {
		t.Fatalf("fresh dataset has %d attachments", NumAttached(main))
	}
	if err := AttachScale(main, 0, x); !errors.Is(err, ErrUnsupported) {
		t.Errorf("attaching an unmarked dataset: expected ErrUnsupported, got %v", err)
	}

	if err := MakeScale(x, "x"); err != nil {
		t.Fatalf("MakeScale failed: %v", err)
	}
	if !IsScale(x) || ScaleName(x) != "x" {
		t.Errorf("x not marked: IsScale=%v name=%q", IsScale(x), ScaleName(x))
	}
	if err := AttachScale(main, 0, x); err != nil {
		t.Fatalf("AttachScale failed: %v", err)
	}
	if err := SetAxisLabel(main, 0, "x"); err != nil {
		t.Fatalf("SetAxisLabel failed: %v", err)
	}

	if got := DimensionList(main); !reflect.DeepEqual(got, []string{"/x", ""}) {
		t.Errorf("DimensionList = %v", got)
	}
	if got := AxisLabels(main); !reflect.DeepEqual(got, []string{"x", ""}) {
		t.Errorf("AxisLabels = %v", got)
	}
	if NumAttached(main) != 1 {
		t.Errorf("NumAttached = %d, want 1", NumAttached(main))
	}
	if refs := References(x); len(refs) != 1 || refs[0] != (Reference{Axis: 0, Path: "/main"}) {
		t.Errorf("References = %v", refs)
	}

	// attaching twice records one back reference
	if err := AttachScale(main, 0, x); err != nil {
		t.Fatalf("re-attach failed: %v", err)
	}
	if refs := References(x); len(refs) != 1 {
		t.Errorf("duplicate back reference: %v", refs)
	}

	if err := MakeScale(y, "y"); err != nil {
		t.Fatalf("MakeScale failed: %v", err)
	}
	if err := AttachScale(main, 2, y); !errors.Is(err, ErrAxis) {
		t.Errorf("expected ErrAxis, got %v", err)
	}
	if err := SetAxisLabel(main, -1, "y"); !errors.Is(err, ErrAxis) {
		t.Errorf("expected ErrAxis for negative axis, got %v", err)
	}
	if err := AttachScale(main, 0, main); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for self attach, got %v", err)
	}
}

func TestAttachReplacesAndDetaches(t *testing.T) {
	_, main, x, y := scaleFixture(t)
	for _, s := range []*Dataset{x, y} {
		if err := MakeScale(s, s.Name()); err != nil {
			t.Fatalf("MakeScale failed: %v", err)
		}
	}

	if err := AttachScale(main, 1, x); err != nil {
		t.Fatalf("AttachScale failed: %v", err)
	}
	if err := AttachScale(main, 1, y); err != nil {
		t.Fatalf("AttachScale failed: %v", err)
	}
	if len(References(x)) != 0 {
		t.Errorf("replaced scale kept its back reference: %v", References(x))
	}
	if x.HasAttr(AttrReferenceList) {
		t.Error("empty REFERENCE_LIST should be removed")
	}
	if DimensionList(main)[1] != "/y" {
		t.Errorf("axis 1 = %q, want /y", DimensionList(main)[1])
	}

	if err := DetachScale(main, 1); err != nil {
		t.Fatalf("DetachScale failed: %v", err)
	}
	if NumAttached(main) != 0 || len(References(y)) != 0 {
		t.Error("detach left linkage behind")
	}
	if err := DetachScale(main, 1); err != nil {
		t.Errorf("detaching an empty axis should succeed, got %v", err)
	}
}

func TestAttachScaleFromAnotherFile(t *testing.T) {
	_, main, _, _ := scaleFixture(t)
	other, _ := newTestFile(t)
	foreign, err := other.Root().CreateDataset("x", []float64{0, 1})
	if err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}
	if err := MakeScale(foreign, "x"); err != nil {
		t.Fatalf("MakeScale failed: %v", err)
	}
	if err := AttachScale(main, 0, foreign); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if SameFile(main, foreign) {
		t.Error("SameFile reported true for different files")
	}
}

func TestAtomicUpdate(t *testing.T) {
	f, main, x, y := scaleFixture(t)

	err := f.Update(func(tx *Tx) error {
		if err := tx.MakeScale(x, "x"); err != nil {
			return err
		}
		if err := tx.AttachScale(main, 0, x); err != nil {
			return err
		}
		// y was never marked, so the whole transaction must roll back
		return tx.AttachScale(main, 1, y)
	})
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if NumAttached(main) != 0 || IsScale(x) || len(References(x)) != 0 {
		t.Error("failed transaction left partial scale linkage")
	}
}

func TestResolveAxisLabel(t *testing.T) {
	f, main, x, _ := scaleFixture(t)

	if _, err := ResolveAxisLabel(main, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("unattached axis: expected ErrNotFound, got %v", err)
	}
	if _, err := ResolveAxisLabel(main, 5); !errors.Is(err, ErrAxis) {
		t.Errorf("expected ErrAxis, got %v", err)
	}

	// a scale outside the parent group resolves through DIMENSION_LIST
	g, err := f.Root().CreateGroup("axes")
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	far, err := g.CreateDataset("far", []float64{0, 1})
	if err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}
	err = f.Update(func(tx *Tx) error {
		if err := tx.MakeScale(far, "far"); err != nil {
			return err
		}
		if err := tx.AttachScale(main, 0, far); err != nil {
			return err
		}
		return tx.SetAxisLabel(main, 0, "far")
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	n, err := ResolveAxisLabel(main, 0)
	if err != nil || n.Path() != "/axes/far" {
		t.Errorf("ResolveAxisLabel = %v, %v", n, err)
	}

	// a label naming a sibling wins over DIMENSION_LIST
	if err := SetAxisLabel(main, 0, x.Name()); err != nil {
		t.Fatalf("SetAxisLabel failed: %v", err)
	}
	n, err = ResolveAxisLabel(main, 0)
	if err != nil || n.Path() != "/x" {
		t.Errorf("ResolveAxisLabel = %v, %v", n, err)
	}
}

func TestParseReference(t *testing.T) {
	r, err := ParseReference("2:/a/b")
	if err != nil || r.Axis != 2 || r.Path != "/a/b" {
		t.Errorf("ParseReference = %+v, %v", r, err)
	}
	if r.String() != "2:/a/b" {
		t.Errorf("String = %q", r.String())
	}
	for _, bad := range []string{"", "x:/a", "-1:/a", "/a"} {
		if _, err := ParseReference(bad); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("ParseReference(%q): expected ErrInvalidPath, got %v", bad, err)
		}
	}
}
