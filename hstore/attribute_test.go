package hstore

import (
	"reflect"
	"testing"
)

func TestAttributeValues(t *testing.T) {
	f, testFile := newTestFile(t)
	_, err := f.Root().CreateDataset("data", []int32{1, 2, 3, 4, 5},
		WithAttribute("scale", float64(1.5)),
		WithAttribute("offset", int32(100)),
		WithAttribute("count", uint16(7)),
		WithAttribute("units", "mV"),
		WithAttribute("labels", []string{"x", "y"}),
		WithAttribute("weights", []float32{0.5, 0.25}),
	)
	if err != nil {
		t.Fatalf("CreateDataset with attributes failed: %v", err)
	}
	f.Close()

	f2, err := Open(testFile)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f2.Close()

	ds, err := f2.Root().OpenDataset("data")
	if err != nil {
		t.Fatalf("OpenDataset failed: %v", err)
	}

	wantNames := []string{"scale", "offset", "count", "units", "labels", "weights"}
	if !reflect.DeepEqual(ds.Attrs(), wantNames) {
		t.Errorf("Attrs() = %v, want %v", ds.Attrs(), wantNames)
	}

	tests := []struct {
		name   string
		want   any
		scalar bool
	}{
		{"scale", 1.5, true},
		{"offset", int64(100), true},
		{"count", uint64(7), true},
		{"units", "mV", true},
		{"labels", []string{"x", "y"}, false},
		{"weights", []float64{0.5, 0.25}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := ds.Attr(tt.name)
			if attr == nil {
				t.Fatalf("attribute %q missing", tt.name)
			}
			if attr.IsScalar() != tt.scalar {
				t.Errorf("IsScalar = %v, want %v", attr.IsScalar(), tt.scalar)
			}
			got, err := attr.Value()
			if err != nil {
				t.Fatalf("Value failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Value = %#v, want %#v", got, tt.want)
			}
		})
	}

	units := ds.Attr("units")
	if !units.IsString() || units.Shape() != nil || units.DtypeClass() != ClassString {
		t.Error("units should be a scalar string")
	}
	if s, err := units.ReadScalarString(); err != nil || s != "mV" {
		t.Errorf("ReadScalarString = %q, %v", s, err)
	}
	if v, err := ds.Attr("offset").ReadScalarFloat64(); err != nil || v != 100 {
		t.Errorf("ReadScalarFloat64 = %v, %v", v, err)
	}
	if v, err := ds.Attr("scale").ReadScalarInt64(); err != nil || v != 1 {
		t.Errorf("ReadScalarInt64 = %v, %v", v, err)
	}
	if _, err := units.ReadFloat64(); err == nil {
		t.Error("reading a string attribute as float64 should fail")
	}
	if ds.HasAttr("missing") || ds.Attr("missing") != nil {
		t.Error("missing attribute reported present")
	}
}

func TestSetAttrsReplaces(t *testing.T) {
	f, _ := newTestFile(t)
	ds, err := f.Root().CreateDataset("d", []float64{1}, WithAttribute("units", "nm"))
	if err != nil {
		t.Fatalf("CreateDataset failed: %v", err)
	}

	if err := SetAttrs(ds, map[string]any{"units": "pm", "quantity": "distance"}); err != nil {
		t.Fatalf("SetAttrs failed: %v", err)
	}
	if got, _ := ds.Attr("units").ReadScalarString(); got != "pm" {
		t.Errorf("units = %q, want pm", got)
	}
	if !ds.HasAttr("quantity") {
		t.Error("quantity not added")
	}

	if err := DeleteAttr(ds, "units"); err != nil {
		t.Fatalf("DeleteAttr failed: %v", err)
	}
	if ds.HasAttr("units") {
		t.Error("units still present after DeleteAttr")
	}
	if err := DeleteAttr(ds, "units"); err != nil {
		t.Errorf("deleting a missing attribute should succeed, got %v", err)
	}
}

func TestSetAttrsRejectsBadValue(t *testing.T) {
	f, _ := newTestFile(t)
	err := SetAttrs(f.Root(), map[string]any{"good": "x", "bad": map[string]int{}})
	if err == nil {
		t.Fatal("expected error for map value")
	}
	if f.Root().HasAttr("good") {
		t.Error("SetAttrs must not apply any attribute when one fails")
	}
}
