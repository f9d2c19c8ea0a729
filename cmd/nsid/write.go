package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/labeled"
	"github.com/robert-malhotra/go-nsid/maindata"
)

// manifest describes a Main dataset to write.
//
//	group = "/Measurement_000"
//	name = "image"
//	shape = [2, 3]
//	quantity = "Intensity"
//	units = "counts"
//	values = [0.0, 1.0, 2.0, 3.0, 4.0, 5.0]
//
//	[[dimensions]]
//	name = "x"
//	quantity = "Length"
//	units = "nm"
//	dimension_type = "spatial"
//	values = [0.0, 0.5]
type manifest struct {
	Group        string      `toml:"group"`
	Name         string      `toml:"name"`
	Shape        []uint64    `toml:"shape"`
	Values       []float64   `toml:"values"`
	Quantity     string      `toml:"quantity"`
	Units        string      `toml:"units"`
	MainDataName string      `toml:"main_data_name"`
	DataType     string      `toml:"data_type"`
	Modality     string      `toml:"modality"`
	Source       string      `toml:"source"`
	Dimensions   []dimension `toml:"dimensions"`
}

type dimension struct {
	Name          string    `toml:"name"`
	Quantity      string    `toml:"quantity"`
	Units         string    `toml:"units"`
	DimensionType string    `toml:"dimension_type"`
	Values        []float64 `toml:"values"`
}

func decodeManifest(r io.Reader) (*manifest, error) {
	var m manifest
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	if m.Name == "" {
		return nil, errors.New("manifest has no name")
	}
	if len(m.Shape) == 0 {
		return nil, errors.New("manifest has no shape")
	}
	if len(m.Dimensions) != len(m.Shape) {
		return nil, fmt.Errorf("manifest has %d dimensions for shape %v", len(m.Dimensions), m.Shape)
	}
	return &m, nil
}

// array builds the labeled array; missing values default to zeros for the
// data and to 0..n-1 for dimensions.
func (m *manifest) array() (*labeled.Array, error) {
	values := m.Values
	if values == nil {
		n := uint64(1)
		for _, s := range m.Shape {
			n *= s
		}
		values = make([]float64, n)
	}
	arr, err := labeled.New(values, m.Shape...)
	if err != nil {
		return nil, err
	}
	setIf(&arr.Quantity, m.Quantity)
	setIf(&arr.Units, m.Units)
	setIf(&arr.MainDataName, m.MainDataName)
	setIf(&arr.DataType, m.DataType)
	setIf(&arr.Modality, m.Modality)
	setIf(&arr.Source, m.Source)

	for axis, d := range m.Dimensions {
		vals := d.Values
		if vals == nil {
			vals = labeled.Arange(m.Shape[axis])
		}
		dim := labeled.NewDimension(d.Name, vals)
		setIf(&dim.Quantity, d.Quantity)
		setIf(&dim.Units, d.Units)
		setIf(&dim.DimensionType, d.DimensionType)
		if err := arr.SetDimension(axis, dim); err != nil {
			return nil, err
		}
	}
	return arr, nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func newWriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "write <file> <manifest.toml>",
		Short: "Write a Main dataset described by a TOML manifest",
		Long:  "Write a Main dataset described by a TOML manifest. The file is created if it does not exist.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mf, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer mf.Close()
			m, err := decodeManifest(mf)
			if err != nil {
				return fmt.Errorf("reading manifest %s: %w", args[1], err)
			}
			arr, err := m.array()
			if err != nil {
				return fmt.Errorf("manifest %s: %w", args[1], err)
			}

			f, err := openOrCreate(args[0], a.fileOptions()...)
			if err != nil {
				return err
			}
			defer f.Close()

			g, err := ensureGroup(f, m.Group)
			if err != nil {
				return err
			}
			md, err := maindata.Write(g, m.Name, arr, maindata.WithLogger(a.log))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", md)
			return nil
		},
	}
}

func openOrCreate(p string, opts ...hstore.FileOption) (*hstore.File, error) {
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		return hstore.Create(p, opts...)
	}
	return hstore.OpenReadWrite(p, opts...)
}

// ensureGroup opens the group at p, creating missing groups along the way.
func ensureGroup(f *hstore.File, p string) (*hstore.Group, error) {
	g := f.Root()
	for _, name := range hstore.SplitPath(p) {
		if g.Has(name) {
			next, err := g.OpenGroup(name)
			if err != nil {
				return nil, err
			}
			g = next
			continue
		}
		next, err := g.CreateGroup(name)
		if err != nil {
			return nil, err
		}
		g = next
	}
	return g, nil
}
