package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/maindata"
)

func newAttachCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "attach <file> <dataset> <axis>=<scale>...",
		Short: "Attach one dimension scale per axis to a dataset",
		Long: "Attach one dimension scale per axis to a dataset. Scales are given as\n" +
			"<axis>=<path>; a path of the form <file>:<path> names a scale in another\n" +
			"file, which is copied next to the dataset.",
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := hstore.OpenReadWrite(args[0], a.fileOptions()...)
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			ds, err := f.Root().Open(args[1])
			if err != nil {
				return fmt.Errorf("opening %q: %w", args[1], err)
			}

			dims := make(map[int]hstore.Node, len(args)-2)
			for _, spec := range args[2:] {
				axis, n, closeFn, err := openScale(f, spec, a.fileOptions()...)
				if err != nil {
					return err
				}
				defer closeFn()
				dims[axis] = n
			}

			res, err := maindata.Attach(ds, dims)
			if err != nil {
				return err
			}
			if m, ok := res.(*maindata.Main); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", m)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: dimensions attached, not yet a main dataset\n", res.Path())
			}
			a.log.Debug("attached", "dataset", ds.Path(), "dimensions", len(dims))
			return nil
		},
	}
}

// openScale resolves "<axis>=<path>" or "<axis>=<file>:<path>".
func openScale(f *hstore.File, spec string, opts ...hstore.FileOption) (int, hstore.Node, func(), error) {
	noop := func() {}
	axisStr, target, ok := strings.Cut(spec, "=")
	if !ok {
		return 0, nil, noop, fmt.Errorf("scale %q: want <axis>=<path>", spec)
	}
	axis, err := strconv.Atoi(axisStr)
	if err != nil {
		return 0, nil, noop, fmt.Errorf("scale %q: bad axis: %w", spec, err)
	}

	file, p, foreign := strings.Cut(target, ":")
	if !foreign {
		n, err := f.Root().Open(target)
		if err != nil {
			return 0, nil, noop, fmt.Errorf("scale %q: %w", spec, err)
		}
		return axis, n, noop, nil
	}

	other, err := hstore.Open(file, opts...)
	if err != nil {
		return 0, nil, noop, fmt.Errorf("scale %q: %w", spec, err)
	}
	n, err := other.Root().Open(p)
	if err != nil {
		other.Close()
		return 0, nil, noop, fmt.Errorf("scale %q: %w", spec, err)
	}
	return axis, n, func() { other.Close() }, nil
}
