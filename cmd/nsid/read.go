package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/maindata"
)

func newReadCmd(a *app) *cobra.Command {
	var showValues bool
	cmd := &cobra.Command{
		Use:   "read <file> <dataset>",
		Short: "Print a Main dataset with its dimensions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := hstore.Open(args[0], a.fileOptions()...)
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			d, err := f.OpenDataset(args[1])
			if err != nil {
				return err
			}
			m, err := maindata.Wrap(d)
			if err != nil {
				return err
			}
			arr, err := maindata.Read(m)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", m)
			fmt.Fprintf(w, "  main_data_name: %s\n  modality: %s\n  source: %s\n", arr.MainDataName, arr.Modality, arr.Source)
			for axis, dim := range arr.Dims {
				fmt.Fprintf(w, "  dimension %d: %s\n", axis, dim)
			}
			if showValues {
				vals, err := arr.Values()
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "  values: %v\n", vals)
			}
			a.log.Debug("read", "dataset", m.Path(), "lazy", arr.IsLazy())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showValues, "values", false, "print the values")
	return cmd
}
