package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/nsid"
)

var errNotMain = errors.New("not a main dataset")

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file> <dataset>",
		Short: "Report every Main dataset condition a dataset fails",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := hstore.Open(args[0], a.fileOptions()...)
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			n, err := f.Root().Open(args[1])
			if err != nil {
				return fmt.Errorf("opening %q: %w", args[1], err)
			}

			r := nsid.CheckMain(n)
			w := cmd.OutOrStdout()
			if r.Err != nil {
				fmt.Fprintf(w, "%s: %v\n", args[1], r.Err)
				return errNotMain
			}
			for _, ax := range r.Axes {
				status := "ok"
				if !ax.OK() {
					status = ax.Violations.String()
				}
				fmt.Fprintf(w, "dimension %d (%s): %s\n", ax.Axis, ax.Label, status)
			}
			for _, name := range r.MissingAttrs {
				fmt.Fprintf(w, "missing attribute %s\n", name)
			}
			for _, name := range r.NonStringAttrs {
				fmt.Fprintf(w, "attribute %s is not a string\n", name)
			}
			if !r.OK() {
				return errNotMain
			}
			fmt.Fprintf(w, "%s is a main dataset\n", r.Path)
			return nil
		},
	}
}
