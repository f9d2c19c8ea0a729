package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/nsid"
)

const maxTreeDepth = 20

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>",
		Short: "Print every group, dataset and attribute of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := hstore.Open(args[0], a.fileOptions()...)
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "=== %s ===\n", args[0])
			fmt.Fprintf(w, "Format version: %d\n", f.Version())
			fmt.Fprintf(w, "File id: %s\n", f.ID())
			fmt.Fprintf(w, "Created: %s\n\n", f.Created().UTC().Format("2006-01-02 15:04:05"))
			printGroup(w, f.Root(), "", 0)
			return nil
		},
	}
}

func printGroup(w io.Writer, g *hstore.Group, indent string, depth int) {
	if depth > maxTreeDepth {
		fmt.Fprintf(w, "%s[MAX DEPTH REACHED]\n", indent)
		return
	}

	members, err := g.Members()
	if err != nil {
		fmt.Fprintf(w, "%sERROR getting members: %v\n", indent, err)
		return
	}

	fmt.Fprintf(w, "%sGroup %q:\n", indent, g.Path())
	fmt.Fprintf(w, "%s  Members: %d\n", indent, len(members))
	printAttrs(w, g, indent+"  ")

	for _, name := range members {
		child, err := g.Open(name)
		if err != nil {
			fmt.Fprintf(w, "%s  %q: ERROR: %v\n", indent, name, err)
			continue
		}
		switch c := child.(type) {
		case *hstore.Group:
			printGroup(w, c, indent+"  ", depth+1)
		case *hstore.Dataset:
			kind := "Dataset"
			switch {
			case nsid.IsMain(c):
				kind = "Main dataset"
			case hstore.IsScale(c):
				kind = "Dimension scale"
			}
			fmt.Fprintf(w, "%s  %s %q:\n", indent, kind, name)
			fmt.Fprintf(w, "%s    Shape: %v %s\n", indent, c.Shape(), c.Datatype())
			printAttrs(w, c, indent+"    ")
		}
	}
}

func printAttrs(w io.Writer, n hstore.Node, indent string) {
	for _, name := range n.Attrs() {
		v, err := n.Attr(name).Value()
		if err != nil {
			fmt.Fprintf(w, "%s@%s: ERROR: %v\n", indent, name, err)
			continue
		}
		fmt.Fprintf(w, "%s@%s = %v\n", indent, name, v)
	}
}
