package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robert-malhotra/go-nsid/hstore"
	"github.com/robert-malhotra/go-nsid/maindata"
	"github.com/robert-malhotra/go-nsid/nsid"
)

func newFindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find <file> [group]",
		Short: "List the Main datasets of a file or group",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := hstore.Open(args[0], a.fileOptions()...)
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			var container any = f
			if len(args) == 2 {
				g, err := f.OpenGroup(args[1])
				if err != nil {
					return fmt.Errorf("opening group %q: %w", args[1], err)
				}
				container = g
			}

			found, err := maindata.FindMain(container, nsid.WithLogger(a.log))
			if err != nil {
				return err
			}
			for _, m := range found {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			a.log.Info("search complete", "file", args[0], "main_datasets", len(found))
			return nil
		},
	}
}

func newFindNameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "find-name <file> <name>",
		Short: "List every dataset with the given name and whether it is Main",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := hstore.Open(args[0], a.fileOptions()...)
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			matches, err := nsid.FindByName(f, args[1])
			if err != nil {
				return err
			}
			for _, m := range matches {
				tag := "dataset"
				if m.IsMain {
					tag = "main"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%v\n", m.Dataset.Path(), tag, m.Dataset.Shape())
			}
			a.log.Debug("search complete", "name", args[1], "matches", len(matches))
			return nil
		},
	}
}
