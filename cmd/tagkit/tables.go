package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xlab/treeprint"

	"github.com/vango-dev/tagkit/pkg/tags"
)

func tablesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tables [tag...]",
		Short: "Show the tag classification tables",
		Long: `Show the classification tables in use, including entries added by the
configuration. With tag names, print the shape of each tag instead.

Examples:
  tagkit tables
  tagkit tables div br span custom`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			tables, err := cfg.TagTables()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				for _, name := range args {
					fmt.Fprintf(out, "%s: %s\n", name, tables.ShapeOf(name))
				}
				return nil
			}
			fmt.Fprint(out, tablesTree(tables).String())
			return nil
		},
	}
}

// tablesTree renders the tables as a tree, one branch per table.
func tablesTree(t *tags.Tables) treeprint.Tree {
	spec := t.Spec()
	tree := treeprint.NewWithRoot("tables")
	for _, branch := range []struct {
		name  string
		names []string
	}{
		{tags.ShapeMultiLine.String(), spec.MultiLine},
		{tags.ShapeSelfClosing.String(), spec.SelfClosing},
		{tags.ShapeSingleLine.String(), spec.SingleLine},
		{"boolean", spec.Boolean},
	} {
		b := tree.AddBranch(fmt.Sprintf("%s (%d)", branch.name, len(branch.names)))
		for _, name := range branch.names {
			b.AddNode(name)
		}
	}
	return tree
}
