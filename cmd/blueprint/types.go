package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTypesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types <blueprint>",
		Short: "List the rule paths of a blueprint with their field types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.types(cmd, args[0])
		},
	}
}

func (a *app) types(cmd *cobra.Command, name string) error {
	schema, err := a.store.Get(name)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tTYPE\tFLAGS")
	for _, path := range schema.Tree().Paths() {
		rule, ok := schema.Index().Lookup(path)
		if !ok {
			fmt.Fprintf(tw, "%s\t-\t\n", path)
			continue
		}
		var flags []string
		if rule.Required() {
			flags = append(flags, "required")
		}
		if rule.Ignored() {
			flags = append(flags, "ignored")
		}
		if rule.Multiple {
			flags = append(flags, "multiple")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", path, rule.Type, strings.Join(flags, ","))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if types := schema.Types(); len(types) > 0 {
		names := slices.Sorted(maps.Keys(types))
		fmt.Fprintf(cmd.OutOrStdout(), "\nType defaults: %s\n", strings.Join(names, ", "))
	}
	return nil
}
