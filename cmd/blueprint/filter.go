package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

type filterFlags struct {
	missingNull bool
	compact     bool
}

func newFilterCmd(a *app) *cobra.Command {
	flags := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "filter <blueprint> <payload.json|payload.yaml|->",
		Short: "Print a payload reduced to the fields a blueprint declares",
		Long: `Filter a payload through a blueprint and print the result as JSON.

Declared values are normalized by their field type (trimmed, cast to numbers
or booleans). Keys a strict level does not declare are dropped, and so are
fields of type "ignore".

Examples:
  blueprint filter contact payload.json
  blueprint filter contact payload.yaml --missing-null`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.filter(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.missingNull, "missing-null", false, "emit declared fields absent from the payload as null")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "print JSON on one line")
	return cmd
}

func (a *app) filter(cmd *cobra.Command, name, path string, flags *filterFlags) error {
	schema, err := a.store.Get(name)
	if err != nil {
		return err
	}
	payload, err := readPayload(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	out, err := schema.Filter(payload, flags.missingNull)
	if err != nil {
		return err
	}
	a.metrics.ObserveFilter(name)

	enc := json.NewEncoder(cmd.OutOrStdout())
	if !flags.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
