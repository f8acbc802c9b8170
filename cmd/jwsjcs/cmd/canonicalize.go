package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vitalvas/jwsjcs/canonical"
)

func newCanonicalizeCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "canonicalize [file]",
		Short: "Print the canonical form of a JSON or YAML document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			doc, err := parseDocument(data, name, format)
			if err != nil {
				return err
			}

			out, err := canonical.CanonicalizeConfig(doc, canonical.Config{MaxDepth: opts.maxDepth})
			if err != nil {
				return err
			}

			return writeLine(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatAuto, "Input format: auto, json, yaml")

	return cmd
}
