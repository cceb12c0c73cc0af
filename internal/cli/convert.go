package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fencedraw/pkg/errors"
	"github.com/matzehuels/fencedraw/pkg/numfmt"
	"github.com/matzehuels/fencedraw/pkg/units"
)

// convertCommand creates the convert command, a unit conversion helper
// that uses the same parsing and rounding as the diagrams.
func (c *CLI) convertCommand() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert [value]",
		Short: "Convert a length between mm, cm and in",
		Example: `  fencedraw convert 12,5 --from cm --to in
  fencedraw convert 48 --from in`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := convertValue(args[0], from, to)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", string(units.Default), "source unit")
	cmd.Flags().StringVar(&to, "to", string(units.Default), "target unit")

	return cmd
}

// convertValue parses value ("." or "," decimals) and formats it in the
// target unit with two decimals.
func convertValue(value, from, to string) (string, error) {
	v := numfmt.Parse(value)
	if numfmt.IsNaN(v) {
		return "", errors.New(errors.ErrCodeInvalidNumber, "not a number: %q", value)
	}
	fu, err := units.Parse(from)
	if err != nil {
		return "", err
	}
	tu, err := units.Parse(to)
	if err != nil {
		return "", err
	}
	return numfmt.Fmt2(units.Convert(v, fu, tu)) + " " + string(tu), nil
}
