package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvshrink/internal/demo"
)

func newRecheckCommand(opts *rootOptions) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "recheck TOKEN",
		Short: "Replay a recheck token against a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(cmd, opts, nil); err != nil {
				return err
			}
			p, err := demo.Lookup(name)
			if err != nil {
				return err
			}
			value, failing, err := p.Recheck(args[0])
			if err != nil {
				return fmt.Errorf("recheck %s: %w", p.Name, err)
			}

			w := cmd.OutOrStdout()
			if failing {
				fmt.Fprintf(w, "%s %s\n", color.New(color.FgRed).Sprint("still failing:"), value)
				return errPropertyFailed
			}
			fmt.Fprintf(w, "%s %s\n", color.New(color.FgGreen).Sprint("passes now:"), value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "property", "p", "", "property the token was recorded for")
	cmd.Flags().Bool("no-color", false, "disable coloured output")
	_ = cmd.MarkFlagRequired("property")

	return cmd
}
