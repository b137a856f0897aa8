package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvshrink/internal/demo"
)

func newPropertiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "properties",
		Short: "List the built-in properties",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			tbl := table.NewWriter()
			tbl.SetOutputMirror(cmd.OutOrStdout())
			tbl.SetStyle(table.StyleLight)
			tbl.AppendHeader(table.Row{"Name", "Checks"})
			for _, p := range demo.All() {
				tbl.AppendRow(table.Row{p.Name, p.Description})
			}
			tbl.Render()
		},
	}
}
