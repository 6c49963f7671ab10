package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"palette-studio/internal/api"
	"palette-studio/internal/ui"
)

func newSchemesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "List the available color schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchemes(cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func runSchemes(out io.Writer, asJSON bool) error {
	schemes := api.SchemeList()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(schemes)
	}

	tbl := &ui.Table{Columns: []ui.TableColumn{
		{Header: "Scheme"},
		{Header: "Label"},
		{Header: "Description"},
	}}
	for _, s := range schemes {
		tbl.AddRow(ui.Command("%s", s.Name), s.Label, ui.Subtle("%s", s.Description))
	}
	fmt.Fprint(out, tbl.Render())
	return nil
}
