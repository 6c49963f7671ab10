package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"palette-studio/internal/colorname"
	"palette-studio/internal/ui"
)

func newNamesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "names [filter]",
		Short: "List color names accepted as a base color",
		Example: `  palette names
  palette names blue`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) > 0 {
				filter = args[0]
			}
			return runNames(cmd.OutOrStdout(), filter, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON as name to hex")
	return cmd
}

func runNames(out io.Writer, filter string, asJSON bool) error {
	names := colorname.Names(filter)
	if len(names) == 0 {
		return fmt.Errorf("no color names match %q", filter)
	}

	if asJSON {
		byName := make(map[string]string, len(names))
		for _, n := range names {
			hex, err := colorname.Resolve(n)
			if err != nil {
				return err
			}
			byName[n] = hex
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(byName)
	}

	tbl := &ui.Table{
		Columns: []ui.TableColumn{{Header: "Name"}, {Header: "Color"}},
		Border:  ui.BorderNone,
	}
	for _, n := range names {
		hex, err := colorname.Resolve(n)
		if err != nil {
			return err
		}
		tbl.AddRow(n, ui.ColorDot(hex))
	}
	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out, ui.Muted("%d names", len(names)))
	return nil
}
