package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"palette-studio/internal/api"
	"palette-studio/internal/colorname"
	"palette-studio/internal/config"
	"palette-studio/internal/palette"
	"palette-studio/internal/ui"
)

type generateOptions struct {
	scheme string
	all    bool
	json   bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate [color]",
		Short: "Generate a palette from a base color",
		Long: `Generate derives five colors from a base color. The base may be a hex
code (#0070f3, 0070F3) or a CSS color name (tomato, "dark orchid").

Without arguments the configured default base and scheme are used.`,
		Example: `  palette generate
  palette generate "#e63946" --scheme triadic
  palette generate tomato --all --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.scheme, "scheme", "s", "", "color scheme (default from config)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "generate every scheme")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of swatches")
	return cmd
}

func runGenerate(out io.Writer, opts *generateOptions, args []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	input := cfg.DefaultBase
	if len(args) > 0 {
		input = args[0]
	}
	base, err := colorname.Resolve(input)
	if err != nil {
		return err
	}

	schemes := []palette.Scheme{cfg.Scheme()}
	switch {
	case opts.all:
		schemes = palette.Schemes()
	case opts.scheme != "":
		s, err := palette.ParseScheme(opts.scheme)
		if err != nil {
			return err
		}
		schemes = []palette.Scheme{s}
	}

	results := make([]api.PaletteResponse, 0, len(schemes))
	for _, s := range schemes {
		p, err := palette.Generate(base, s)
		if err != nil {
			return err
		}
		resp, err := api.NewPaletteResponse(s, p)
		if err != nil {
			return err
		}
		results = append(results, resp)
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if opts.all {
			return enc.Encode(api.PalettesResponse{Base: base, Palettes: results})
		}
		return enc.Encode(results[0])
	}

	for _, resp := range results {
		printPalette(out, resp)
	}
	return nil
}

func printPalette(out io.Writer, resp api.PaletteResponse) {
	scheme := palette.Scheme(resp.Scheme)
	ui.LogSection(fmt.Sprintf("%s · %s", scheme.Label(), resp.Base))

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  "+ui.RenderSwatches(resp.Colors))
	fmt.Fprintln(out, "  "+ui.RenderMarkers(len(resp.Colors), palette.BaseIndex))
	fmt.Fprintln(out)

	tbl := &ui.Table{Columns: []ui.TableColumn{
		{Header: "#", Align: ui.AlignRight},
		{Header: "Color"},
		{Header: "H", Align: ui.AlignRight},
		{Header: "S", Align: ui.AlignRight},
		{Header: "L", Align: ui.AlignRight},
	}}
	for i, hex := range resp.Colors {
		hsl := resp.HSL[i]
		idx := strconv.Itoa(i + 1)
		if i == palette.BaseIndex {
			idx = ui.Accent("%s", "★")
		}
		tbl.AddRow(idx,
			ui.ColorDot(hex),
			fmt.Sprintf("%.1f", hsl.H),
			fmt.Sprintf("%.1f%%", hsl.S),
			fmt.Sprintf("%.1f%%", hsl.L))
	}
	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out, "  "+ui.Muted("%s", scheme.Description()))
}
