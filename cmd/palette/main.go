package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"palette-studio/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "palette",
		Short:         "Palette Studio - five-color palettes from a single base color",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `Palette Studio derives a five-color palette from one base color using
classic color-theory schemes: analogous, monochromatic, triadic,
complementary and split-complementary.

Use it from the terminal, or run "palette serve" to expose the same engine
over HTTP and a live preview websocket.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.SetOutput(cmd.OutOrStdout())
		},
	}
	root.SetVersionTemplate("palette {{.Version}}\n")

	root.AddCommand(
		newGenerateCmd(),
		newSchemesCmd(),
		newNamesCmd(),
		newServeCmd(),
		newKeysCmd(),
	)
	return root
}

func main() {
	// Missing .env is fine; production relies on real environment variables
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		ui.ErrorNote(err.Error())
		os.Exit(1)
	}
}
