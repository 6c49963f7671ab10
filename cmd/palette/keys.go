package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"palette-studio/internal/auth"
	"palette-studio/internal/config"
	"palette-studio/internal/ui"
)

const defaultKeysFile = "keys.json"

func newKeysCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys for the palette server",
		Long: `Keys edits the JSON keys file read by "palette serve". Secrets are stored
as bcrypt hashes; a generated secret is printed once and never again.`,
	}
	cmd.PersistentFlags().StringVarP(&file, "file", "f", "", "keys file (default keys_file from config, or keys.json)")

	keysPath := func() (string, error) {
		if file != "" {
			return file, nil
		}
		cfg, err := config.Load("")
		if err != nil {
			return "", err
		}
		if cfg.KeysFile != "" {
			return cfg.KeysFile, nil
		}
		return defaultKeysFile, nil
	}

	var (
		rpm    int
		secret string
	)
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := keysPath()
			if err != nil {
				return err
			}
			return runKeysAdd(path, args[0], secret, rpm)
		},
	}
	add.Flags().IntVar(&rpm, "rpm", 0, "requests per minute, 0 for unlimited")
	add.Flags().StringVar(&secret, "secret", "", "use this secret instead of generating one")

	list := &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := keysPath()
			if err != nil {
				return err
			}
			return runKeysList(cmd.OutOrStdout(), path)
		},
	}

	toggle := func(use, short string, enabled bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <name>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := keysPath()
				if err != nil {
					return err
				}
				return runKeysToggle(path, args[0], enabled)
			},
		}
	}

	hash := &cobra.Command{
		Use:   "hash <secret>",
		Short: "Print the bcrypt hash of a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := auth.HashSecret(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.AddCommand(add, list,
		toggle("enable", "Enable an API key", true),
		toggle("disable", "Disable an API key", false),
		hash)
	return cmd
}

func runKeysAdd(path, name, secret string, rpm int) error {
	if rpm < 0 {
		return fmt.Errorf("rpm must not be negative")
	}
	cfg, err := auth.ReadOrCreateKeysFile(path)
	if err != nil {
		return err
	}

	generated := secret == ""
	if generated {
		if secret, err = auth.GenerateSecret(); err != nil {
			return err
		}
	}
	if err := cfg.AddKey(name, secret, rpm); err != nil {
		return err
	}
	if err := auth.WriteKeysFile(path, cfg); err != nil {
		return err
	}

	ui.LogStatus("success", fmt.Sprintf("Added key '%s' to %s", name, path))
	if generated {
		ui.SuccessNote("secret: " + ui.AccentBright("%s", secret) + "\nStore it now; only its hash is kept.")
	}
	return nil
}

func runKeysList(out io.Writer, path string) error {
	cfg, err := auth.ReadKeysFile(path)
	if err != nil {
		return err
	}

	tbl := &ui.Table{Columns: []ui.TableColumn{
		{Header: "Name"},
		{Header: "Rate limit", Align: ui.AlignRight},
		{Header: "Status"},
	}}
	for _, k := range cfg.Keys {
		limit := "unlimited"
		if k.RateLimitRPM > 0 {
			limit = strconv.Itoa(k.RateLimitRPM) + " rpm"
		}
		status := ui.Success("enabled")
		if !k.Enabled {
			status = ui.Muted("disabled")
		}
		tbl.AddRow(ui.Bold("%s", k.Name), limit, status)
	}
	fmt.Fprint(out, tbl.Render())

	if len(cfg.IPWhitelist) > 0 {
		fmt.Fprintln(out, ui.Muted("IP whitelist: %v", cfg.IPWhitelist))
	}
	return nil
}

func runKeysToggle(path, name string, enabled bool) error {
	cfg, err := auth.ReadKeysFile(path)
	if err != nil {
		return err
	}
	if err := cfg.SetEnabled(name, enabled); err != nil {
		return err
	}
	if err := auth.WriteKeysFile(path, cfg); err != nil {
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	ui.LogStatus("success", fmt.Sprintf("Key '%s' %s", name, state))
	return nil
}
