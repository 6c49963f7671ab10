package main

import (
	"context"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"palette-studio/internal/api"
	"palette-studio/internal/auth"
	"palette-studio/internal/config"
	"palette-studio/internal/logging"
	"palette-studio/internal/ui"
)

type serveOptions struct {
	configPath string
	listen     string
	noMetrics  bool
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the palette API and live preview",
		Long: `Serve exposes palette generation over HTTP:

  GET /api/palette?base=&scheme=   one palette
  GET /api/palettes?base=          every scheme for a base
  GET /api/schemes                 scheme catalogue
  GET /api/stats                   usage counters
  GET /ws/palette                  live preview websocket
  GET /healthz                     liveness

Prometheus metrics are served separately on metrics_listen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runServe(ctx, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "config file (default $PALETTE_CONFIG or palette.json)")
	cmd.Flags().StringVarP(&opts.listen, "listen", "l", "", "override the listen address")
	cmd.Flags().BoolVar(&opts.noMetrics, "no-metrics", false, "do not start the metrics server")
	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	ui.EmitBanner(version, ui.PickTagline())

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.listen != "" {
		cfg.Listen = opts.listen
	}

	if cfg.Env.IsDevelopment() {
		ui.LogStatus("info", "Environment: "+ui.Warn("DEVELOPMENT"))
	} else {
		ui.LogStatus("info", "Environment: "+ui.Success("PRODUCTION"))
	}
	ui.LogStatus("info", "Public URL: "+cfg.Env.PublicURL)

	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(cfg.Env)

	var keys *auth.KeyStore
	if cfg.KeysFile != "" {
		keys, err = auth.NewKeyStore(cfg.KeysFile)
		if err != nil {
			return err
		}
	}

	ui.LogGroup("Palette Studio")
	ui.LogGroupItem("Listen", cfg.Listen)
	ui.LogGroupItem("Default", cfg.DefaultBase+" / "+cfg.DefaultScheme)
	if keys != nil {
		ui.LogGroupItem("API keys", strconv.Itoa(keys.KeyCount())+" enabled")
	} else {
		ui.LogGroupItem("API keys", "disabled, "+strconv.Itoa(cfg.RateLimitRPM)+" rpm per IP")
	}
	ui.LogGroupItem("Live sessions", "max "+strconv.Itoa(cfg.MaxLiveSessions))
	if !opts.noMetrics && cfg.MetricsListen != "" {
		ui.LogGroupItem("Metrics", "http://localhost"+cfg.MetricsListen+"/metrics")
	}
	ui.LogGroupEnd()

	if !opts.noMetrics && cfg.MetricsListen != "" {
		metrics := api.NewMetricsServer(cfg.MetricsListen)
		metrics.Start()
		defer metrics.Shutdown(context.Background())
	}

	go func() {
		<-ctx.Done()
		ui.LogGracefulShutdown()
	}()

	srv := api.NewServer(cfg, keys, log)
	if err := srv.Start(ctx); err != nil {
		return err
	}

	ui.PrintFooter("Server stopped")
	return nil
}
