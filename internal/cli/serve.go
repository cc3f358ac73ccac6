package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"accessible-palette/internal/config"
	"accessible-palette/internal/server"
	"accessible-palette/internal/ui"
)

func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the palette HTTP service",
		Long: `Start the palette HTTP service and its metrics listener.

Settings come from config.json (or CONFIG_FILE), then environment variables.
Send SIGHUP to reload TLS certificates.

Examples:
  palette serve
  palette serve --listen :3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Address to listen on (overrides config)")
	return cmd
}

func runServe(ctx context.Context, listen string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen = listen
	}

	ui.EmitBanner(version, tagline)
	ui.SetDebug(cfg.Env.Debug)
	ui.LogSection("Palette service")

	if cfg.Env.IsDevelopment() {
		ui.LogStatus("info", "Environment: "+ui.Warn("DEVELOPMENT"))
		ui.InfoNote("Development mode: CORS allows " + cfg.Env.AllowedOrigin + ". Set APP_ENV=production for deployments.")
	} else {
		ui.LogStatus("info", "Environment: "+ui.Success("PRODUCTION"))
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		return err
	}
	logSettings(cfg)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metrics := server.NewMetricsServer(cfg.MetricsListen)
	metrics.Start()
	ui.LogStatus("info", "Metrics: http://localhost"+cfg.MetricsListen+"/metrics")
	defer metrics.Shutdown(context.Background())

	go reloadOnHangup(ctx, srv)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// reloadOnHangup reloads certificates on every SIGHUP until ctx is done
func reloadOnHangup(ctx context.Context, srv *server.Server) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := srv.Reload(); err != nil {
				ui.LogStatus("error", "Certificate reload failed: "+err.Error())
			}
		}
	}
}

func logSettings(cfg *config.Config) {
	keys := "disabled"
	if n := len(cfg.APIKeyHashes); n > 0 {
		keys = strconv.Itoa(n) + " configured"
	}
	rate := "unlimited"
	if cfg.RateLimitRPM > 0 {
		rate = strconv.Itoa(cfg.RateLimitRPM) + " req/min per client"
	}

	ui.LogGroup("Settings")
	ui.LogGroupItem("Contrast", fmt.Sprintf("%.2f:1", cfg.ContrastRatio))
	ui.LogGroupItem("Variations", fmt.Sprintf("%d (max %d)", cfg.Variations, cfg.MaxVariations))
	ui.LogGroupItem("Concurrency", strconv.Itoa(cfg.MaxConcurrent))
	ui.LogGroupItem("API keys", keys)
	ui.LogGroupItem("Rate limit", rate)
	if cfg.CertFile != "" {
		ui.LogGroupItem("TLS", cfg.CertFile)
	}
	ui.LogGroupEnd()
}
