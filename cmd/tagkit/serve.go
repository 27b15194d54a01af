package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tagkit/internal/config"
	"github.com/vango-dev/tagkit/internal/dev"
	"github.com/vango-dev/tagkit/internal/errors"
	"github.com/vango-dev/tagkit/internal/logging"
	"github.com/vango-dev/tagkit/pkg/server"
)

func serveCmd(a *app) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preview server",
		Long: `Run the preview server.

The server exposes GET /tags/{name}, POST /render, POST /classes and
GET /tables. With --watch the configuration file is watched and the
renderer is rebuilt whenever it changes.

Examples:
  tagkit serve
  tagkit serve --addr=:8080
  tagkit serve --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				if err := applyAddr(cfg, addr); err != nil {
					return err
				}
			}

			srv, err := server.New(cfg, server.WithLogger(logging.Slog("server")))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				watchConfig(ctx, cfg.Path(), srv)
			}

			success(cmd.OutOrStdout(), "Serving on http://%s", cfg.Address())
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Address to listen on (default from config, localhost:7070)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the renderer when the config file changes")

	return cmd
}

// applyAddr overrides the configured host and port.
func applyAddr(cfg *config.Config, addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("E103").WithDetailf("invalid address %q", addr).Wrap(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return errors.New("E103").WithDetailf("invalid port %q", portStr).Wrap(err)
	}
	cfg.Server.Host = host
	cfg.Server.Port = port
	return cfg.Validate()
}

// watchConfig rebuilds the server renderer whenever the file at path
// changes. A config that fails to load keeps the previous renderer.
func watchConfig(ctx context.Context, path string, srv *server.Server) {
	if path == "" {
		log.Warn().Msg("No configuration file to watch; using defaults")
		return
	}

	w := dev.NewWatcher(dev.WatcherConfig{
		Paths:  []string{path},
		Logger: logging.Slog("watch"),
	})
	w.OnChange(func(c dev.Change) {
		reloadRenderer(path, c, srv)
	})

	go func() {
		if err := w.Start(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("path", path).Msg("Config watcher stopped")
		}
	}()
	log.Info().Str("path", path).Msg("Watching configuration")
}

func reloadRenderer(path string, c dev.Change, srv *server.Server) {
	if c.Removed() {
		log.Warn().Str("path", path).Msg("Config file removed; keeping current renderer")
		return
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Config reload failed")
		return
	}
	r, err := cfg.Renderer()
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Config reload failed")
		return
	}
	srv.SetRenderer(r)
	log.Info().Str("path", path).Bool("xhtml", r.XHTML()).Msg("Renderer reloaded")
}
