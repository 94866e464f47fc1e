package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/hiero/am"
	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/logger"
	"github.com/teranos/hiero/server"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		Short:   "Start the HTTP and websocket API",
		Long: `Serve the conversion engine over HTTP.

Endpoints:
  POST /api/convert    {"text": "...", "trace": true}
  POST /api/batch      {"texts": [...], "tolerant": false}
  GET  /api/describe?c=h
  GET  /api/alphabet
  POST /api/validate   {"text": "..."}
  GET  /health
  GET  /ws             every text frame is answered with its trace

The port, allowed origins, rate limit and body size come from the [server]
section of am.toml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := am.Load()
			if err != nil {
				return errors.Wrap(err, "failed to load config")
			}
			if cmd.Flags().Changed("port") {
				override := *cfg
				override.Server.Port = port
				cfg = &override
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if theme := cfg.GetServerLogTheme(); theme != "" {
				logger.SetTheme(theme)
			}

			store, closeStore, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			v := verbosity(cmd)
			if v == 0 {
				// The server is quiet without startup logs
				v = logger.VerbosityInfo
				if err := logger.Initialize(logger.JSONOutput, v); err != nil {
					return errors.Wrap(err, "failed to initialize logger")
				}
			}
			if !logger.JSONOutput {
				printStartupBanner(cmd.OutOrStdout(), cfg, v)
			}

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg.Server, store, logger.ComponentLogger("server"))
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", am.DefaultServerPort, "Port to listen on (default: server.port)")
	return cmd
}

// cmdContext returns the command's context, or Background when run
// without one.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
