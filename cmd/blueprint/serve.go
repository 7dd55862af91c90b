package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/blueprint/pkg/api"
	"github.com/dmitrymomot/blueprint/pkg/clientip"
	"github.com/dmitrymomot/blueprint/pkg/httpserver"
	"github.com/dmitrymomot/blueprint/pkg/loader"
	"github.com/dmitrymomot/blueprint/pkg/logger"
)

type serveFlags struct {
	addr  string
	watch bool
}

func newServeCmd(a *app) *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation HTTP API",
		Long: `Start the HTTP API.

Routes:
  GET  /blueprints                    list loaded blueprints
  GET  /blueprints/{name}             describe declared fields
  POST /blueprints/{name}/validate    validate the request body
  POST /blueprints/{name}/filter      filter the request body
  GET  /healthz                       readiness
  GET  /metrics                       Prometheus metrics (BLUEPRINT_METRICS)

With --watch (or BLUEPRINT_WATCH=true) blueprints are reloaded when files
change. A broken edit keeps the previous blueprints in service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (overrides BLUEPRINT_HTTP_ADDR)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "reload blueprints on file changes")
	return cmd
}

func (a *app) serve(ctx context.Context, flags *serveFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpCfg := a.cfg.HTTP
	if flags.addr != "" {
		httpCfg.Addr = flags.addr
	}

	handler := api.New(a.store,
		api.WithRegistry(a.registry),
		api.WithTranslator(a.translator),
		api.WithMetrics(a.metrics),
		api.WithLogger(a.logger),
		api.WithClientIP(clientip.New(clientip.WithHeaders(a.cfg.TrustedProxyHeaders...))),
		api.WithMaxBodySize(a.cfg.MaxBodySize),
	).Routes()
	server := httpserver.New(httpCfg,
		httpserver.WithLogger(a.logger.With(logger.Component("http"))),
	)

	var watcher *loader.Watcher
	if flags.watch || a.cfg.Watch {
		var err error
		watcher, err = loader.NewWatcher(a.cfg.BlueprintsDir, a.store,
			loader.WithWatcherLogger(a.logger.With(logger.Component("watcher"))),
		)
		if err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, handler)
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.Watch(ctx)
		})
	}
	return g.Wait()
}
