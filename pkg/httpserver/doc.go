// Package httpserver runs an http.Server for the lifetime of a context.
//
// Run listens on Config.Addr (or on a listener given with WithListener),
// serves until the context is cancelled and then shuts down gracefully within
// Config.ShutdownTimeout. Request contexts carry the values of the Run
// context, so loggers and ids attached there reach handlers. Server errors go
// to the slog logger at warn level.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Config carries env and validate tags, so it can be embedded in an
// application config loaded with package config.
//
// HealthCheckHandler builds a JSON probe. Without checks it reports "alive";
// with checks it reports "ready" or answers 503 "not_ready" when any check
// fails.
//
// Run wraps listen and serve failures with ErrStart and Shutdown wraps
// failures with ErrShutdown.
package httpserver
