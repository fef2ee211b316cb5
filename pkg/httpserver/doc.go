// Package httpserver runs the HTTP listener with sane timeouts, graceful
// shutdown on signals or context cancellation, and start/stop hooks for
// logging. Configuration comes from environment variables through Config
// or programmatically through options:
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
