// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run listens on the configured address, serves until the context is
// cancelled or the process receives SIGINT/SIGTERM, then shuts down within the
// shutdown timeout. Listen errors are wrapped with ErrStart and shutdown
// errors with ErrShutdown.
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithLogger(log),
//		httpserver.WithOnListen(func(addr net.Addr) { log.Info("ready", "addr", addr) }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// HealthHandler serves liveness and readiness probes.
package httpserver
