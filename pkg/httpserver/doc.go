// Package httpserver runs an http.Handler with graceful shutdown.
//
//	srv := httpserver.New(httpserver.WithAddr(":8080"), httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server failed", logger.Error(err))
//	}
//
// Run returns when ctx is cancelled and in-flight requests finished, or when
// the shutdown timeout expires. HealthCheckHandler serves liveness and
// readiness probes.
package httpserver
