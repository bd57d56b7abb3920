package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownTimeout bounds how long in-flight requests get to finish.
const ShutdownTimeout = 10 * time.Second

// GracefulShutdown waits for SIGINT or SIGTERM, drains srv and then runs the
// hooks in order with the same deadline. done is closed when everything has
// stopped.
func GracefulShutdown(srv *http.Server, logger *zap.Logger, done chan<- struct{}, hooks ...func(context.Context) error) {
	defer close(done)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info("Shutting down gracefully, press Ctrl+C again to force")

	stop() // Allow Ctrl+C to force shutdown

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	for _, hook := range hooks {
		if err := hook(shutdownCtx); err != nil {
			logger.Error("Shutdown hook failed", zap.Error(err))
		}
	}

	logger.Info("Server exiting")
}
