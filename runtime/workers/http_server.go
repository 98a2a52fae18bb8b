package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// HTTPServerWorker serves until the context is done, then shuts down gracefully.
// A listen failure is returned so the supervisor can retry.
type HTTPServerWorker struct {
	log             *slog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewHTTPServerWorker(log *slog.Logger, server *http.Server, shutdownTimeout time.Duration) *HTTPServerWorker {
	return &HTTPServerWorker{log: log, server: server, shutdownTimeout: shutdownTimeout}
}

func (w *HTTPServerWorker) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		w.log.Info("Starting HTTP server", "address", w.server.Addr, "at", time.Now().UTC())
		errChan <- w.server.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.shutdownTimeout)
	defer cancel()
	w.log.Info("Shutting down HTTP server", "address", w.server.Addr)
	if err := w.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
