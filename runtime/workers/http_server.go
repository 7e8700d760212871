package workers

import (
	"context"
	"log/slog"
	"time"
)

// HTTPServer is what the worker needs from the REST and push server.
type HTTPServer interface {
	Listen(addr string) error
	Shutdown(ctx context.Context) error
}

// HTTPServerWorker serves until ctx is canceled, then shuts down gracefully.
type HTTPServerWorker struct {
	log             *slog.Logger
	server          HTTPServer
	addr            string
	shutdownTimeout time.Duration
}

func NewHTTPServerWorker(log *slog.Logger, server HTTPServer, addr string, shutdownTimeout time.Duration) *HTTPServerWorker {
	return &HTTPServerWorker{log: log, server: server, addr: addr, shutdownTimeout: shutdownTimeout}
}

func (w *HTTPServerWorker) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Listen(w.addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()
		if err := w.server.Shutdown(shutdownCtx); err != nil {
			w.log.Error("HTTP server shutdown failed", "error", err)
		}
		<-errCh
		w.log.Info("HTTP server stopped")
		return ctx.Err()
	}
}
