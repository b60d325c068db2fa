package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

// ServeConfig captures the listener settings for Serve.
type ServeConfig struct {
	Addr    string
	Handler http.Handler
	// Ready, when set, receives the bound address once the listener is open.
	Ready func(addr string)
}

// Serve runs an HTTP server until ctx is canceled.
func Serve(ctx context.Context, cfg ServeConfig) error {
	if ctx == nil {
		return errors.New("api: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("api: addr is required")
	}
	if cfg.Handler == nil {
		return errors.New("api: handler is required")
	}
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	if cfg.Ready != nil {
		cfg.Ready(listener.Addr().String())
	}

	server := &http.Server{
		Handler:           cfg.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
