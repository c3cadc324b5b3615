// Package server runs the HTTP listener next to background tasks and shuts
// everything down together on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ruangkopi/cafe/pkg/logger"
)

// ShutdownTimeout bounds how long in-flight requests get to finish. Request
// contexts are cancelled as soon as shutdown begins, so streaming handlers
// waiting on r.Context() return instead of holding the server open.
const ShutdownTimeout = 10 * time.Second

// Task is a background loop that returns when ctx is cancelled.
type Task func(ctx context.Context)

// Run serves handler on addr until ctx is cancelled or a termination signal
// arrives. Tasks share the server's lifetime.
func Run(ctx context.Context, addr string, handler http.Handler, tasks ...Task) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(cancelBase)

	g, gctx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			task(gctx)
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("server: listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server: shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if err != nil {
		logger.Error("server: stopped with error", "error", err)
		return err
	}
	logger.Info("server: stopped")
	return nil
}
