package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"wastebot/internal/gateway"
	"wastebot/internal/platform/config"
	"wastebot/internal/platform/httpserver"
	"wastebot/internal/platform/logger"
	"wastebot/internal/platform/middleware"
)

func main() {
	cfg := config.GatewayFromEnv()
	log := logger.New()

	proxy, err := gateway.New(gateway.DefaultRoutes(), cfg.Upstreams, log)
	if err != nil {
		log.Error("gateway setup failed", "error", err)
		os.Exit(1)
	}

	handler := middleware.Recovery(log)(middleware.RequestID(middleware.Logger(log)(proxy)))
	srv := httpserver.New(cfg.Addr, handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting wastebot gateway", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("gateway error", "error", err)
		os.Exit(1)
	}
}
