package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	adminhandler "wastebot/internal/admin/handler"
	adminservice "wastebot/internal/admin/service"
	"wastebot/internal/jwttoken"
	"wastebot/internal/platform/config"
	"wastebot/internal/platform/httpserver"
	"wastebot/internal/platform/logger"
	"wastebot/internal/platform/metrics"
	"wastebot/internal/platform/middleware"
	platformredis "wastebot/internal/platform/redis"
	robothandler "wastebot/internal/robot/handler"
	robotservice "wastebot/internal/robot/service"
	"wastebot/internal/storage"
	wastehandler "wastebot/internal/waste/handler"
	wasteservice "wastebot/internal/waste/service"
	auditkafka "wastebot/pkg/platform/audit/kafka"
	"wastebot/pkg/platform/audit/publisher"
	auditmemory "wastebot/pkg/platform/audit/store/memory"

	"wastebot/internal/admin"
	"wastebot/internal/robot"
	"wastebot/internal/waste"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	m := metrics.New()
	tokens := jwttoken.NewService(cfg.JWTSigningKey, "wastebot", cfg.TokenTTL)
	validator := jwttoken.NewServiceAdapter(tokens)

	adminStore, robotStore, wasteStore, dbClose, err := buildStores(cfg)
	if err != nil {
		log.Error("store setup failed", "error", err)
		os.Exit(1)
	}
	defer dbClose()

	cache, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis setup failed", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer cache.Close()
	}

	auditPub, auditClose, err := buildAudit(cfg)
	if err != nil {
		log.Error("audit setup failed", "error", err)
		os.Exit(1)
	}
	defer auditClose()

	admins := adminservice.NewService(adminStore, tokens,
		adminservice.WithLogger(log),
		adminservice.WithMetrics(m),
		adminservice.WithAuditPublisher(auditPub),
	)
	robots := robotservice.NewService(robotStore,
		robotservice.WithLogger(log),
		robotservice.WithMetrics(m),
		robotservice.WithAuditPublisher(auditPub),
	)
	wastes := wasteservice.NewService(wasteStore,
		wasteservice.WithLogger(log),
		wasteservice.WithMetrics(m),
		wasteservice.WithAuditPublisher(auditPub),
		wasteservice.WithStatsCache(cache),
	)

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))

	adminhandler.New(admins, log, validator).Register(router)
	robothandler.New(robots, log, validator).Register(router)
	wastehandler.New(wastes, log).Register(router)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting wastebot server", "addr", cfg.Addr)
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
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// buildStores opens Postgres-backed stores when a URL is configured and
// falls back to in-memory stores for development.
func buildStores(cfg config.Server) (admin.Store, robot.Store, waste.Store, func(), error) {
	if cfg.PostgresURL == "" {
		return admin.NewInMemoryStore(), robot.NewInMemoryStore(), waste.NewInMemoryStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, nil, nil, err
	}
	if err := storage.Apply(ctx, db); err != nil {
		db.Close()
		return nil, nil, nil, nil, err
	}

	return admin.NewPostgres(db), robot.NewPostgres(db), waste.NewPostgres(db), func() { db.Close() }, nil
}

// buildAudit publishes to Kafka when brokers are configured, buffered so
// emission never blocks a request; otherwise events stay in memory.
func buildAudit(cfg config.Server) (*publisher.Publisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		pub := publisher.NewPublisher(auditmemory.NewInMemoryStore())
		return pub, pub.Close, nil
	}

	sink, err := auditkafka.New(cfg.KafkaBrokers, cfg.AuditTopic)
	if err != nil {
		return nil, nil, err
	}
	pub := publisher.NewPublisher(sink, publisher.WithAsyncBuffer(256))
	return pub, func() {
		pub.Close()
		sink.Close()
	}, nil
}
