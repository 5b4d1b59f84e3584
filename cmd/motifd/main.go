// Command motifd serves motif searches over the tenant graphs stored in
// PostgreSQL.
//
// Configuration is read from the environment; see internal/config. The API
// listens on LISTEN_HOST:PORT and Prometheus metrics on LISTEN_HOST:METRICS_PORT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/persistorai/motif/internal/api"
	"github.com/persistorai/motif/internal/config"
	"github.com/persistorai/motif/internal/db"
	"github.com/persistorai/motif/internal/db/migrations"
	"github.com/persistorai/motif/internal/dbpool"
	"github.com/persistorai/motif/internal/service"
	"github.com/persistorai/motif/internal/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("motifd exited")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)

	if level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		err = db.RunMigrations(ctx, pool, log, migrations.FS)
	} else {
		err = db.VerifySchema(ctx, pool, log)
	}

	if err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}
	hostStore := store.NewHostStore(base)
	searchLog := store.NewSearchLogStore(base)

	hosts, err := service.NewHostCache(hostStore, log, cfg.HostCacheSize)
	if err != nil {
		return err
	}

	logWorker := service.NewSearchLogWorker(searchLog, log, cfg.SearchLogQueue)

	motifs := service.NewMotifService(hosts, service.SearchLimits{
		Workers:    cfg.SearchWorkers,
		Policy:     cfg.QueuePolicy(),
		MaxPending: cfg.SearchMaxPending,
		MaxResults: cfg.SearchMaxResults,
		Timeout:    cfg.SearchTimeout,
		CacheSize:  cfg.PredicateCacheSize,
	}, logWorker, log)

	listener := db.NewChangeListener(log, pool, hosts)
	if err := listener.Start(ctx); err != nil {
		return fmt.Errorf("starting change listener: %w", err)
	}

	router := api.NewRouter(&api.RouterDeps{
		Log:               log,
		Pool:              pool,
		Motifs:            motifs,
		Hosts:             service.NewHostService(hostStore, hosts, log),
		History:           searchLog,
		TenantLookup:      store.NewTenantStore(pool),
		CORSOrigins:       cfg.CORSOrigins,
		Version:           config.Version,
		SearchesPerTenant: cfg.SearchesPerTenant,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.SearchTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logWorker.Run(gctx)
		return nil
	})

	g.Go(func() error { return serve(log, srv, "api") })
	g.Go(func() error { return serve(log, metricsSrv, "metrics") })

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Join(srv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	log.WithFields(logrus.Fields{
		"addr":    cfg.Addr(),
		"metrics": cfg.MetricsAddr(),
		"version": config.Version,
		"workers": cfg.SearchWorkers,
	}).Info("motifd started")

	return g.Wait()
}

// serve runs srv until it is shut down.
func serve(log *logrus.Logger, srv *http.Server, name string) error {
	log.WithField("addr", srv.Addr).Infof("%s server listening", name)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}

	return nil
}
