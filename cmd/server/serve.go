package main

import (
	"alcyxob/gymbuddy/internal/api"
	"alcyxob/gymbuddy/internal/config"
	"alcyxob/gymbuddy/internal/metrics"
	"alcyxob/gymbuddy/internal/service"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg config.Config) error {
	log.Println("starting gymbuddy server ...")

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsManager := metrics.NewManager("gymbuddy", "api", reg)

	store = withCatalogCache(store, cfg.Catalog, metricsManager)
	log.Infof("database driver %q ready", cfg.Database.Driver)

	opener, err := newOpener(ctx, cfg.S3)
	if err != nil {
		return err
	}
	if cfg.Catalog.SeedSource != "" {
		if err := seedCatalog(ctx, store, opener, cfg.Catalog.SeedSource); err != nil {
			return err
		}
	} else if cfg.Database.Driver == config.DriverMemory {
		log.Warnln("memory driver without catalog.seed_source, the generator has no exercises")
	}

	calendar, err := newCalendar(cfg.Workouts)
	if err != nil {
		return err
	}

	authService, err := service.NewAuthService(store.Users, cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}
	services := api.Services{
		Auth:     authService,
		Workouts: service.NewWorkoutService(store, service.NewRandomSource(cfg.Workouts.RandomSeed), calendar, metricsManager),
		Progress: service.NewProgressService(store, calendar, metricsManager),
		Partners: service.NewPartnerService(store, metricsManager),
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	metricsOpts := api.MetricsOptions{Manager: metricsManager}
	if cfg.Metrics.Enabled {
		metricsOpts.Gatherer = reg
		metricsOpts.Path = cfg.Metrics.Path
	}
	api.SetupRoutes(router, services, metricsOpts)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen and serve: %w", err)
		}
	}
	log.Println("shutting down server ...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exiting")
	return nil
}
