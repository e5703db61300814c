package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"catalog-manager/internal/config"
	"catalog-manager/internal/database"
	"catalog-manager/internal/logger"
	"catalog-manager/internal/server"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
)

func gracefulShutdown(webServer *server.Server, logger *zap.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := webServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := webServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	done <- true
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting catalog web UI",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Web.Port),
		zap.String("mode", cfg.Web.ServiceMode),
	)

	if cfg.Tracing.Enabled {
		otel.SetTextMapPropagator(propagation.TraceContext{})
	}

	var (
		dbService *database.Service
		queries   database.Queries
	)
	switch cfg.Web.ServiceMode {
	case config.ServiceModeLocal:
		queries, err = database.LoadQueries(cfg.Database.QueriesFile)
		if err != nil {
			log.Fatal("Failed to load query templates", zap.Error(err))
		}
		dbService, err = database.New(context.Background(), cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.RunMigrations(dbService.DB().DB, cfg.Database.Driver, log); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
	case config.ServiceModeRemote:
		log.Info("Using catalog REST API", zap.String("url", cfg.Web.RestURL))
	default:
		log.Fatal("Unknown web service mode", zap.String("mode", cfg.Web.ServiceMode))
	}

	srv := server.NewWebServer(cfg, log, dbService, queries)

	done := make(chan bool, 1)
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
