// cmd/collab-worker/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collab-workers/internal/collaboration"
	"collab-workers/internal/common/camunda"
	"collab-workers/internal/common/config"
	"collab-workers/internal/common/database"
	"collab-workers/internal/common/logger"
	"collab-workers/internal/common/observability"
	"collab-workers/internal/ingestion"

	flc "collab-workers/internal/workers/collaboration/find-longest-collaboration"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "console")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting collaboration worker...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, observability.Options{Tracing: cfg.Tracing})
	defer obs.Shutdown()

	ctx := context.Background()

	zeebe, err := camunda.Connect(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully", zap.String("gateway", cfg.Camunda.BrokerAddress))

	var source ingestion.Source
	var pg *database.PostgresClient
	if cfg.Database.Postgres.Enabled() {
		err = camunda.Retry(ctx, camunda.DefaultRetryConfig, "PostgreSQL connection", log, func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		})
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		source = ingestion.NewPostgresSource(pg, log)
		zapLog.Info("PostgreSQL connected successfully")
	} else {
		zapLog.Info("PostgreSQL not configured, datasetId jobs will be rejected")
	}

	var redis *database.RedisClient
	if cfg.Database.Redis.Enabled() {
		err = camunda.Retry(ctx, camunda.DefaultRetryConfig, "Redis connection", log, func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		})
		if err != nil {
			// the cache is optional; jobs still run without it
			zapLog.Warn("redis unavailable, result cache disabled", zap.Error(err))
			redis = nil
		} else {
			defer redis.Close()
			zapLog.Info("Redis connected successfully")
		}
	}

	pipeline := collaboration.NewPipeline(
		collaboration.WithMaxWorkers(cfg.Collaboration.MaxWorkers),
		collaboration.WithLogger(log),
		collaboration.WithObservability(obs),
	)

	var workers []*camunda.Worker
	if config.IsWorkerEnabled(cfg, flc.TaskType) {
		handler := flc.NewHandler(flc.LoadConfig(cfg), source, redis, pipeline, obs, log)
		w := camunda.NewWorker(zeebe.Zeebe(), flc.TaskType, config.GetWorkerConfig(cfg, flc.TaskType), handler, log)
		w.Start()
		workers = append(workers, w)
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", flc.TaskType))
	}

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := zeebe.HealthCheck(r.Context()); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Collaboration worker stopped gracefully")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}
