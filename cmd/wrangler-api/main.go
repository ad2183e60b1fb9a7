// Command wrangler-api serves the job API.
//
// @title Quote Wrangler API
// @version 1.0
// @description Runs quote-corpus operations as background jobs and reports their status and outputs.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-quote-pipeline/internal/api"
	"go-quote-pipeline/internal/api/handler"
	"go-quote-pipeline/internal/metrics"
	"go-quote-pipeline/internal/pipeline"
	"go-quote-pipeline/internal/platform/config"
	"go-quote-pipeline/internal/platform/logging"
	"go-quote-pipeline/internal/store"
	"go-quote-pipeline/pkg/router"
	"go-quote-pipeline/pkg/utils"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default is configs/wrangler.yaml when present)")
	flag.Parse()

	if err := run(*cfgFile); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfgFile string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "wrangler-api",
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	// Init DB
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	runner := pipeline.NewRunner(pipeline.NewCorpus(cfg.Data.Dir, logger, nil), st, logger, pipeline.Defaults{
		ChunkSize:   cfg.Chunk.Size,
		Compression: cfg.Data.Compression,
		Model:       cfg.NLP.Model,
		Negative:    cfg.Sentiment.Negative,
		Positive:    cfg.Sentiment.Positive,
		Timeout:     cfg.Jobs.Timeout,
	})
	runner.Metrics = metrics.New(reg)
	runner.Outputs = utils.NewOutputManager(cfg.Jobs.OutputDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobs := handler.New(ctx, st, runner, logger)

	// Create router and register API routes
	r := router.New(logger)
	api.RegisterRoutes(r, jobs, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := r.Server(cfg.Server.Addr, cfg.Server.ReadTimeout)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", slog.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	jobs.Wait()
	return nil
}
