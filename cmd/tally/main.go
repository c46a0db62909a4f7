package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tally/internal/amqp"
	"tally/internal/backend"
	"tally/internal/cli"
	apphttp "tally/internal/http"
	"tally/internal/services"
	"tally/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	// Backend failure does not abort startup: the server runs degraded so
	// the probe endpoints keep answering, matching how deployments tell
	// "server down" from "database down".
	var (
		txStore store.TransactionStore
		cleanup backend.CleanupFunc
	)
	result, err := backend.New(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger)
	if err != nil {
		logger.Warn("Backend initialization failed, running degraded", "error", err, "backend", cfg.DataBackend)
	} else {
		txStore = result.Store
		cleanup = result.Cleanup
	}

	// Change events are optional; without AMQP writes simply go unannounced.
	var publisher store.EventPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" && txStore != nil {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP initialization failed, change events disabled", "error", err)
		} else {
			publisher = amqpClient
			logger.Info("Change event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	if txStore != nil {
		txStore = services.NewTransactionService(txStore, publisher)
	}

	srv := apphttp.NewServer(":"+cfg.Port, cfg.Port, txStore)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Error("AMQP close error", "error", err)
			}
		}
		if cleanup != nil {
			if err := cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
		cancel()
	}()

	logger.Info("Starting tally server", "port", cfg.Port, "backend", cfg.DataBackend, "degraded", txStore == nil)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
