package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"billtrack/internal/amqp"
	"billtrack/internal/cli"
	"billtrack/internal/ports"
	"billtrack/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting notify-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	var channel ports.NotificationChannel = services.LogChannel{}
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, alerts will be logged only", "error", err)
		} else {
			defer amqpClient.Close()
			channel = amqpClient
			logger.Info("AMQP client initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled, alerts will be logged only")
	}

	notifier := services.NewNotificationService(repo, repo, channel)

	logger.Info("Due-date alert pass configured",
		"interval", cfg.NotifyInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// One pass on startup, then on every tick. A failed pass is logged
		// and retried on the next tick rather than killing the worker.
		runPass := func(now time.Time) {
			count, err := notifier.Run(gctx, now)
			if err != nil {
				logger.Error("Alert pass failed", "error", err)
				return
			}
			logger.Info("Alert pass complete",
				"alerts_emitted", count,
				"next_check", now.Add(cfg.NotifyInterval).Format("15:04:05"))
		}

		runPass(time.Now())

		ticker := time.NewTicker(cfg.NotifyInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case now := <-ticker.C:
				runPass(now)
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("Worker error", "error", err)
		os.Exit(1)
	}
	logger.Info("Notify-worker shutdown complete")
}
