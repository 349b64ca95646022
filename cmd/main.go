package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"crowdfund/internal/adapter/ethereum"
	httpadapter "crowdfund/internal/adapter/http"
	"crowdfund/internal/adapter/memory"
	"crowdfund/internal/adapter/postgres"
	"crowdfund/internal/adapter/scheduler"
	"crowdfund/internal/adapter/usecase"
	"crowdfund/internal/config"
	"crowdfund/internal/config/configs"
	"crowdfund/internal/core/port"
	"crowdfund/internal/db"
	"crowdfund/internal/logger"
)

// main is the entry point of the crowdfund ledger. It loads configuration,
// opens the configured storage, optionally runs migrations and seeds demo
// data, starts the payout dispatcher when on-chain transfers are enabled,
// then serves the HTTP API. On receiving a termination signal it gracefully
// shuts everything down.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	log, closer := logger.New(cfg.Log)
	defer closer.Close()
	log = log.With(slog.String("env", cfg.Env))
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		campaigns port.CampaignRepository
		payouts   port.PayoutRepository
	)
	switch cfg.Storage.Driver {
	case configs.StorageMemory:
		repo := memory.NewRepository()
		campaigns, payouts = repo, repo
		log.Warn("using in-memory storage; data is lost on restart")
	default:
		// Optionally run migrations if configured. We use the Psql sub-config.
		if cfg.Psql.RunMigrations {
			if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
				log.Error("migration error", slog.Any("error", err))
				return
			}
			log.Info("migrations applied successfully")
		}

		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			log.Error("database connection error", slog.Any("error", err))
			return
		}
		defer pool.Close()

		repo := postgres.NewCampaignRepository(pool)
		campaigns, payouts = repo, repo
	}

	svc := usecase.NewCampaignUseCase(campaigns, payouts, port.SystemClock, log)

	if cfg.Storage.SeedDemo {
		if err = db.Seed(ctx, svc, port.SystemClock.Now()); err != nil {
			log.Error("seed error", slog.Any("error", err))
			return
		}
		log.Info("demo data seeded")
	}

	if cfg.Chain.Enabled {
		stop, err := startDispatcher(ctx, cfg, payouts, log)
		if err != nil {
			log.Error("payout dispatcher error", slog.Any("error", err))
			return
		}
		defer stop()
	} else {
		log.Info("on-chain transfers disabled; payouts stay pending")
	}

	handler := httpadapter.NewHandler(svc, log, cfg.HTTP.AllowedOrigins)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		log.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	value := <-quit
	exitCode = 128 + int(value.(syscall.Signal))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancelShutdown()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", slog.Any("error", err))
	} else {
		log.Info("server gracefully stopped")
	}
	cancel()
}

// startDispatcher connects to the node and schedules the payout job. The
// returned function stops the scheduler and releases the job.
func startDispatcher(ctx context.Context, cfg config.Config, payouts port.PayoutRepository, log *slog.Logger) (func(), error) {
	client, err := ethereum.Dial(ctx, cfg.Chain)
	if err != nil {
		return nil, err
	}
	transferer, err := ethereum.NewTransferer(client, cfg.Chain)
	if err != nil {
		client.Close()
		return nil, err
	}
	log.Info("payout wallet loaded", slog.String("from", transferer.From().Hex()), slog.Int64("chain_id", cfg.Chain.ChainID))

	job, err := scheduler.NewPayoutJob(ctx, payouts, transferer, port.SystemClock, cfg.Payout, log)
	if err != nil {
		client.Close()
		return nil, err
	}
	manager, err := scheduler.NewManager(log)
	if err != nil {
		job.Close()
		client.Close()
		return nil, err
	}
	if err = manager.Register(job); err != nil {
		job.Close()
		client.Close()
		return nil, err
	}
	manager.Start()

	return func() {
		manager.Stop()
		job.Close()
		client.Close()
	}, nil
}
