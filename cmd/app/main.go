// File: cmd/app/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"softcontrol-backoffice/internal/config"
	"softcontrol-backoffice/internal/domain/ports/repository"
	"softcontrol-backoffice/internal/infra/api"
	pg "softcontrol-backoffice/internal/infra/db/postgres"
	"softcontrol-backoffice/internal/infra/identity"
	"softcontrol-backoffice/internal/infra/logging"
	"softcontrol-backoffice/internal/infra/metrics"
	red "softcontrol-backoffice/internal/infra/redis"
	"softcontrol-backoffice/internal/infra/sched"
	"softcontrol-backoffice/internal/infra/web"
	"softcontrol-backoffice/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	logging.Global = *logger
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	tm := pg.NewTxManager(pool)
	profileRepo := pg.NewProfileRepo(pool)
	customerRepo := pg.NewCustomerRepo(pool)
	productRepo := pg.NewProductRepo(pool)
	subRepo := pg.NewSubscriptionRepo(pool)
	licenseRepo := pg.NewLicenseRepo(pool)
	saleRepo := pg.NewSaleRepo(pool)
	goalRepo := pg.NewGoalRepo(pool)

	// ---- Redis (optional) ----
	var ledger repository.EventLedger
	var statsCache repository.StatsCache
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connect failed")
		}
		defer redisClient.Close()
		if cfg.Webhook.DedupTTL > 0 {
			ledger = red.NewEventLedger(redisClient)
		}
		statsCache = red.NewStatsCache(redisClient, 30*time.Second)
	} else {
		logger.Warn().Msg("redis not configured; webhook dedup and stats cache disabled")
	}

	// ---- Reconciliation fast path (optional) ----
	var processor repository.PaymentProcessor
	if cfg.Reconcile.UseRPC {
		processor = pg.NewPaymentProcessor(pool)
	}

	// ---- Identity provider ----
	idp := identity.NewHTTPProvider(&cfg.Identity)

	// ---- Use cases ----
	authUC := usecase.NewAuthUseCase(profileRepo, customerRepo, logger)
	staffUC := usecase.NewStaffUseCase(profileRepo, idp, logger)
	subUC := usecase.NewSubscriptionUseCase(subRepo, productRepo, licenseRepo, saleRepo, tm, logger)
	licenseUC := usecase.NewLicenseUseCase(licenseRepo, logger)
	reconUC := usecase.NewReconcileUseCase(customerRepo, subRepo, licenseRepo, saleRepo, productRepo, ledger, cfg.Webhook.DedupTTL, processor, logger)
	statsUC := usecase.NewStatsUseCase(customerRepo, subRepo, licenseRepo, saleRepo, statsCache, logger)
	goalUC := usecase.NewGoalUseCase(goalRepo, saleRepo, customerRepo, subRepo, licenseRepo, logger)

	// ---- HTTP server ----
	auth := web.NewAuthManager(cfg.Session.Secret, !cfg.Runtime.Dev, cfg.Session.TTL)
	srv := web.NewServer(authUC, staffUC, statsUC, goalUC, subUC, licenseUC, reconUC, idp, auth, logger)
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	handler := api.Chain(mux,
		api.Recover(logger),
		api.TraceID(),
		api.RequestLog(logger),
		api.Timeout(cfg.Server.WriteTimeout),
	)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Goal refresh worker ----
	worker := sched.NewGoalWorker(cfg.Scheduler.GoalRefreshInterval, goalUC, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown failed")
	}
}
