package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"saas-background-remover/internal/config"
	"saas-background-remover/internal/domain/ports/adapter"
	imgAdapters "saas-background-remover/internal/infra/adapters/imaging"
	payAdapters "saas-background-remover/internal/infra/adapters/payment"
	"saas-background-remover/internal/infra/logging"
	"saas-background-remover/internal/infra/metrics"
	red "saas-background-remover/internal/infra/redis"
	"saas-background-remover/internal/infra/web"
	"saas-background-remover/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (in-memory payment gateway)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	idemStore := red.NewIdempotencyStore(redisClient, cfg.Payment.IdempotencyTTL)
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Payment gateway ----
	var gateway adapter.OrderGateway
	if cfg.Payment.Razorpay.KeyID != "" && cfg.Payment.Razorpay.KeySecret != "" {
		gateway, err = payAdapters.NewRazorpayGateway(
			cfg.Payment.Razorpay.KeyID,
			cfg.Payment.Razorpay.KeySecret,
			cfg.Payment.Razorpay.Timeout,
		)
		if err != nil {
			log.Fatalf("razorpay gateway: %v", err)
		}
		logger.Info().
			Str("gateway", gateway.Name()).
			Str("key_id", logging.Redact(cfg.Payment.Razorpay.KeyID, cfg.Runtime.Dev)).
			Msg("payment gateway configured")
	} else {
		gateway = payAdapters.NewNoopOrderGateway()
		logger.Warn().Msg("no razorpay credentials; using in-memory noop gateway")
	}

	// ---- Imaging provider ----
	var remover adapter.BackgroundRemover
	if cfg.Imaging.ClipDrop.APIKey != "" {
		remover, err = imgAdapters.NewClipDropRemover(
			cfg.Imaging.ClipDrop.APIKey,
			cfg.Imaging.ClipDrop.Endpoint,
			cfg.Imaging.ClipDrop.Timeout,
		)
		if err != nil {
			log.Fatalf("clipdrop: %v", err)
		}
	} else {
		remover = imgAdapters.NewNoopRemover()
		logger.Warn().Msg("no clipdrop api key; using noop remover")
	}

	// ---- Use cases ----
	paymentUC := usecase.NewPaymentUseCase(gateway, idemStore, cfg.Payment.Razorpay.KeySecret, logger)
	removalUC := usecase.NewRemovalUseCase(remover, logger)

	// ---- HTTP server ----
	server := web.NewServer(paymentUC, removalUC, rateLimiter, cfg, logger)
	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		logger.Error().Err(err).Msg("http server failed")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
