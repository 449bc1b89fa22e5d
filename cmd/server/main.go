package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"exchange-chat-service/internal/adapter/cache"
	httpRouter "exchange-chat-service/internal/adapter/http"
	"exchange-chat-service/internal/adapter/render"
	"exchange-chat-service/internal/adapter/repository"
	"exchange-chat-service/internal/audit"
	"exchange-chat-service/internal/chat"
	"exchange-chat-service/internal/config"
	"exchange-chat-service/internal/metrics"
	"exchange-chat-service/internal/service"
	"exchange-chat-service/pkg/logger"
)

func main() {
	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	log.Info("Starting exchange chat service")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appMetrics := metrics.NewMetrics()

	rateStore := cache.NewFileStore(cfg.Cache.File, cfg.Cache.Workers, log, appMetrics)

	rateSource := repository.NewPrivatBankAPI(
		cfg.Upstream.BaseURL,
		cfg.Upstream.Timeout,
		log,
		appMetrics,
	)

	fetcher := service.NewExchangeFetcher(rateSource, rateStore, clockwork.NewRealClock(), log)

	auditLog, err := audit.NewLog(cfg.Audit.File)
	if err != nil {
		log.Error("Failed to open exchange activity log", "error", err)
		os.Exit(1)
	}

	hub := chat.NewHub(time.Now().UnixNano(), log, appMetrics)

	handler := httpRouter.NewHandler(fetcher, hub, render.NewTable(), auditLog, log, appMetrics)
	router := httpRouter.NewRouter(handler, log)
	e := router.Setup()

	go func() {
		log.Info("Starting server", "addr", cfg.Server.Addr)
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	hub.Stop()
	rateStore.Close()

	if err := auditLog.Close(); err != nil {
		log.Error("Failed to close exchange activity log", "error", err)
	}

	log.Info("Server exited")
}
