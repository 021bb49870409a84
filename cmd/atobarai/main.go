package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stackpine/saleor-payment-apps/internal/application/atobaraiapp"
	"github.com/stackpine/saleor-payment-apps/internal/config"
	"github.com/stackpine/saleor-payment-apps/internal/infrastructure/appconfig"
	"github.com/stackpine/saleor-payment-apps/internal/infrastructure/atobaraiapi"
	"github.com/stackpine/saleor-payment-apps/internal/infrastructure/persistence"
	"github.com/stackpine/saleor-payment-apps/internal/infrastructure/persistence/postgres"
	"github.com/stackpine/saleor-payment-apps/internal/interfaces/rest/handlers"
	"github.com/stackpine/saleor-payment-apps/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting np atobarai app",
		"port", cfg.Server.Port,
		"app_id", cfg.App.ID,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := persistence.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}

	configRepo := appconfig.NewRepo(redisClient)
	recorder := postgres.NewTransactionRecorder(db)
	clients := atobaraiapi.NewFactory(cfg.Atobarai.ConnTimeout, logger)

	gatewayInit := atobaraiapp.NewGatewayInitializeUseCase(configRepo, logger)
	initialize := atobaraiapp.NewInitializeSessionUseCase(configRepo, recorder, clients, logger)
	cancel := atobaraiapp.NewCancelationRequestedUseCase(configRepo, recorder, clients, logger)

	h := handlers.NewAtobaraiHandlers(
		cfg.App.ID,
		gatewayInit,
		initialize,
		cancel,
		logger,
	)

	mux := http.NewServeMux()
	h.Register(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
