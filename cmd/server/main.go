package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order_bot/internal/config"
	"order_bot/internal/conversation"
	"order_bot/internal/database"
	"order_bot/internal/handlers"
	"order_bot/internal/logger"
	"order_bot/internal/redis"
	"order_bot/internal/repository"
	"order_bot/internal/services"
	"order_bot/internal/session"
	"order_bot/internal/sheets"
	"order_bot/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Initialize store
	catalogRepo, orderRepo, closeStore := openStore(ctx, cfg, log)
	defer closeStore()

	// Initialize sessions
	sessions, closeSessions := openSessions(cfg, log)
	defer closeSessions()

	// Initialize WhatsApp client
	whatsappClient := whatsapp.NewClient(cfg.TwilioAPIURL, cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)

	// Initialize services
	catalogService := services.NewCatalogService(catalogRepo, cfg.StoreCallTimeout(), log)
	orderService := services.NewOrderService(orderRepo, cfg.StoreCallTimeout())
	whatsappService := services.NewWhatsAppService(whatsappClient)

	engine := conversation.NewEngine(sessions, catalogService, orderService, whatsappService, log, conversation.Options{
		BusinessName:       cfg.BusinessName,
		PaymentLinkBaseURL: cfg.PaymentLinkBaseURL,
		PaymentAlias:       cfg.PaymentAlias,
	})
	adminService := services.NewAdminService(orderService, engine, log)

	// Initialize handlers
	router := handlers.NewRouter(
		handlers.NewWhatsAppHandler(engine, log),
		handlers.NewAPIHandler(adminService, whatsappService, log),
		log,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("Server starting",
			zap.String("port", cfg.ServerPort),
			zap.String("store", cfg.StoreBackend),
			zap.String("sessions", cfg.SessionBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Info("Received shutdown signal")
	case err := <-srvErr:
		log.Error("Server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}

	log.Info("Server stopped")
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.CatalogRepository, repository.OrderRepository, func()) {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := database.Initialize(cfg.DatabaseURL, log)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		closeDB := func() {
			if err := database.Close(db); err != nil {
				log.Warn("Failed to close database", zap.Error(err))
			}
		}
		return repository.NewProductRepository(db), repository.NewOrderRepository(db), closeDB
	default:
		client, err := sheets.NewClient(ctx, cfg.GoogleSheetID, cfg.GoogleCredentialsFile, cfg.GoogleCredentialsJSON)
		if err != nil {
			log.Fatal("Failed to create spreadsheet client", zap.Error(err))
		}
		return repository.NewSheetsCatalogRepository(client, cfg.ProductsRange, log),
			repository.NewSheetsOrderRepository(client, cfg.OrdersSheet),
			func() {}
	}
}

func openSessions(cfg *config.Config, log *zap.Logger) (session.Store, func()) {
	if cfg.SessionBackend != config.SessionRedis {
		return session.NewMemoryStore(), func() {}
	}

	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	closeRedis := func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close Redis", zap.Error(err))
		}
	}
	return session.NewRedisStore(redisClient, cfg.SessionTTL()), closeRedis
}
