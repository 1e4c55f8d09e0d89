package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/mulghai-point/backend/internal/config"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/handlers"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/pincode"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/pricing"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/repository"
	"github.com/Lixing-Zhang/mulghai-point/backend/internal/service"
	"github.com/Lixing-Zhang/mulghai-point/backend/pkg/logger"
	"github.com/robfig/cron"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting storefront api server",
		"shop", cfg.Shop.Name,
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()

	// Delivery areas: defaults, shop file overrides, then extra area files
	areas := pincode.DefaultAreas()
	if len(cfg.Shop.ServiceAreas) > 0 {
		areas = cfg.Shop.ServiceAreas
	}
	validator := pincode.NewValidator(areas)
	if len(cfg.Shop.ServiceAreaFiles) > 0 {
		if err := validator.LoadFromFiles(ctx, cfg.Shop.ServiceAreaFiles); err != nil {
			log.Error("failed to load service area files", "error", err)
			os.Exit(1)
		}
	}
	stats := validator.GetStats()
	log.Info("delivery areas loaded", "total_areas", stats["total_areas"], "file_paths", stats["file_paths"])

	scheduler := cron.New()
	stores, err := openStores(ctx, cfg.Storage, scheduler, log)
	if err != nil {
		log.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	// Initialize repositories
	productRepo := repository.NewInMemoryProductRepository()

	// Initialize services
	productService, err := service.NewProductService(ctx, productRepo)
	if err != nil {
		log.Error("failed to build catalog", "error", err)
		stores.Close()
		os.Exit(1)
	}
	policy := pricing.NewPolicy(cfg.Shop.Delivery.Threshold, cfg.Shop.Delivery.Fee)
	cartService := service.NewCartService(productRepo, stores.Carts, policy)
	shop := service.ShopInfo{
		Name:          cfg.Shop.Name,
		WhatsAppPhone: cfg.Shop.WhatsAppPhone,
		SupportPhone:  cfg.Shop.SupportPhone,
	}
	orderService := service.NewOrderService(cartService, validator, stores.Orders, shop)
	statusService := service.NewStatusService(stores.Status)

	// Initialize handlers
	router := handlers.NewRouter(handlers.Handlers{
		Health:   handlers.NewHealthHandler(log, stores.HealthChecks),
		Status:   handlers.NewStatusHandler(statusService, log),
		Products: handlers.NewProductHandler(productService, log),
		Pincodes: handlers.NewPincodeHandler(validator, log),
		Carts:    handlers.NewCartHandler(cartService, log),
		Orders:   handlers.NewOrderHandler(orderService, log),
		WhatsApp: handlers.NewWhatsAppHandler(shop, log),
	}, cfg.Server, cfg.Auth, log)

	scheduler.Start()
	defer scheduler.Stop()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("server failed to start", "error", err)
		scheduler.Stop()
		stores.Close()
		os.Exit(1)
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}

	log.Info("server stopped gracefully")
}
