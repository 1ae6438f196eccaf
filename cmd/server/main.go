package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scandine/ordering-service/internal/config"
	"github.com/scandine/ordering-service/internal/db"
	"github.com/scandine/ordering-service/internal/db/repository"
	"github.com/scandine/ordering-service/internal/gateway"
	"github.com/scandine/ordering-service/internal/router"
	"github.com/scandine/ordering-service/internal/service"
	"github.com/scandine/ordering-service/internal/websockets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	database, err := db.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run database migrations
	if err := database.Migrate(cfg.Database); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize WebSocket hub
	hub := websockets.NewHub()
	go hub.Run()

	// Wire services
	repos := repository.NewRepositories(database)
	authService := service.NewAuthService(repos, service.JWTConfig{
		Secret:    cfg.JWT.Secret,
		ExpiresIn: cfg.JWT.ExpiresIn,
	})
	gatewayClient := gateway.NewClient(cfg.Gateway)
	orderService := service.NewOrderService(repos, gatewayClient, hub, service.NewSubscriptionPolicy())
	catalogService := service.NewCatalogService(repos)

	// Initialize router
	r := router.New(database, router.Services{
		Auth:    authService,
		Orders:  orderService,
		Catalog: catalogService,
	}, hub)

	// Create HTTP server
	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
