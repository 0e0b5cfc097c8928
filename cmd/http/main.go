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

	"labstock/internal/auth"
	"labstock/internal/config"
	"labstock/internal/handler"
	"labstock/internal/mailer"
	"labstock/internal/repository"
	"labstock/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Database
	ctx := context.Background()
	dbPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	fmt.Println("Connected to database")

	// 3. Setup Logic
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	mail := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		Sender:   cfg.SMTP.Sender,
	})

	userRepo := repository.NewUserRepository(dbPool)
	componentRepo := repository.NewComponentRepository(dbPool)
	checkoutRepo := repository.NewCheckoutRepository(dbPool)

	authService := service.NewAuthService(userRepo, tokens)
	componentService := service.NewComponentService(componentRepo)
	checkoutService := service.NewCheckoutService(checkoutRepo, componentRepo, mail)

	h := handler.NewHandler(
		tokens,
		handler.NewAuthHandler(authService),
		handler.NewComponentHandler(componentService),
		handler.NewCheckoutHandler(checkoutService),
	)

	// 4. Setup Server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: h,
	}

	// 5. Run Server with Graceful Shutdown
	go func() {
		fmt.Printf("Starting server on port %s\n", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	fmt.Println("Shutting down server...")

	// Create a deadline to wait for.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Drain queued notifications before exiting.
	mail.Close()

	fmt.Println("Server exiting")
}
