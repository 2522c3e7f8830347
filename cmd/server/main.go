// merchantkit - merchant operations service for a Shopify shop.
// Designed for Cloud Run deployment with stateless operation.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"merchantkit/internal/branding"
	"merchantkit/internal/config"
	"merchantkit/internal/handler"
	"merchantkit/internal/logger"
	"merchantkit/internal/shopify"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)

	log.Info().
		Str("environment", cfg.Environment).
		Str("shop_domain", cfg.Shop.Domain).
		Str("api_version", cfg.Shop.APIVersion).
		Msg("configuration loaded")

	client := shopify.NewClient(shopify.Options{
		ShopDomain:  cfg.Shop.Domain,
		AccessToken: cfg.Shop.AdminToken,
		APIVersion:  cfg.Shop.APIVersion,
		Logger:      log,
	})

	fonts := branding.NewService(branding.Options{
		API:    client,
		Logger: log,
	})

	h := handler.New(client, fonts, handler.Options{
		AppSecret:        cfg.Shop.AppSecret,
		RaffleFunctionID: cfg.RaffleFunctionID,
	}, log)

	// Create HTTP server with timeouts
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Channel for server errors
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		serverErr <- server.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-serverErr:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		// Give outstanding requests time to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			// Force close if graceful shutdown fails
			server.Close()
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	log.Info().Msg("server stopped")
	return nil
}
