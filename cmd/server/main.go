package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/codelens/server/internal/config"
	"codeberg.org/codelens/server/internal/logger"
)

// @title Codelens API
// @version 1.0
// @description Code-analysis relay for the static code analyzer frontend
// @description
// @description Features:
// @description - LLM-backed fix suggestions with explanatory comments
// @description - Heuristic language detection (also as a live websocket)
// @description - Syntax checking through the host's python3, javac, gcc and g++
// @description - Similarity score between original and corrected code

// @contact.name API Support
// @contact.url https://codeberg.org/codelens/server

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Shared secret. Format: Bearer {key}, or send it as the api_key body field

// headroom on top of the completion timeout for reading the body and writing the response
const writeTimeoutSlack = 15 * time.Second

func main() {
	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	logger.Setup(cfg.Environment)
	logger.Info("starting codelens server", "environment", cfg.Environment)

	services, err := InitializeServices(context.Background(), cfg)
	if err != nil {
		logger.Fatal("failed to initialize services", "error", err)
	}

	// create server with all dependencies
	srv, err := NewServer(cfg, services)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           srv.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.LLM.Timeout + writeTimeoutSlack,
		IdleTimeout:       60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// start websocket hub
	go srv.hub.Run()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// notify websocket clients and close connections first
	srv.hub.Shutdown()
	<-srv.hub.Done()

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}
