package main

import (
	"context"
	"fmt"
	"log"
	"marketdata-normalizer/internal/database"
	"marketdata-normalizer/internal/platform/config"
	"marketdata-normalizer/internal/platform/logger"
	"marketdata-normalizer/internal/server"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func gracefulShutdown(fiberServer *server.FiberServer, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("shutting down gracefully, press Ctrl+C again to force")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fiberServer.ShutdownWithContext(ctx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	cfg := config.GetConfig()

	logger.Init(logger.Config{
		Filename:   cfg.Log.Filename,
		Level:      cfg.Log.Level,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
		Console:    cfg.Log.Console,
	})
	appLogger := logger.Get()
	defer appLogger.Sync()

	var db database.Service
	if cfg.Database.Enabled {
		var err error
		db, err = database.New(cfg.Database.Path)
		if err != nil {
			appLogger.Fatal("Failed to open trade journal", zap.Error(err))
		}
		defer db.Close()
		appLogger.Info("Trade journal opened at " + cfg.Database.Path)
	}

	fiberServer := server.New(cfg, db, appLogger, logger.GetJournalLogger())
	fiberServer.RegisterFiberRoutes()

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	port := cfg.Server.Port
	if portEnv := os.Getenv("PORT"); portEnv != "" {
		if parsed, err := strconv.Atoi(portEnv); err == nil {
			port = parsed
		}
	}

	go func() {
		appLogger.Info("Listening on port " + strconv.Itoa(port))
		err := fiberServer.Listen(fmt.Sprintf(":%d", port))
		if err != nil {
			panic(fmt.Sprintf("http server error: %s", err))
		}
	}()

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(fiberServer, done)

	// Wait for the graceful shutdown to complete
	<-done
	log.Println("Graceful shutdown complete.")
}
