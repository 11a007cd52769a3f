// ABOUTME: Main entry point for the KGraph API server
// ABOUTME: Wires together all components and starts the HTTP server

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

	"kgraph-api/api"
	"kgraph-api/api/handlers"
	"kgraph-api/cmd/internal/app"
	logruslogger "kgraph-api/infrastructure/logger/logrus"
	"kgraph-api/pkg/config"
	"kgraph-api/pkg/featureflags"
)

const version = "1.0.0"

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.NewLogger(logruslogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	logger.Info("Starting KGraph API", map[string]interface{}{
		"port":          cfg.Server.Port,
		"cache_type":    cfg.Cache.Type,
		"feed_base_url": cfg.Fetch.FeedBaseURL,
		"isolate":       cfg.Graph.Isolate,
	})

	flags := featureflags.NewEnvManagerWithDefaults("FEATURE_", featureflags.DefaultFlags)

	services, err := app.New(cfg, logger, flags)
	if err != nil {
		log.Fatalf("Failed to wire services: %v", err)
	}
	defer services.Close()

	apiConfig := api.APIConfig{
		Logger: logger,
	}
	if services.Metrics != nil {
		apiConfig.Metrics = services.Metrics
	}
	if flags.IsEnabled(context.Background(), featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.Server.RateLimit
		apiConfig.RateWindow = cfg.Server.RateWindow
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	graphHandler := handlers.NewGraphHandler(services.Pipeline, logger, handlers.GraphDefaults{
		Isolate:     cfg.Graph.Isolate,
		MaxArticles: cfg.Graph.MaxArticles,
	})
	publisher, err := services.Publisher(context.Background(), cfg.Output.S3Bucket != "")
	if err != nil {
		logger.Warn("Publishing disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		graphHandler.SetPublisher(publisher)
	}
	graphHandler.RegisterRoutes(humaAPI)

	handlers.NewHealthHandler(version, flags).RegisterRoutes(humaAPI)

	if services.Metrics != nil {
		router.Handle("/metrics", services.Metrics.Handler())
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // feed fetches for large corpora
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}

func init() {
	fmt.Println(`
    __ __ ______                 __       ___    ____  ____
   / //_// ____/________ _____  / /_     /   |  / __ \/  _/
  / ,<  / / __/ ___/ __ '/ __ \/ __ \   / /| | / /_/ // /
 / /| |/ /_/ / /  / /_/ / /_/ / / / /  / ___ |/ ____// /
/_/ |_|\____/_/   \__,_/ .___/_/ /_/  /_/  |_/_/   /___/
                      /_/
	`)
}
