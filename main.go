package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/username/stonefolio/src/config"
	"github.com/username/stonefolio/src/database"
	"github.com/username/stonefolio/src/logger"
	"github.com/username/stonefolio/src/pipeline"
	"github.com/username/stonefolio/src/salesforce"
	"github.com/username/stonefolio/src/server"
	"github.com/username/stonefolio/src/services"
)

const version = "1.2.0"

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel, config.Cfg.LogFormat)
	logger.L.Info("Stonefolio analytics server starting...", "version", version)

	limiter.SetBurst(config.Cfg.RateLimitBurst)

	logger.L.Info("Initializing audit database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)

	logger.L.Info("Initializing Salesforce client...", "loginURL", config.Cfg.SalesforceLoginURL)
	tokenSource, err := salesforce.NewTokenSource(
		config.Cfg.SalesforceLoginURL,
		config.Cfg.SalesforceClientID,
		config.Cfg.SalesforceUsername,
		config.Cfg.SalesforcePrivateKeyPath,
		config.Cfg.HTTPTimeout,
	)
	if err != nil {
		logger.L.Error("Failed to initialize Salesforce authentication", "error", err)
		os.Exit(1)
	}
	recordSource := salesforce.NewClient(tokenSource, config.Cfg.SalesforceAPIVersion, config.Cfg.HTTPTimeout)

	logger.L.Info("Initializing services...")
	clock := clockwork.NewRealClock()
	salesPipeline := pipeline.New(clock)
	analyticsService := services.NewAnalyticsService(recordSource, salesPipeline, clock)

	logger.L.Info("Configuring MCP server...")
	mcpServer, err := server.New(server.Config{
		Version: version,
		Logger:  logger.L,
		Service: analyticsService,
	})
	if err != nil {
		logger.L.Error("Failed to configure MCP server", "error", err)
		os.Exit(1)
	}

	finalHandler := rateLimitMiddleware(mcpServer.Handler())

	serverAddr := ":" + config.Cfg.Port
	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.L.Info("Server starting", "address", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L.Error("Failed to start server", "error", err)
			stdlog.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-stop
	logger.L.Info("Shutdown signal received, draining connections...")

	ctx, cancel := context.WithTimeout(context.Background(), config.Cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.L.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.L.Info("Server stopped gracefully.")
}
