package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/jupiter-swap-go/internal/config"
	"github.com/aman-zulfiqar/jupiter-swap-go/internal/history"
	"github.com/aman-zulfiqar/jupiter-swap-go/internal/server"
	"github.com/aman-zulfiqar/jupiter-swap-go/jupiter"
)

// env bootstrap function
func loadEnv(logger *logrus.Logger) {
	// Get the project root directory (where go.mod is)
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	envPath := filepath.Join(projectRoot, ".env")

	if err := godotenv.Load(envPath); err != nil {
		logger.Warnf("no .env file found at %s, using system environment variables", envPath)
	} else {
		logger.Infof("loaded .env from %s", envPath)
	}
}

// main is the entry point for the swap proxy server
// It initializes all dependencies and starts the HTTP server with graceful shutdown
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	// load .env BEFORE anything reads os.Getenv
	loadEnv(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Quote history is optional; the proxy runs without Redis.
	var recorder history.Recorder
	if cfg.RedisAddr != "" {
		rec := history.NewRedisRecorder(cfg.RedisAddr, logger)
		if err := rec.Ping(ctx); err != nil {
			logger.WithError(err).Warn("redis unreachable, quote history disabled")
			_ = rec.Close()
		} else {
			recorder = rec
			defer func() {
				_ = rec.Close()
			}()
		}
	}

	client := jupiter.NewClient(cfg.JupiterBasePath, &http.Client{Timeout: cfg.HTTPTimeout})

	h := &server.Handlers{
		Jupiter: client,
		History: recorder,
		DevMode: cfg.DevMode,
		Logger:  logger,
	}

	srv, err := server.NewServer(server.ServerDeps{
		Handlers: h,
		Config: server.ServerConfig{
			Addr:      cfg.APIAddr,
			DevMode:   cfg.DevMode,
			APIKey:    cfg.APIKey,
			RateLimit: cfg.RateLimit,
			RateBurst: cfg.RateBurst,
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create http server")
	}

	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
		_ = srv.Shutdown(context.Background())
	}()

	logger.WithFields(logrus.Fields{
		"addr":     cfg.APIAddr,
		"upstream": cfg.JupiterBasePath,
	}).Info("swap proxy starting")

	if err := srv.Start(); err != nil {
		// "http: Server closed" is expected during graceful shutdown
		if err == http.ErrServerClosed {
			if err := srv.WaitClosed(context.Background()); err != nil {
				fmt.Println(err)
			}
			return
		}
		logger.WithError(err).Fatal("swap proxy failed")
	}
}
