package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/litey/litey-go/internal/app"
	"github.com/litey/litey-go/internal/config"
	"github.com/litey/litey-go/pkg/logger"
	"github.com/litey/litey-go/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)
	logger.Infof("config loaded: store=%s rate_limit=%s static=%s", cfg.MongoDB.Backend, cfg.RateLimit.Backend, cfg.Static.Root)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to initialize: %v", err)
	}

	r, err := a.Router()
	if err != nil {
		a.Close(context.Background())
		logger.Fatalf("failed to build router: %v", err)
	}
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("litey listening on %s", cfg.Addr())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Close(context.Background())
			logger.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Infof("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("graceful shutdown: %v", err)
	}
	a.Close(shutdownCtx)
	logger.Infof("stopped")
}
