// Package app wires the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tasker/internal/config"
	v1 "tasker/internal/delivery/http/v1"
	"tasker/internal/service"
)

const readHeaderTimeout = 10 * time.Second

// ListenAndServeHTTP serves the task API on the configured address until
// ctx is cancelled, then shuts down within the configured timeout.
func ListenAndServeHTTP(ctx context.Context, httpCfg config.HTTPSettings, env string, logger zerolog.Logger, svc service.Service) error {
	if env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	addr := net.JoinHostPort(httpCfg.Host, httpCfg.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	return Serve(ctx, listener, httpCfg.ShutdownTimeout, logger, NewRouter(logger, svc))
}

// Serve serves handler on listener until ctx is cancelled.
func Serve(ctx context.Context, listener net.Listener, shutdownTimeout time.Duration, logger zerolog.Logger, handler http.Handler) error {
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", listener.Addr().String()).
			Msg("setting up http server")
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Msg("failed to serve http")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().
		Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info().Msg("shut down http server")
	return nil
}

// NewRouter returns the gin engine serving the task routes.
func NewRouter(logger zerolog.Logger, svc service.Service) *gin.Engine {
	handler := v1.New(logger, svc)

	router := gin.New()
	router.Use(handler.HandleRequestID)
	router.Use(handler.HandleAccessLog)
	router.Use(gin.CustomRecovery(handler.HandleRecovery))
	registerRoutes(router, handler)
	return router
}

func registerRoutes(router gin.IRouter, handler v1.Handler) {
	tasksRouter := router.Group("/tasks")
	tasksRouter.GET("", handler.HandleGetTasks)
	tasksRouter.POST("", handler.HandleCreateTask)
	tasksRouter.PUT("/:index", handler.HandleCompleteTask)
	tasksRouter.DELETE("/:index", handler.HandleDeleteTask)
}
