// Command borrowdesk serves the borrow desk HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/borrowdesk/library/bootstrap"
	"github.com/AntonStoeckl/borrowdesk/library/httpapi"
	"github.com/AntonStoeckl/borrowdesk/library/shared/shell/config"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := config.Load(".env")
	if err != nil {
		return err
	}

	logger := config.NewLogger(c, os.Stdout)

	app, err := bootstrap.Open(ctx, c, logger)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := app.Close(context.WithoutCancel(ctx)); closeErr != nil {
			logger.Error("shutdown failed", "error", closeErr)
		}
	}()

	gin.SetMode(gin.ReleaseMode)

	server := httpapi.NewServer(app.Desk, app.Runner, c.JWTSecret,
		httpapi.WithCronSecret(c.CronSecret),
		httpapi.WithAllowedOrigins(c.CORSAllowedOrigins...),
		httpapi.WithLogger(logger),
	)

	httpServer := &http.Server{
		Addr:              c.HTTPAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)

	go func() {
		logger.Info("http server listening", "addr", c.HTTPAddr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil

	case <-ctx.Done():
		logger.Info("shutting down", "timeout", c.HTTPShutdownTimeout.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.HTTPShutdownTimeout)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
