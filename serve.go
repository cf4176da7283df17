package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/chxlky/onelook/api"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API for the browser front end",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(*configPath, time.Now)
			if err != nil {
				return err
			}
			return serve(s)
		},
	}
}

func serve(s *session) error {
	logger := zap.L()
	if logger.Core().Enabled(zap.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := api.NewMetrics()
	apiHandler := &api.Handler{Tracker: s.tracker, Metrics: metrics}
	router := api.NewRouter(apiHandler, logger)

	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           api.WithCORS(router, s.cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	zap.L().Info("Starting server", zap.String("port", s.cfg.Server.Port), zap.Int("assignments", s.tracker.Len()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	var once sync.Once

	cleanup := func(reason string) {
		zap.L().Info("Shutdown initiated", zap.String("reason", reason))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		zap.L().Info("Shutting down HTTP server...")
		if err := srv.Shutdown(ctx); err != nil {
			zap.L().Error("Error shutting down server", zap.Error(err))
		} else {
			zap.L().Info("HTTP server shut down gracefully.")
		}

		s.Close()
		close(done)
	}

	go func() {
		select {
		case sig := <-sigCh:
			once.Do(func() { cleanup(sig.String()) })
		case <-done:
			return
		}

		// if a second signal is caught, exit immediately
		go func() {
			<-sigCh
			zap.L().Info("Second interrupt signal received. Exiting immediately.")
			os.Exit(1)
		}()
	}()

	select {
	case err := <-serverErr:
		once.Do(func() { cleanup("server error") })
		return err
	case <-done:
	}

	zap.L().Info("Exiting...")
	return nil
}
