package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"

	"raceplanner/cmd/app"
	"raceplanner/internal/config"
	api "raceplanner/internal/handler"
	"raceplanner/internal/logger"
	"raceplanner/internal/middleware"
	"raceplanner/internal/schema"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	logger.InitLogger(cfg.Level())

	application, err := app.NewApp(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start application")
	}
	defer application.Close()

	schemas, err := schema.New()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load JSON schemas")
	}

	h := api.NewHandlers(application.Services, schemas, cfg)
	router := h.Router(
		middleware.AuthMiddleware(application.Services.Auth, cfg.SessionCookieName),
		middleware.OptionalAuthMiddleware(application.Services.Auth, cfg.SessionCookieName),
	)

	handlerChain := middleware.Chain(
		router,
		handlers.RecoveryHandler(handlers.RecoveryLogger(logrus.StandardLogger()), handlers.PrintRecoveryStack(true)),
		handlers.CompressHandler,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware(cfg.AllowedOrigins()),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: handlerChain,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":     srv.Addr,
			"database": cfg.DB.DbNAME,
		}).Info("server started")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
