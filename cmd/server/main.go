// Package main initializes and starts the feedboard HTTP server, setting up
// configuration, logging, the database connection, repositories, services,
// and handlers.
package main

import (
	"context"
	"fmt"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/avolkovs/feedboard/internal/config"
	"github.com/avolkovs/feedboard/internal/db"
	"github.com/avolkovs/feedboard/internal/logger"
	"github.com/avolkovs/feedboard/internal/repository"
	"github.com/avolkovs/feedboard/internal/server/handler/http"
	"github.com/avolkovs/feedboard/internal/service"
	"github.com/avolkovs/feedboard/internal/session"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// orDefault returns s if non-empty, otherwise fallback. It mirrors
// cmp.Or for two strings; cmp.Or needs Go 1.22+ and the build
// toolchain here is Go 1.21.
func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	if options.SessionSecret == "" {
		zapLogger.Fatal("session secret is required (flag -s or SESSION_SECRET)")
	}

	// Initialize PostgreSQL connection and apply migrations.
	postgresDB, err := db.InitPostgres(context.Background(), options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	feedbackRepo := repository.NewPostgresFeedbackRepository(postgresDB)

	// Initialize business-logic services.
	userService := service.NewUserService(userRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	// Session manager issues and validates the identity cookies.
	sessions := session.NewManager(options.SessionSecret, options.SessionTTL)

	// Parse the embedded HTML templates.
	templates, err := http.NewTemplates()
	if err != nil {
		zapLogger.Fatal("failed to parse templates", zap.Error(err))
	}

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{Users: userService, Sessions: sessions, Tmpl: templates, Log: zapLogger}
	userHandler := &http.UserHandler{Users: userService, Feedback: feedbackService, Sessions: sessions, Tmpl: templates, Log: zapLogger}
	feedbackHandler := &http.FeedbackHandler{Feedback: feedbackService, Tmpl: templates, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, userHandler, feedbackHandler, sessions, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
