package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/morphofolio/backend/internal/app"
	"github.com/morphofolio/backend/internal/config"
	"github.com/morphofolio/backend/internal/handler"
	"github.com/morphofolio/backend/internal/logging"
	"github.com/morphofolio/backend/pkg/auth"
)

func main() {
	configFile := flag.String("config", "", "path to a folio.yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level)

	ctx := context.Background()
	a, err := app.Open(ctx, cfg)
	if err != nil {
		logging.Fatal("startup failed", "error", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("close failed", "error", err)
		}
	}()

	contactLimiter := handler.NewRateLimiter(cfg.Contact.RateLimitPerMinute)
	defer contactLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      newRouter(a, contactLimiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "driver", cfg.Database.Driver, "auth_required", cfg.Auth.Required)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}

func newRouter(a *app.App, contactLimiter *handler.RateLimiter) http.Handler {
	cfg := a.Config
	sessionSecret := auth.SessionSecretBytes(cfg.Auth.SessionSecret)

	h := handler.New(a.Repo, cfg.Server.FrontendURL)
	projectHandler := handler.NewProjectHandler(a.Catalog)
	contactHandler := handler.NewContactHandler(a.Contact)
	messageHandler := handler.NewMessageHandler(a.Messages)
	authHandler := handler.NewAuthHandler(handler.AuthConfig{
		AdminEmail:        cfg.Auth.AdminEmail,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		SessionSecret:     cfg.Auth.SessionSecret,
		FrontendURL:       cfg.Server.FrontendURL,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)

	mux.HandleFunc("GET /api/projects", projectHandler.List)
	mux.HandleFunc("GET /api/projects/facets", projectHandler.Facets)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.Get)

	mux.Handle("POST /api/contact", contactLimiter.Middleware(http.HandlerFunc(contactHandler.Submit)))

	mux.HandleFunc("POST /api/admin/login", authHandler.Login)
	mux.HandleFunc("POST /api/admin/logout", authHandler.Logout)

	wrapAdmin := func(next http.Handler) http.Handler {
		if cfg.Auth.Required {
			return auth.RequireAdmin(sessionSecret)(next)
		}
		return auth.DevAuth(next)
	}
	mux.Handle("GET /api/admin/messages", wrapAdmin(http.HandlerFunc(messageHandler.List)))
	mux.Handle("PATCH /api/admin/messages/{id}/status", wrapAdmin(http.HandlerFunc(messageHandler.UpdateStatus)))

	return handler.RequestLogger(handler.SecurityHeaders(h.CORS(mux)))
}
