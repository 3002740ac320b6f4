package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"git.sr.ht/~jakintosh/tokengate/internal/api"
	"git.sr.ht/~jakintosh/tokengate/internal/config"
	"git.sr.ht/~jakintosh/tokengate/internal/database"
	"git.sr.ht/~jakintosh/tokengate/internal/logging"
	"git.sr.ht/~jakintosh/tokengate/internal/resources"
	"git.sr.ht/~jakintosh/tokengate/internal/service"
	"git.sr.ht/~jakintosh/tokengate/pkg/tokens"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal(logging.New(), "failed to load config", err)
	}

	log, err := logging.FromStrings(cfg.LogLevel, cfg.LogFormat, "tokengate", os.Stderr)
	if err != nil {
		fatal(logging.New(), "failed to build logger", err)
	}

	store, err := database.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		fatal(log, "failed to open database", err)
	}
	defer store.Close()

	issuer, validator := tokens.InitServer([]byte(cfg.TokenSecret))
	svc := service.New(store.VerdictStore(), issuer, validator,
		service.WithLifetime(cfg.TokenLifetime),
		service.WithExpiredOffset(cfg.ExpiredOffset),
		service.WithLogger(log),
	)

	var templates *resources.Templates
	if cfg.TemplatesDir != "" {
		templates, err = resources.NewTemplatesDirectory(cfg.TemplatesDir, log)
	} else {
		templates, err = resources.NewEmbeddedTemplates()
	}
	if err != nil {
		fatal(log, "failed to load templates", err)
	}
	defer templates.Close()

	router := api.New(svc, templates,
		api.WithBasePath(cfg.BasePath),
		api.WithLogger(log),
	).Router()

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.ListenAddr, "base", cfg.BasePath)
		serverErr <- server.ListenAndServe()
	}()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			fatal(log, "server error", err)
		}
	case sig := <-sigChan:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", logging.Error(err))
	}
}
