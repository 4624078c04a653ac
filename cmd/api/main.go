package main

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simon-jot/internal/config"
	"simon-jot/internal/http"
	"simon-jot/internal/service"
	"simon-jot/internal/simon"
	"simon-jot/internal/storage"
	"simon-jot/internal/widget"
)

//go:embed web/index.html
var indexHTML string

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	jotRepo := storage.NewJotRepo(db)
	brainstormRepo := storage.NewBrainstormRepo(db)

	// Backend client (external service layer)
	backend := simon.NewClient(cfg.ServerURL,
		simon.WithHTTPClient(&nethttp.Client{Timeout: cfg.BackendTimeout}),
		simon.WithGoogleMapsKey(cfg.GoogleMapsKey),
		simon.WithProviders(cfg.SimonProviders...),
		simon.WithMaxRetries(cfg.BackendMaxRetries),
		simon.WithRateLimit(cfg.BackendRateLimit, cfg.BackendRateBurst),
	)
	slog.Info("Backend client configured", "server_url", cfg.ServerURL, "providers", cfg.SimonProviders)

	jotService := service.NewJotService(jotRepo, brainstormRepo, backend, widget.NewRegistry(),
		service.WithDebounceInterval(cfg.DebounceInterval),
		service.WithFetchTimeout(cfg.BackendTimeout),
		service.WithDefaultLayout(cfg.Editor),
		service.WithLogger(logger),
	)
	defer jotService.Close()

	router := http.NewRouter(&http.Deps{
		JotService: jotService,
		DB:         db,
		Backend:    backend,
		IndexHTML:  indexHTML,
	})

	srv := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed to start: %v", err)
		}
	case <-ctx.Done():
		slog.Info("Shutting down API server")
		// open editors end their event streams when closed
		jotService.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown failed", "error", err)
		}
	}
}
