package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/vmunix/janitarr/internal/config"
	"github.com/vmunix/janitarr/internal/janitor"
	"github.com/vmunix/janitarr/internal/ledger"
	"github.com/vmunix/janitarr/internal/media"
	"github.com/vmunix/janitarr/internal/migrations"
	"github.com/vmunix/janitarr/internal/notify"
	"github.com/vmunix/janitarr/internal/retention"
	"github.com/vmunix/janitarr/internal/server"
	"github.com/vmunix/janitarr/pkg/overseerr"
	"github.com/vmunix/janitarr/pkg/radarr"
	"github.com/vmunix/janitarr/pkg/sonarr"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runServer(configPath string, ov overrides) error {
	// Optional .env for ${VAR} substitution in the config file
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if ov.dbPath != "" {
		cfg.Database.Path = ov.dbPath
	}
	if ov.logLevel != "" {
		cfg.Server.LogLevel = ov.logLevel
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return &config.ConfigError{Path: configPath, Errors: errs}
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Clients ===
	brokerClient := overseerr.New(cfg.Overseerr.URL, cfg.Overseerr.APIKey,
		overseerr.WithLogger(logger))
	radarrClient := radarr.New(cfg.Radarr.URL, cfg.Radarr.APIKey)
	sonarrClient := sonarr.New(cfg.Sonarr.URL, cfg.Sonarr.APIKey)

	library := media.NewLibrary(
		media.NewMovieManager(radarrClient),
		media.NewSeriesManager(sonarrClient),
	)

	var notifier notify.Notifier
	if smtp := cfg.Notifications.SMTP; smtp != nil {
		notifier = notify.NewMailer(notify.SMTPConfig{
			Host:     smtp.Host,
			Port:     smtp.Port,
			From:     smtp.From,
			Username: smtp.Username,
			Password: smtp.Password,
		})
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	// === Services ===
	store := ledger.NewStore(db)
	jan := janitor.New(brokerClient, library, notifier, store, janitor.Config{
		Policy: retention.Policy{
			RetentionDays: cfg.Retention.RetentionDays,
			ReminderDays:  cfg.Retention.ReminderDays,
		},
		ExtensionDays: cfg.Retention.ExtensionDays,
		Parallelism:   cfg.Retention.Parallelism,
	}, logger)

	registry := prometheus.NewRegistry()
	apiServer := server.New(server.Deps{
		Janitor: jan,
		Ledger:  store,
		Broker:  brokerClient,
		Movies:  radarrClient,
		Series:  sonarrClient,
	}, cfg.Server.APIKey, registry, logger)

	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux, registry)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	httpServer := &http.Server{
		Addr:    addr,
		Handler: logRequests(mux, logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("janitarrd listening", "addr", addr, "version", version)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sched := server.NewScheduler(apiServer, cfg.Retention.Schedule, logger)
		if err := sched.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("janitarrd stopped")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 200 { // Only capture first WriteHeader call
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
