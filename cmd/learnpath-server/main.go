package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/learnpath/internal/bootstrap"
	"github.com/at-ishikawa/learnpath/internal/config"
	"github.com/at-ishikawa/learnpath/internal/metrics"
	"github.com/at-ishikawa/learnpath/internal/progress"
	"github.com/at-ishikawa/learnpath/internal/server"
)

var configFile string

func main() {
	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "learnpath-server",
		Short:         "Learnpath progress service HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("godotenv.Load() > %w", err)
			}
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	})))
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	return app.Run(ctx, func(ctx context.Context) error {
		contents, err := bootstrap.OpenCatalog(cfg.Catalog)
		if err != nil {
			return fmt.Errorf("bootstrap.OpenCatalog() > %w", err)
		}
		store, err := bootstrap.OpenStore(ctx, app, cfg)
		if err != nil {
			return fmt.Errorf("bootstrap.OpenStore() > %w", err)
		}
		tracker := progress.NewTracker(store, contents, progress.WithObserver(metrics.Observer{}))

		if cfg.Catalog.Watch && contents.Files != nil {
			err := contents.Files.Watch(ctx, func(err error) {
				metrics.RecordCatalogReload(err)
				if err == nil {
					tracker.InvalidateCompletions()
					slog.Default().Info("Catalog reloaded", "directory", cfg.Catalog.Directory)
				}
			})
			if err != nil {
				return fmt.Errorf("watch catalog: %w", err)
			}
		}

		handler, err := newHandler(cfg.Server, tracker)
		if err != nil {
			return err
		}
		srv := &http.Server{
			Addr:              ":" + strconv.Itoa(cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		app.AddShutdownHook(srv.Shutdown)

		slog.Default().Info("Starting server",
			"addr", srv.Addr,
			"storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func newHandler(cfg config.ServerConfig, tracker *progress.Tracker) (http.Handler, error) {
	progressHandler, err := server.NewProgressHandler(tracker)
	if err != nil {
		return nil, fmt.Errorf("server.NewProgressHandler() > %w", err)
	}
	path, h := server.NewProgressServiceHandler(progressHandler)

	var rpc http.Handler = h
	if cfg.RateLimit.RequestsPerMinute > 0 {
		rpc = httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute)(rpc)
	}

	mux := http.NewServeMux()
	mux.Handle(path, rpc)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return corsMiddleware(h2c.NewHandler(mux, &http2.Server{}), cfg.CORS.AllowedOrigins), nil
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
