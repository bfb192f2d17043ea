package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qualityline/qualityline/internal/alerts"
	"github.com/qualityline/qualityline/internal/config"
	"github.com/qualityline/qualityline/internal/monitor"
	"github.com/qualityline/qualityline/internal/shell"
	"github.com/qualityline/qualityline/internal/system"
	"github.com/qualityline/qualityline/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional; built-in defaults apply without one)")
	flag.Parse()

	// The menu owns stdout; logs go to stderr so they never interleave
	// with prompts.
	cfg := loadConfig(*configPath)

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("qualityline starting",
		"config", *configPath,
		"capacity", cfg.Boxes.Capacity,
		"id_scheme", cfg.Shell.IDScheme,
		"monitor", cfg.Monitor.Enabled,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sys := system.New(cfg.Criteria.ToCriteria(), cfg.Boxes.Capacity)

	// Alert engine — evaluated after every registration.
	var engine *alerts.Engine
	if len(cfg.Alerts.Rules) > 0 {
		engine = alerts.New(cfg.Alerts)
		slog.Info("alerting enabled", "rules", len(cfg.Alerts.Rules))
	}

	// Watch the config file so tightened criteria apply to the running
	// session without a restart. Verdicts already recorded stay fixed.
	if *configPath != "" {
		go func() {
			err := config.Watch(ctx, *configPath, func(updated *config.Config) {
				sys.SetCriteria(updated.Criteria.ToCriteria())
			})
			if err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	// Optional read-only monitor: JSON API, /metrics, and WebSocket stream.
	var httpSrv *http.Server
	if cfg.Monitor.Enabled {
		hub := ws.New(sys, cfg.Monitor.StreamInterval)
		go hub.Run(ctx)

		mux := http.NewServeMux()
		mux.Handle("/", monitor.New(sys, engine))
		mux.Handle("/ws/stream", hub)

		handler := monitor.APIKeyMiddleware(
			cfg.Monitor.Auth.Mode,
			cfg.Monitor.Auth.EffectiveHeader(),
			cfg.Monitor.Auth.Key(),
			mux,
		)

		httpSrv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Monitor.HTTPPort),
			Handler: handler,
		}
		go func() {
			slog.Info("monitor listening", "port", cfg.Monitor.HTTPPort)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("monitor stopped", "err", err)
			}
		}()
	}

	sh := shell.New(sys, engine, os.Stdin, shell.NewIDGenerator(cfg.Shell.IDScheme))
	if err := sh.Run(); err != nil {
		slog.Error("shell exited with error", "err", err)
	}

	cancel()
	slog.Info("qualityline shutting down")
	if httpSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("monitor shutdown", "err", err)
		}
	}
}

// loadConfig loads the file at path, or returns built-in defaults when no
// path was given. A path that cannot be loaded is fatal — running a session
// against half-applied criteria would misclassify pieces silently.
func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func logLevel(s string) slog.Level {
	switch s {
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
