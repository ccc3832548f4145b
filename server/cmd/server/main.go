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
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/automoto/wreckfield/config"
	"github.com/automoto/wreckfield/server/core"
	"github.com/automoto/wreckfield/server/transport"
)

const (
	DefaultConfigPath = "config/server.yaml"
	version           = "0.1.0"
	shutdownTimeout   = 5 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfgPath := fs.String("config", DefaultConfigPath, "Path to YAML config")
	addr := fs.String("addr", "", "Listen address (overrides config)")
	tickRate := fs.Int("tickrate", 0, "Server tick rate in updates per second (overrides config)")
	logLevel := fs.String("loglevel", "", "debug, info, warn or error (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *cfgPath
	if p := os.Getenv("WRECKFIELD_CONFIG"); p != "" {
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *addr != "" {
		cfg.Server.ListenAddr = *addr
	}
	if *tickRate > 0 {
		cfg.Server.TickRate = *tickRate
	}
	if *logLevel != "" {
		cfg.Server.LogLevel = *logLevel
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	})))

	slog.Info("wreckfield server starting",
		"name", cfg.Server.Name,
		"addr", cfg.Server.ListenAddr,
		"tick_rate", cfg.Server.TickRate,
		"max_players", cfg.Server.MaxPlayers,
		"seed", cfg.World.Seed,
		"version", version)

	srv := core.NewServer(cfg, core.WithLogger(slog.Default()))
	handler := transport.NewHandler(srv, cfg.Server, slog.Default())
	httpSrv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Run(gctx); err != nil {
			return fmt.Errorf("game loop: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("listening", "addr", cfg.Server.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if cfg.Server.MasterURL != "" {
		reg := core.NewRegistration(cfg.Server, version, srv, slog.Default())
		g.Go(func() error {
			slog.Info("registering with master", "url", cfg.Server.MasterURL)
			return reg.Run(gctx)
		})
	}

	return g.Wait()
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
