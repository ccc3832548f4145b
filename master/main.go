// Command master is the server browser: game servers register and heartbeat
// here, clients list them.
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

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("master", flag.ContinueOnError)
	port := fs.Int("port", 8080, "HTTP listen port")
	ttl := fs.Duration("ttl", 90*time.Second, "Server TTL before expiry")
	cleanup := fs.Duration("cleanup", 30*time.Second, "Interval between expiry sweeps")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ttl <= 0 || *cleanup <= 0 {
		return errors.New("ttl and cleanup must be positive")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	reg := NewRegistry(*ttl, nil, logger)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           NewAPI(reg, logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		reg.RunCleanup(gctx, *cleanup)
		return nil
	})
	g.Go(func() error {
		logger.Info("master listening", "addr", srv.Addr, "ttl", *ttl)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	logger.Info("master stopped")
	return err
}
